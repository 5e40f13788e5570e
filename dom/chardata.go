package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"unicode/utf16"
)

// Offsets into character data count UTF-16 code units, as in the W3C DOM.
// Splitting a surrogate pair yields replacement characters, as Go strings
// cannot hold lone surrogates.

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

func utf16Substring(s string, from, to int) string {
	units := utf16.Encode([]rune(s))
	return string(utf16.Decode(units[from:to]))
}

// Data returns the character data of text, comment, CDATA and processing
// instruction nodes.
func (n *Node) Data() string {
	return n.data
}

// SetData replaces all of the character data.
func (n *Node) SetData(data string) error {
	return n.ReplaceData(0, n.Length(), data)
}

// SubstringData returns count code units of data, starting at offset.
func (n *Node) SubstringData(offset, count int) (string, error) {
	if !NodeIsCharacterData(n) {
		return "", raise(ErrInvalidNodeType, "%s is not character data", n)
	}
	length := n.Length()
	if offset < 0 || offset > length {
		return "", raise(ErrIndexSize, "offset %d out of range [0…%d]", offset, length)
	}
	if count < 0 || offset+count > length {
		count = length - offset
	}
	return utf16Substring(n.data, offset, offset+count), nil
}

// AppendData appends data.
func (n *Node) AppendData(data string) error {
	return n.ReplaceData(n.Length(), 0, data)
}

// InsertData inserts data at offset.
func (n *Node) InsertData(offset int, data string) error {
	return n.ReplaceData(offset, 0, data)
}

// DeleteData deletes count code units, starting at offset.
func (n *Node) DeleteData(offset, count int) error {
	return n.ReplaceData(offset, count, "")
}

// ReplaceData replaces count code units, starting at offset, by data.
// Live ranges with boundary points inside the replaced section collapse to
// offset, boundary points after it are shifted.
func (n *Node) ReplaceData(offset, count int, data string) error {
	if !NodeIsCharacterData(n) {
		return raise(ErrInvalidNodeType, "%s is not character data", n)
	}
	length := n.Length()
	if offset < 0 || offset > length {
		return raise(ErrIndexSize, "offset %d out of range [0…%d]", offset, length)
	}
	if count < 0 || offset+count > length {
		count = length - offset
	}
	n.replaceData(offset, count, data)
	return nil
}

// replaceData expects valid arguments.
func (n *Node) replaceData(offset, count int, data string) {
	old := n.data
	n.agent.queueMutationRecord(characterDataMutation, n, mutationDetails{
		oldValue: &old,
	})
	units := utf16.Encode([]rune(n.data))
	inserted := utf16.Encode([]rune(data))
	result := make([]uint16, 0, len(units)-count+len(inserted))
	result = append(result, units[:offset]...)
	result = append(result, inserted...)
	result = append(result, units[offset+count:]...)
	n.data = string(utf16.Decode(result))
	delta := len(inserted) - count
	for _, r := range n.liveRanges() {
		if r.start.Node == n && r.start.Offset > offset && r.start.Offset <= offset+count {
			r.start.Offset = offset
		}
		if r.end.Node == n && r.end.Offset > offset && r.end.Offset <= offset+count {
			r.end.Offset = offset
		}
		if r.start.Node == n && r.start.Offset > offset+count {
			r.start.Offset += delta
		}
		if r.end.Node == n && r.end.Offset > offset+count {
			r.end.Offset += delta
		}
	}
	tracer().Debugf("dom: replaced %d code units of %s at %d", count, n, offset)
}

// SplitText splits a text node at offset. The node keeps the data before
// offset, a new text node right after it receives the rest.
func (n *Node) SplitText(offset int) (*Node, error) {
	if !NodeIsText(n) {
		return nil, raise(ErrInvalidNodeType, "cannot split %s", n)
	}
	length := n.Length()
	if offset < 0 || offset > length {
		return nil, raise(ErrIndexSize, "offset %d out of range [0…%d]", offset, length)
	}
	return n.splitText(offset), nil
}

func (n *Node) splitText(offset int) *Node {
	count := n.Length() - offset
	newNode := n.OwnerDocument().newNode(n.kind, "", utf16Substring(n.data, offset, offset+count))
	if parent := n.Parent(); parent != nil {
		parent.insert(newNode, n.NextSibling(), false)
		index := n.Index()
		for _, r := range n.liveRanges() {
			if r.start.Node == n && r.start.Offset > offset {
				r.start = BoundaryPoint{newNode, r.start.Offset - offset}
			}
			if r.end.Node == n && r.end.Offset > offset {
				r.end = BoundaryPoint{newNode, r.end.Offset - offset}
			}
			if r.start.Node == parent && r.start.Offset == index+1 {
				r.start.Offset++
			}
			if r.end.Node == parent && r.end.Offset == index+1 {
				r.end.Offset++
			}
		}
	}
	n.replaceData(offset, count, "")
	return newNode
}

// WholeText returns the data of n and its contiguous text siblings.
func (n *Node) WholeText() string {
	start := n
	for prev := start.PreviousSibling(); NodeIsText(prev); prev = start.PreviousSibling() {
		start = prev
	}
	text := ""
	for t := start; NodeIsText(t); t = t.NextSibling() {
		text += t.data
	}
	return text
}
