package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"slices"
	"strings"
)

// CloneNode returns a copy of n, including its descendants if deep is set.
// Shadow roots are not cloned.
func (n *Node) CloneNode(deep bool) (*Node, error) {
	if n.IsShadowRoot() {
		return nil, raise(ErrNotSupported, "cannot clone a shadow root")
	}
	return n.clone(n.OwnerDocument(), deep), nil
}

// clone copies n into document doc. Clones of documents become the document
// of their descendants.
func (n *Node) clone(doc *Node, deep bool) *Node {
	var c *Node
	if n.kind == DocumentNode {
		c = n.agent.NewDocument()
		doc = c
	} else {
		c = doc.newNode(n.kind, n.name, n.data)
	}
	c.attrs = slices.Clone(n.attrs)
	if deep {
		for _, ch := range n.ChildNodes() {
			c.insert(ch.clone(doc, true), nil, false)
		}
	}
	return c
}

// TextContent returns the data of character data nodes, the concatenated data
// of descendant text nodes for elements and fragments, and "" otherwise.
func (n *Node) TextContent() string {
	switch n.kind {
	case ElementNode, DocumentFragmentNode:
		var b strings.Builder
		for d := range n.Descendants() {
			if NodeIsText(d) {
				b.WriteString(d.data)
			}
		}
		return b.String()
	case DocumentNode, DocumentTypeNode:
		return ""
	}
	return n.data
}

// SetTextContent replaces the children of elements and fragments by a single
// text node, or the data of character data nodes. It is a no-op for documents
// and doctypes.
func (n *Node) SetTextContent(text string) {
	switch n.kind {
	case ElementNode, DocumentFragmentNode:
		var node *Node
		if text != "" {
			node = n.OwnerDocument().CreateTextNode(text)
		}
		n.replaceAll(node)
	case DocumentNode, DocumentTypeNode:
	default:
		n.replaceData(0, n.Length(), text)
	}
}

// Normalize removes empty text nodes below n and merges adjacent ones. Live
// ranges within merged nodes move to the surviving node.
func (n *Node) Normalize() {
	for _, node := range Filter(slices.Collect(n.Descendants()), NodeIsExclusiveText) {
		if !n.Contains(node) {
			continue // merged into a preceding node
		}
		length := node.Length()
		if length == 0 {
			node.remove(false)
			continue
		}
		var siblings []*Node
		var data strings.Builder
		for c := node.NextSibling(); NodeIsExclusiveText(c); c = c.NextSibling() {
			siblings = append(siblings, c)
			data.WriteString(c.data)
		}
		if len(siblings) == 0 {
			continue
		}
		node.replaceData(length, 0, data.String())
		for _, c := range siblings {
			parent, index := c.Parent(), c.Index()
			for _, r := range n.liveRanges() {
				if r.start.Node == c {
					r.start = BoundaryPoint{node, r.start.Offset + length}
				}
				if r.end.Node == c {
					r.end = BoundaryPoint{node, r.end.Offset + length}
				}
				if r.start.Node == parent && r.start.Offset == index {
					r.start = BoundaryPoint{node, length}
				}
				if r.end.Node == parent && r.end.Offset == index {
					r.end = BoundaryPoint{node, length}
				}
			}
			length += c.Length()
		}
		for _, c := range siblings {
			c.remove(false)
		}
	}
}

// Document position flags, as returned by CompareDocumentPosition.
const (
	DocumentPositionDisconnected           = 0x01
	DocumentPositionPreceding              = 0x02
	DocumentPositionFollowing              = 0x04
	DocumentPositionContains               = 0x08
	DocumentPositionContainedBy            = 0x10
	DocumentPositionImplementationSpecific = 0x20
)

// CompareDocumentPosition returns a bitmask describing the position of other
// relative to n. Nodes in different trees are ordered by creation.
func (n *Node) CompareDocumentPosition(other *Node) uint16 {
	if n == other {
		return 0
	}
	if other == nil || n.Root() != other.Root() {
		order := uint16(DocumentPositionFollowing)
		if other != nil && other.serial < n.serial {
			order = DocumentPositionPreceding
		}
		return DocumentPositionDisconnected | DocumentPositionImplementationSpecific | order
	}
	t := n.agent.tree
	switch {
	case t.IsAncestor(other, n):
		return DocumentPositionContains | DocumentPositionPreceding
	case t.IsAncestor(n, other):
		return DocumentPositionContainedBy | DocumentPositionFollowing
	case t.IsPreceding(other, n):
		return DocumentPositionPreceding
	}
	return DocumentPositionFollowing
}
