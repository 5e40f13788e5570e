package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"strings"
)

// Range is a live range: a pair of boundary points, registered with a
// document so that tree and character data mutations keep it up to date.
// The start of a range is never after its end.
type Range struct {
	start, end BoundaryPoint
	doc        *Node // document the range is registered with, nil if detached
}

// Constants for CompareBoundaryPoints.
const (
	StartToStart = 0
	StartToEnd   = 1
	EndToEnd     = 2
	EndToStart   = 3
)

// CreateRange creates a live range collapsed at the start of doc.
func (doc *Node) CreateRange() *Range {
	doc = doc.OwnerDocument()
	r := &Range{
		start: BoundaryPoint{doc, 0},
		end:   BoundaryPoint{doc, 0},
	}
	r.track(doc)
	return r
}

// liveRanges returns the live ranges of n's document.
func (n *Node) liveRanges() []*Range {
	return n.OwnerDocument().ranges.Items()
}

// track registers r with doc, unregistering it from a former document.
func (r *Range) track(doc *Node) {
	if r.doc == doc {
		return
	}
	if r.doc != nil {
		r.doc.ranges.RemoveItem(r)
	}
	r.doc = doc
	doc.ranges.Append(r)
}

// Detach unregisters r. A detached range no longer follows mutations.
func (r *Range) Detach() {
	if r.doc != nil {
		r.doc.ranges.RemoveItem(r)
		r.doc = nil
	}
}

// IsLive is true until the range is detached.
func (r *Range) IsLive() bool {
	return r.doc != nil
}

// CloneRange returns a new live range with the boundary points of r.
func (r *Range) CloneRange() *Range {
	clone := &Range{start: r.start, end: r.end}
	clone.track(r.start.Node.OwnerDocument())
	return clone
}

// StartContainer returns the node of the start boundary point.
func (r *Range) StartContainer() *Node { return r.start.Node }

// StartOffset returns the offset of the start boundary point.
func (r *Range) StartOffset() int { return r.start.Offset }

// EndContainer returns the node of the end boundary point.
func (r *Range) EndContainer() *Node { return r.end.Node }

// EndOffset returns the offset of the end boundary point.
func (r *Range) EndOffset() int { return r.end.Offset }

// Start returns the start boundary point.
func (r *Range) Start() BoundaryPoint { return r.start }

// End returns the end boundary point.
func (r *Range) End() BoundaryPoint { return r.end }

// Collapsed is true if start and end are equal.
func (r *Range) Collapsed() bool {
	return r.start == r.end
}

// Root returns the root of the start node.
func (r *Range) Root() *Node {
	return r.start.Node.Root()
}

// CommonAncestorContainer returns the lowest inclusive ancestor of both the
// start and the end node.
func (r *Range) CommonAncestorContainer() *Node {
	container := r.start.Node
	for !container.IsInclusiveAncestorOf(r.end.Node) {
		container = container.Parent()
	}
	return container
}

// --- Setting boundary points ------------------------------------------------

func checkBoundary(node *Node, offset int) error {
	if node == nil {
		return raise(ErrType, "boundary node must not be nil")
	}
	if NodeIsDoctype(node) {
		return raise(ErrInvalidNodeType, "%s cannot contain a boundary point", node)
	}
	if offset < 0 || offset > node.Length() {
		return raise(ErrIndexSize, "offset %d out of range [0…%d] for %s", offset, node.Length(), node)
	}
	return nil
}

// SetStart sets the start boundary point. If this would place the start after
// the end, or into a different tree, the range is collapsed to the new start.
func (r *Range) SetStart(node *Node, offset int) error {
	if err := checkBoundary(node, offset); err != nil {
		return err
	}
	bp := BoundaryPoint{node, offset}
	if r.Root() != node.Root() || position(bp, r.end) == After {
		r.end = bp
	}
	r.start = bp
	r.retrack()
	return nil
}

// SetEnd sets the end boundary point. If this would place the end before the
// start, or into a different tree, the range is collapsed to the new end.
func (r *Range) SetEnd(node *Node, offset int) error {
	if err := checkBoundary(node, offset); err != nil {
		return err
	}
	bp := BoundaryPoint{node, offset}
	if r.Root() != node.Root() || position(bp, r.start) == Before {
		r.start = bp
	}
	r.end = bp
	r.retrack()
	return nil
}

// retrack moves a live range to the document of its start node.
func (r *Range) retrack() {
	if r.doc != nil {
		r.track(r.start.Node.OwnerDocument())
	}
}

// SetStartBefore sets the start right before node.
func (r *Range) SetStartBefore(node *Node) error {
	parent, err := parentOf(node)
	if err != nil {
		return err
	}
	return r.SetStart(parent, node.Index())
}

// SetStartAfter sets the start right after node.
func (r *Range) SetStartAfter(node *Node) error {
	parent, err := parentOf(node)
	if err != nil {
		return err
	}
	return r.SetStart(parent, node.Index()+1)
}

// SetEndBefore sets the end right before node.
func (r *Range) SetEndBefore(node *Node) error {
	parent, err := parentOf(node)
	if err != nil {
		return err
	}
	return r.SetEnd(parent, node.Index())
}

// SetEndAfter sets the end right after node.
func (r *Range) SetEndAfter(node *Node) error {
	parent, err := parentOf(node)
	if err != nil {
		return err
	}
	return r.SetEnd(parent, node.Index()+1)
}

func parentOf(node *Node) (*Node, error) {
	if node == nil {
		return nil, raise(ErrType, "node must not be nil")
	}
	parent := node.Parent()
	if parent == nil {
		return nil, raise(ErrInvalidNodeType, "%s has no parent", node)
	}
	return parent, nil
}

// Collapse sets the end to the start, or the start to the end.
func (r *Range) Collapse(toStart bool) {
	if toStart {
		r.end = r.start
	} else {
		r.start = r.end
	}
}

// SelectNode makes the range contain node and nothing else.
func (r *Range) SelectNode(node *Node) error {
	parent, err := parentOf(node)
	if err != nil {
		return err
	}
	index := node.Index()
	r.start = BoundaryPoint{parent, index}
	r.end = BoundaryPoint{parent, index + 1}
	r.retrack()
	return nil
}

// SelectNodeContents makes the range span the contents of node.
func (r *Range) SelectNodeContents(node *Node) error {
	if node == nil {
		return raise(ErrType, "node must not be nil")
	}
	if NodeIsDoctype(node) {
		return raise(ErrInvalidNodeType, "cannot select contents of %s", node)
	}
	r.start = BoundaryPoint{node, 0}
	r.end = BoundaryPoint{node, node.Length()}
	r.retrack()
	return nil
}

// setBoth collapses the range at a boundary point.
func (r *Range) setBoth(bp BoundaryPoint) {
	r.start, r.end = bp, bp
	r.retrack()
}

// --- Comparisons ------------------------------------------------------------

// CompareBoundaryPoints compares a boundary point of r with one of source.
// how is one of StartToStart, StartToEnd, EndToEnd or EndToStart.
func (r *Range) CompareBoundaryPoints(how int, source *Range) (Position, error) {
	var this, other BoundaryPoint
	switch how {
	case StartToStart:
		this, other = r.start, source.start
	case StartToEnd:
		this, other = r.end, source.start
	case EndToEnd:
		this, other = r.end, source.end
	case EndToStart:
		this, other = r.start, source.end
	default:
		return Equal, raise(ErrNotSupported, "undefined comparison %d", how)
	}
	if r.Root() != source.Root() {
		return Equal, raise(ErrWrongDocument, "ranges do not share a root")
	}
	return position(this, other), nil
}

// IsPointInRange is true if (node, offset) lies between start and end.
func (r *Range) IsPointInRange(node *Node, offset int) (bool, error) {
	if node == nil || node.Root() != r.Root() {
		return false, nil
	}
	if err := checkBoundary(node, offset); err != nil {
		return false, err
	}
	bp := BoundaryPoint{node, offset}
	if position(bp, r.start) == Before || position(bp, r.end) == After {
		return false, nil
	}
	return true, nil
}

// ComparePoint returns Before if (node, offset) is before the start, After if
// it is after the end, and Equal otherwise.
func (r *Range) ComparePoint(node *Node, offset int) (Position, error) {
	if node == nil || node.Root() != r.Root() {
		return Equal, raise(ErrWrongDocument, "%s is not in the tree of the range", node)
	}
	if err := checkBoundary(node, offset); err != nil {
		return Equal, err
	}
	bp := BoundaryPoint{node, offset}
	if position(bp, r.start) == Before {
		return Before, nil
	}
	if position(bp, r.end) == After {
		return After, nil
	}
	return Equal, nil
}

// IntersectsNode is true if node overlaps with the range.
func (r *Range) IntersectsNode(node *Node) bool {
	if node == nil || node.Root() != r.Root() {
		return false
	}
	parent := node.Parent()
	if parent == nil {
		return true
	}
	offset := node.Index()
	return position(BoundaryPoint{parent, offset}, r.end) == Before &&
		position(BoundaryPoint{parent, offset + 1}, r.start) == After
}

// containedNodes returns the nodes contained in r, in tree order.
func (r *Range) containedNodes() []*Node {
	var nodes []*Node
	for d := range r.CommonAncestorContainer().Descendants() {
		if r.isContained(d) {
			nodes = append(nodes, d)
		}
	}
	return nodes
}

// String returns the concatenated text within the range.
func (r *Range) String() string {
	start, end := r.start, r.end
	if start.Node == end.Node && NodeIsText(start.Node) {
		return utf16Substring(start.Node.data, start.Offset, end.Offset)
	}
	var b strings.Builder
	if NodeIsText(start.Node) {
		b.WriteString(utf16Substring(start.Node.data, start.Offset, start.Node.Length()))
	}
	for _, n := range Filter(r.containedNodes(), NodeIsText) {
		b.WriteString(n.data)
	}
	if NodeIsText(end.Node) {
		b.WriteString(utf16Substring(end.Node.data, 0, end.Offset))
	}
	return b.String()
}

// Describe prints the boundary points, for debugging.
func (r *Range) Describe() string {
	return fmt.Sprintf("Range[%s…%s]", r.start, r.end)
}
