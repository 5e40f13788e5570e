package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
)

// BoundaryPoint is a position in a node tree: a node plus an offset into its
// children or its character data.
type BoundaryPoint struct {
	Node   *Node
	Offset int
}

func (bp BoundaryPoint) String() string {
	return fmt.Sprintf("(%s,%d)", bp.Node, bp.Offset)
}

// Position is the relative position of two boundary points.
type Position int8

// Boundary point positions. The numeric values are those returned by
// CompareBoundaryPoints and ComparePoint.
const (
	Before Position = -1
	Equal  Position = 0
	After  Position = 1
)

func (p Position) String() string {
	switch p {
	case Before:
		return "before"
	case After:
		return "after"
	}
	return "equal"
}

func (p Position) invert() Position {
	return -p
}

// ComparePositions returns the position of a relative to b. Both boundary
// points must share a root; if they do not, the result is Before.
func ComparePositions(a, b BoundaryPoint) Position {
	return position(a, b)
}

func position(a, b BoundaryPoint) Position {
	if a.Node == b.Node {
		switch {
		case a.Offset == b.Offset:
			return Equal
		case a.Offset < b.Offset:
			return Before
		}
		return After
	}
	t := a.Node.agent.tree
	if t.IsFollowing(a.Node, b.Node) {
		return position(b, a).invert()
	}
	if t.IsAncestor(a.Node, b.Node) {
		child := b.Node
		for child.Parent() != a.Node {
			child = child.Parent()
		}
		if child.Index() < a.Offset {
			return After
		}
	}
	return Before
}

// isContained is true if node lies completely between the boundary points of r.
func (r *Range) isContained(node *Node) bool {
	return node.Root() == r.Root() &&
		position(BoundaryPoint{node, 0}, r.start) == After &&
		position(BoundaryPoint{node, node.Length()}, r.end) == Before
}

// isPartiallyContained is true if node is an inclusive ancestor of exactly one
// of the boundary nodes of r.
func (r *Range) isPartiallyContained(node *Node) bool {
	return node.IsInclusiveAncestorOf(r.start.Node) != node.IsInclusiveAncestorOf(r.end.Node)
}
