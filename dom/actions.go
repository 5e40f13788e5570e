package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

// Node predicates, usable as filters over node sequences.

// NodeIsText matches text nodes (including CDATA sections).
func NodeIsText(n *Node) bool {
	return n != nil && (n.kind == TextNode || n.kind == CDATASectionNode)
}

// NodeIsExclusiveText matches text nodes which are not CDATA sections.
func NodeIsExclusiveText(n *Node) bool {
	return n != nil && n.kind == TextNode
}

// NodeIsCharacterData matches text, CDATA, comment and processing instruction nodes.
func NodeIsCharacterData(n *Node) bool {
	if n == nil {
		return false
	}
	switch n.kind {
	case TextNode, CDATASectionNode, CommentNode, ProcessingInstructionNode:
		return true
	}
	return false
}

// NodeIsElement matches elements.
func NodeIsElement(n *Node) bool {
	return n != nil && n.kind == ElementNode
}

// NodeIsDoctype matches doctype nodes.
func NodeIsDoctype(n *Node) bool {
	return n != nil && n.kind == DocumentTypeNode
}

// NodeIsSlot matches slot elements inside shadow trees.
func NodeIsSlot(n *Node) bool {
	return NodeIsElement(n) && n.name == "slot" && n.Root().IsShadowRoot()
}

// NodeIsSlottable matches elements and text nodes.
func NodeIsSlottable(n *Node) bool {
	return NodeIsElement(n) || NodeIsExclusiveText(n)
}

// Filter returns the nodes of a slice matching a predicate.
func Filter(nodes []*Node, predicate func(*Node) bool) []*Node {
	var matches []*Node
	for _, n := range nodes {
		if predicate(n) {
			matches = append(matches, n)
		}
	}
	return matches
}
