package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

// Content operations of live ranges. All of them validate before they
// mutate; errors leave the tree unchanged.

// DeleteContents removes the contents of the range from the tree and
// collapses the range. Character data partially within the range is trimmed.
func (r *Range) DeleteContents() {
	if r.Collapsed() {
		return
	}
	start, end := r.start, r.end
	if start.Node == end.Node && NodeIsCharacterData(start.Node) {
		start.Node.replaceData(start.Offset, end.Offset-start.Offset, "")
		return
	}
	var nodesToRemove []*Node
	for _, n := range r.containedNodes() {
		if p := n.Parent(); p == nil || !r.isContained(p) {
			nodesToRemove = append(nodesToRemove, n)
		}
	}
	collapseTo := r.collapsePoint(start, end)
	if NodeIsCharacterData(start.Node) {
		start.Node.replaceData(start.Offset, start.Node.Length()-start.Offset, "")
	}
	for _, n := range nodesToRemove {
		n.remove(false)
	}
	if NodeIsCharacterData(end.Node) {
		end.Node.replaceData(0, end.Offset, "")
	}
	r.setBoth(collapseTo)
	tracer().Debugf("dom: deleted range contents, %d subtree(s) removed", len(nodesToRemove))
}

// collapsePoint is the position a range collapses to after its contents have
// been removed: the start, or the position right after the highest ancestor of
// the start node which is not an ancestor of the end node.
func (r *Range) collapsePoint(start, end BoundaryPoint) BoundaryPoint {
	if start.Node.IsInclusiveAncestorOf(end.Node) {
		return start
	}
	ref := start.Node
	for p := ref.Parent(); p != nil && !p.IsInclusiveAncestorOf(end.Node); p = ref.Parent() {
		ref = p
	}
	return BoundaryPoint{ref.Parent(), ref.Index() + 1}
}

// ExtractContents moves the contents of the range into a new document
// fragment. Nodes partially within the range are split: the fragment receives
// shallow clones holding the parts inside the range.
func (r *Range) ExtractContents() (*Node, error) {
	return r.extract()
}

// CloneContents copies the contents of the range into a new document fragment.
func (r *Range) CloneContents() (*Node, error) {
	return r.cloneContents()
}

// partialChildren returns the common ancestor of the boundary nodes, the first
// and last of its children partially contained in the range (or nil) and the
// children completely contained in the range. It fails for contained doctypes.
func (r *Range) partialChildren() (ancestor, first, last *Node, contained []*Node, err error) {
	start, end := r.start, r.end
	ancestor = r.CommonAncestorContainer()
	children := ancestor.ChildNodes()
	if !start.Node.IsInclusiveAncestorOf(end.Node) {
		for _, c := range children {
			if r.isPartiallyContained(c) {
				first = c
				break
			}
		}
	}
	if !end.Node.IsInclusiveAncestorOf(start.Node) {
		for i := len(children) - 1; i >= 0; i-- {
			if r.isPartiallyContained(children[i]) {
				last = children[i]
				break
			}
		}
	}
	contained = Filter(children, r.isContained)
	if len(Filter(contained, NodeIsDoctype)) > 0 {
		return nil, nil, nil, nil, raise(ErrHierarchyRequest, "range contains a doctype")
	}
	return
}

func (r *Range) extract() (*Node, error) {
	start, end := r.start, r.end
	fragment := start.Node.OwnerDocument().CreateDocumentFragment()
	if r.Collapsed() {
		return fragment, nil
	}
	if start.Node == end.Node && NodeIsCharacterData(start.Node) {
		fragment.insert(start.Node.cloneData(start.Offset, end.Offset), nil, false)
		start.Node.replaceData(start.Offset, end.Offset-start.Offset, "")
		return fragment, nil
	}
	_, first, last, contained, err := r.partialChildren()
	if err != nil {
		return nil, err
	}
	collapseTo := r.collapsePoint(start, end)
	if NodeIsCharacterData(first) {
		length := start.Node.Length()
		fragment.insert(start.Node.cloneData(start.Offset, length), nil, false)
		start.Node.replaceData(start.Offset, length-start.Offset, "")
	} else if first != nil {
		clone := first.clone(first.OwnerDocument(), false)
		fragment.insert(clone, nil, false)
		sub := &Range{start: start, end: BoundaryPoint{first, first.Length()}}
		subfragment, err := sub.extract()
		if err != nil {
			return nil, err
		}
		clone.insert(subfragment, nil, false)
	}
	for _, c := range contained {
		fragment.insert(c, nil, false)
	}
	if NodeIsCharacterData(last) {
		fragment.insert(end.Node.cloneData(0, end.Offset), nil, false)
		end.Node.replaceData(0, end.Offset, "")
	} else if last != nil {
		clone := last.clone(last.OwnerDocument(), false)
		fragment.insert(clone, nil, false)
		sub := &Range{start: BoundaryPoint{last, 0}, end: end}
		subfragment, err := sub.extract()
		if err != nil {
			return nil, err
		}
		clone.insert(subfragment, nil, false)
	}
	r.setBoth(collapseTo)
	return fragment, nil
}

func (r *Range) cloneContents() (*Node, error) {
	start, end := r.start, r.end
	fragment := start.Node.OwnerDocument().CreateDocumentFragment()
	if r.Collapsed() {
		return fragment, nil
	}
	if start.Node == end.Node && NodeIsCharacterData(start.Node) {
		fragment.insert(start.Node.cloneData(start.Offset, end.Offset), nil, false)
		return fragment, nil
	}
	_, first, last, contained, err := r.partialChildren()
	if err != nil {
		return nil, err
	}
	if NodeIsCharacterData(first) {
		fragment.insert(start.Node.cloneData(start.Offset, start.Node.Length()), nil, false)
	} else if first != nil {
		clone := first.clone(first.OwnerDocument(), false)
		fragment.insert(clone, nil, false)
		sub := &Range{start: start, end: BoundaryPoint{first, first.Length()}}
		subfragment, err := sub.cloneContents()
		if err != nil {
			return nil, err
		}
		clone.insert(subfragment, nil, false)
	}
	for _, c := range contained {
		fragment.insert(c.clone(c.OwnerDocument(), true), nil, false)
	}
	if NodeIsCharacterData(last) {
		fragment.insert(end.Node.cloneData(0, end.Offset), nil, false)
	} else if last != nil {
		clone := last.clone(last.OwnerDocument(), false)
		fragment.insert(clone, nil, false)
		sub := &Range{start: BoundaryPoint{last, 0}, end: end}
		subfragment, err := sub.cloneContents()
		if err != nil {
			return nil, err
		}
		clone.insert(subfragment, nil, false)
	}
	return fragment, nil
}

// cloneData creates a shallow clone of a character data node holding the
// code units [from…to) of its data.
func (n *Node) cloneData(from, to int) *Node {
	clone := n.clone(n.OwnerDocument(), false)
	clone.data = utf16Substring(n.data, from, to)
	return clone
}

// InsertNode inserts node at the start of the range. A text node holding the
// start is split first. A collapsed range grows to include the new content.
func (r *Range) InsertNode(node *Node) error {
	if node == nil {
		return raise(ErrType, "node to insert must not be nil")
	}
	start := r.start.Node
	if start.kind == ProcessingInstructionNode || start.kind == CommentNode ||
		(NodeIsText(start) && start.Parent() == nil) || start == node {
		return raise(ErrHierarchyRequest, "cannot insert %s at %s", node, r.start)
	}
	var ref *Node
	if NodeIsText(start) {
		ref = start
	} else {
		ref = start.ChildAt(r.start.Offset)
	}
	parent := start
	if ref != nil {
		parent = ref.Parent()
	}
	if err := parent.ensurePreInsertionValidity(node, ref); err != nil {
		return err
	}
	if NodeIsText(start) {
		ref = start.splitText(r.start.Offset)
	}
	if node == ref {
		ref = ref.NextSibling()
	}
	if node.Parent() != nil {
		node.remove(false)
	}
	newOffset := parent.Length()
	if ref != nil {
		newOffset = ref.Index()
	}
	if node.kind == DocumentFragmentNode {
		newOffset += node.Length()
	} else {
		newOffset++
	}
	if _, err := parent.preInsert(node, ref); err != nil {
		return err
	}
	if r.Collapsed() {
		r.end = BoundaryPoint{parent, newOffset}
	}
	return nil
}

// SurroundContents moves the contents of the range into newParent and inserts
// newParent at the position of the range. The range then selects newParent.
func (r *Range) SurroundContents(newParent *Node) error {
	if newParent == nil {
		return raise(ErrType, "new parent must not be nil")
	}
	for _, boundary := range []*Node{r.start.Node, r.end.Node} {
		for anc := range boundary.InclusiveAncestors() {
			if !NodeIsText(anc) && r.isPartiallyContained(anc) {
				return raise(ErrInvalidState, "%s is partially contained in the range", anc)
			}
		}
	}
	switch newParent.kind {
	case DocumentNode, DocumentTypeNode, DocumentFragmentNode:
		return raise(ErrInvalidNodeType, "%s cannot surround range contents", newParent)
	}
	fragment, err := r.extract()
	if err != nil {
		return err
	}
	if newParent.HasChildNodes() {
		newParent.replaceAll(nil)
	}
	if err := r.InsertNode(newParent); err != nil {
		return err
	}
	if _, err := newParent.AppendChild(fragment); err != nil {
		return err
	}
	return r.SelectNode(newParent)
}
