package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

// Slots are assigned by name: a slottable child of a shadow host is assigned to
// the first slot in the host's shadow tree whose "name" attribute equals the
// slottable's "slot" attribute (text nodes use the empty name).

func slotName(n *Node) string {
	attr := "slot"
	if NodeIsSlot(n) {
		attr = "name"
	}
	name, _ := n.GetAttribute(attr)
	return name
}

// AssignedSlot returns the slot n is assigned to. Slots in closed shadow trees
// are not revealed.
func (n *Node) AssignedSlot() *Node {
	return n.findSlot(true)
}

// AssignedNodes returns the slottables assigned to a slot. If flatten is set,
// slots assigned to slots are replaced by their own assigned nodes, and a slot
// without assigned nodes is replaced by its children.
func (n *Node) AssignedNodes(flatten bool) []*Node {
	if !flatten {
		return append([]*Node(nil), n.assignedNodes...)
	}
	return n.findFlattenedSlottables()
}

// findSlot returns the slot for a slottable. If open is set, closed shadow
// trees are not searched.
func (n *Node) findSlot(open bool) *Node {
	parent := n.Parent()
	if parent == nil || parent.shadowRoot == nil {
		return nil
	}
	shadow := parent.shadowRoot
	if open && shadow.mode != ShadowRootOpen {
		return nil
	}
	name := slotName(n)
	for d := range shadow.Descendants() {
		if NodeIsSlot(d) && slotName(d) == name {
			return d
		}
	}
	return nil
}

func (n *Node) findSlottables() []*Node {
	root := n.Root()
	if !root.IsShadowRoot() {
		return nil
	}
	var result []*Node
	for _, slottable := range root.host.ChildNodes() {
		if NodeIsSlottable(slottable) && slottable.findSlot(false) == n {
			result = append(result, slottable)
		}
	}
	return result
}

func (n *Node) findFlattenedSlottables() []*Node {
	if !NodeIsSlot(n) {
		return nil
	}
	slottables := n.findSlottables()
	if len(slottables) == 0 {
		slottables = Filter(n.ChildNodes(), NodeIsSlottable)
	}
	var result []*Node
	for _, s := range slottables {
		if NodeIsSlot(s) {
			result = append(result, s.findFlattenedSlottables()...)
		} else {
			result = append(result, s)
		}
	}
	return result
}

// assignSlottables recomputes the assigned nodes of slot n, signalling a slot
// change if they differ.
func (n *Node) assignSlottables() {
	slottables := n.findSlottables()
	if !sameNodes(slottables, n.assignedNodes) {
		n.signalSlotChange()
	}
	for _, old := range n.assignedNodes {
		if old.assignedSlot == n {
			old.assignedSlot = nil
		}
	}
	n.assignedNodes = slottables
	for _, s := range slottables {
		s.assignedSlot = n
	}
}

// assignSlottablesForTree runs assignSlottables for every slot element in the
// tree rooted at n. Slot elements outside of shadow trees lose their assigned
// nodes.
func (n *Node) assignSlottablesForTree() {
	for d := range n.agent.tree.InclusiveDescendants(n) {
		if d.kind == ElementNode && d.name == "slot" {
			d.assignSlottables()
		}
	}
}

func (n *Node) assignASlot() {
	if slot := n.findSlot(false); slot != nil {
		slot.assignSlottables()
	}
}

func (n *Node) signalSlotChange() {
	n.agent.signalSlots.Append(n)
	n.agent.queueMutationObserverMicrotask()
}

func sameNodes(a, b []*Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
