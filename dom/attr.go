package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

// Attr is a plain name/value attribute of an element. Namespaces are not
// supported.
type Attr struct {
	Name  string
	Value string
}

// Attributes returns a copy of the attribute list of an element.
func (n *Node) Attributes() []Attr {
	return append([]Attr(nil), n.attrs...)
}

// GetAttribute returns the value of an attribute.
func (n *Node) GetAttribute(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// HasAttribute is true if the element has an attribute called name.
func (n *Node) HasAttribute(name string) bool {
	_, ok := n.GetAttribute(name)
	return ok
}

// SetAttribute sets an attribute value, appending a new attribute if necessary.
func (n *Node) SetAttribute(name, value string) error {
	if n.kind != ElementNode {
		return raise(ErrInvalidNodeType, "%s cannot carry attributes", n)
	}
	if name == "" {
		return raise(ErrType, "attribute name must not be empty")
	}
	for i, a := range n.attrs {
		if a.Name == name {
			n.changeAttribute(name, &a.Value, &value, func() { n.attrs[i].Value = value })
			return nil
		}
	}
	n.changeAttribute(name, nil, &value, func() { n.attrs = append(n.attrs, Attr{name, value}) })
	return nil
}

// RemoveAttribute removes an attribute. It is a no-op if the attribute does
// not exist.
func (n *Node) RemoveAttribute(name string) {
	for i, a := range n.attrs {
		if a.Name == name {
			n.changeAttribute(name, &a.Value, nil, func() {
				n.attrs = append(n.attrs[:i:i], n.attrs[i+1:]...)
			})
			return
		}
	}
}

// ToggleAttribute removes an existing attribute or adds an empty one. It
// returns true if the attribute is present afterwards.
func (n *Node) ToggleAttribute(name string) (bool, error) {
	if n.HasAttribute(name) {
		n.RemoveAttribute(name)
		return false, nil
	}
	return true, n.SetAttribute(name, "")
}

// changeAttribute records the change, performs it and runs the attribute
// change steps. old is nil for new attributes, value is nil for removals.
func (n *Node) changeAttribute(name string, old, value *string, apply func()) {
	n.agent.queueMutationRecord(attributesMutation, n, mutationDetails{
		attributeName: name,
		oldValue:      old,
	})
	apply()
	oldValue := ""
	if old != nil {
		oldValue = *old
	}
	n.attributeChangeSteps(name, old, value)
	n.agent.runAttributeChanged(n, name, oldValue, value)
}

// attributeChangeSteps keeps slot assignment in sync with "slot" and "name"
// attributes.
func (n *Node) attributeChangeSteps(name string, old, value *string) {
	if sameOptional(old, value) {
		return
	}
	switch {
	case name == "name" && NodeIsSlot(n):
		n.Root().assignSlottablesForTree()
	case name == "slot" && NodeIsSlottable(n):
		if n.assignedSlot != nil {
			n.assignedSlot.assignSlottables()
		}
		n.assignASlot()
	}
}

func sameOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
