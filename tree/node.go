package tree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"
	"fmt"

	"github.com/npillmayer/domcore/orderedset"
)

// ErrZeroNode is returned if a mutation is called with the zero value as a node.
var ErrZeroNode = errors.New("zero value is not a valid tree node")

// ErrNotAChild is returned if a reference node is not a child of the given parent.
var ErrNotAChild = errors.New("reference node is not a child of parent")

// ErrSelfContainment is returned if a node would become its own ancestor.
var ErrSelfContainment = errors.New("node cannot be an inclusive ancestor of its parent")

// entry is the registry record of a node.
type entry[N comparable] struct {
	parent   N
	children *orderedset.Set[N] // trapped, see register
}

// Tree is a registry of parent/children relations between nodes of type N.
// The zero value is not usable, create trees with New.
type Tree[N comparable] struct {
	entries map[N]*entry[N]
}

// New creates an empty tree registry.
func New[N comparable]() *Tree[N] {
	return &Tree[N]{entries: make(map[N]*entry[N])}
}

func (t *Tree[N]) String() string {
	return fmt.Sprintf("(Tree #entries=%d)", len(t.entries))
}

// lookup returns the entry for n without registering it.
func (t *Tree[N]) lookup(n N) *entry[N] {
	return t.entries[n]
}

// register returns the entry for n, creating it if necessary.
func (t *Tree[N]) register(n N) *entry[N] {
	if e, ok := t.entries[n]; ok {
		return e
	}
	e := &entry[N]{}
	e.children = orderedset.Trapped(orderedset.Hooks[N]{
		Added: func(child N) {
			ce := t.register(child)
			var zero N
			if ce.parent != zero && ce.parent != n {
				// detach from former parent; its hook will reset ce.parent
				t.register(ce.parent).children.RemoveItem(child)
			}
			ce.parent = n
		},
		Removed: func(child N) {
			ce := t.lookup(child)
			if ce == nil || ce.parent != n {
				return
			}
			var zero N
			ce.parent = zero
			t.compact(child)
		},
	})
	t.entries[n] = e
	return e
}

// compact drops the entry of a node which has neither parent nor children.
// It will be re-registered on next use.
func (t *Tree[N]) compact(n N) {
	var zero N
	if e := t.lookup(n); e != nil && e.parent == zero && e.children.IsEmpty() {
		delete(t.entries, n)
	}
}

// --- Mutation ---------------------------------------------------------------

// AppendChild appends child as the last child of parent.
// If child already has a parent, it is detached first.
func (t *Tree[N]) AppendChild(parent, child N) error {
	if err := t.checkInsert(parent, child); err != nil {
		return err
	}
	t.detach(child)
	t.register(parent).children.Append(child)
	tracer().Debugf("tree: appended %v to %v", child, parent)
	return nil
}

// PrependChild inserts child as the first child of parent.
func (t *Tree[N]) PrependChild(parent, child N) error {
	if err := t.checkInsert(parent, child); err != nil {
		return err
	}
	t.detach(child)
	t.register(parent).children.Prepend(child)
	return nil
}

// InsertBefore inserts child into the children of parent, right before ref.
// If ref is the zero value, child is appended.
func (t *Tree[N]) InsertBefore(parent, child, ref N) error {
	var zero N
	if ref == zero {
		return t.AppendChild(parent, child)
	}
	if err := t.checkInsert(parent, child); err != nil {
		return err
	}
	if t.Parent(ref) != parent {
		return ErrNotAChild
	}
	if child == ref {
		return nil
	}
	t.detach(child)
	pe := t.register(parent)
	pe.children.Insert(pe.children.IndexOf(ref), child)
	tracer().Debugf("tree: inserted %v into %v before %v", child, parent, ref)
	return nil
}

// InsertAt inserts child at position i of the children of parent.
// Positions beyond the end append.
func (t *Tree[N]) InsertAt(parent, child N, i int) error {
	if err := t.checkInsert(parent, child); err != nil {
		return err
	}
	t.detach(child)
	t.register(parent).children.Insert(i, child)
	return nil
}

// Remove detaches n from its parent and returns the former parent (or the
// zero value if n has been a root).
func (t *Tree[N]) Remove(n N) N {
	var zero N
	e := t.lookup(n)
	if e == nil || e.parent == zero {
		return zero
	}
	parent := e.parent
	t.register(parent).children.RemoveItem(n)
	t.compact(parent)
	tracer().Debugf("tree: removed %v from %v", n, parent)
	return parent
}

// Replace substitutes child old of parent by n, in place.
func (t *Tree[N]) Replace(parent, old, n N) error {
	if err := t.checkInsert(parent, n); err != nil {
		return err
	}
	if t.Parent(old) != parent {
		return ErrNotAChild
	}
	if old == n {
		return nil
	}
	if t.Parent(n) != parent {
		t.detach(n)
	}
	t.register(parent).children.Replace(old, n) // a sibling n is moved into old's place
	return nil
}

// RemoveChildren detaches all children of n and returns them in order.
func (t *Tree[N]) RemoveChildren(n N) []N {
	e := t.lookup(n)
	if e == nil {
		return nil
	}
	removed := e.children.Clear()
	t.compact(n)
	return removed
}

func (t *Tree[N]) checkInsert(parent, child N) error {
	var zero N
	if parent == zero || child == zero {
		return ErrZeroNode
	}
	if t.IsInclusiveAncestor(child, parent) {
		return ErrSelfContainment
	}
	return nil
}

// detach removes child from its current parent, which may be the parent it is
// about to be inserted into: re-inserting a child moves it to its new position.
func (t *Tree[N]) detach(child N) {
	var zero N
	if p := t.Parent(child); p != zero {
		t.Remove(child)
	}
}
