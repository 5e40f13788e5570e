package tree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"iter"
)

// Parent returns the parent node of n or the zero value (for roots).
func (t *Tree[N]) Parent(n N) N {
	if e := t.lookup(n); e != nil {
		return e.parent
	}
	var zero N
	return zero
}

// HasParent is true if n is not a root.
func (t *Tree[N]) HasParent(n N) bool {
	var zero N
	return t.Parent(n) != zero
}

// Children returns a slice with all children of n.
func (t *Tree[N]) Children(n N) []N {
	if e := t.lookup(n); e != nil {
		return e.children.Items()
	}
	return nil
}

// ChildCount returns the number of children of n.
func (t *Tree[N]) ChildCount(n N) int {
	if e := t.lookup(n); e != nil {
		return e.children.Len()
	}
	return 0
}

// HasChildren is true if n has at least one child.
func (t *Tree[N]) HasChildren(n N) bool {
	return t.ChildCount(n) > 0
}

// Child returns the i-th child of n.
func (t *Tree[N]) Child(n N, i int) (N, bool) {
	var zero N
	if i < 0 || i >= t.ChildCount(n) {
		return zero, false
	}
	return t.lookup(n).children.At(i), true
}

// FirstChild returns the first child of n or the zero value.
func (t *Tree[N]) FirstChild(n N) N {
	ch, _ := t.Child(n, 0)
	return ch
}

// LastChild returns the last child of n or the zero value.
func (t *Tree[N]) LastChild(n N) N {
	ch, _ := t.Child(n, t.ChildCount(n)-1)
	return ch
}

// Index returns the position of n among its siblings, 0 for roots.
func (t *Tree[N]) Index(n N) int {
	var zero N
	p := t.Parent(n)
	if p == zero {
		return 0
	}
	return t.lookup(p).children.IndexOf(n)
}

// PreviousSibling returns the sibling right before n or the zero value.
func (t *Tree[N]) PreviousSibling(n N) N {
	var zero N
	p := t.Parent(n)
	if p == zero {
		return zero
	}
	sib, _ := t.Child(p, t.Index(n)-1)
	return sib
}

// NextSibling returns the sibling right after n or the zero value.
func (t *Tree[N]) NextSibling(n N) N {
	var zero N
	p := t.Parent(n)
	if p == zero {
		return zero
	}
	sib, _ := t.Child(p, t.Index(n)+1)
	return sib
}

// Root returns the root of the tree n belongs to, which may be n itself.
func (t *Tree[N]) Root(n N) N {
	var zero N
	for p := t.Parent(n); p != zero; p = t.Parent(n) {
		n = p
	}
	return n
}

// Depth returns the number of ancestors of n.
func (t *Tree[N]) Depth(n N) int {
	d := 0
	for range t.Ancestors(n) {
		d++
	}
	return d
}

// --- Sequences --------------------------------------------------------------

// Ancestors returns a sequence of the ancestors of n, from its parent up to
// the root. The sequence is evaluated lazily and may be restarted; a restart
// reflects the tree as it is at that time.
func (t *Tree[N]) Ancestors(n N) iter.Seq[N] {
	return func(yield func(N) bool) {
		var zero N
		for p := t.Parent(n); p != zero; p = t.Parent(p) {
			if !yield(p) {
				return
			}
		}
	}
}

// InclusiveAncestors is like Ancestors, but starts with n.
func (t *Tree[N]) InclusiveAncestors(n N) iter.Seq[N] {
	return func(yield func(N) bool) {
		if !yield(n) {
			return
		}
		for a := range t.Ancestors(n) {
			if !yield(a) {
				return
			}
		}
	}
}

// Descendants returns a depth-first (tree order) sequence of the descendants
// of n, not including n.
func (t *Tree[N]) Descendants(n N) iter.Seq[N] {
	return func(yield func(N) bool) {
		var zero N
		for d := t.Following(n, n); d != zero; d = t.Following(d, n) {
			if !yield(d) {
				return
			}
		}
	}
}

// InclusiveDescendants is like Descendants, but starts with n.
func (t *Tree[N]) InclusiveDescendants(n N) iter.Seq[N] {
	return func(yield func(N) bool) {
		if !yield(n) {
			return
		}
		for d := range t.Descendants(n) {
			if !yield(d) {
				return
			}
		}
	}
}

// Siblings returns the siblings of n in order, not including n.
func (t *Tree[N]) Siblings(n N) iter.Seq[N] {
	return func(yield func(N) bool) {
		var zero N
		p := t.Parent(n)
		if p == zero {
			return
		}
		for _, sib := range t.Children(p) {
			if sib != n && !yield(sib) {
				return
			}
		}
	}
}

// Following returns the node following n in tree order, without leaving the
// subtree rooted at within. It returns the zero value if n is the last node.
func (t *Tree[N]) Following(n N, within N) N {
	var zero N
	if first := t.FirstChild(n); first != zero {
		return first
	}
	for n != zero && n != within {
		if next := t.NextSibling(n); next != zero {
			return next
		}
		n = t.Parent(n)
	}
	return zero
}

// FollowingSkipChildren returns the node following n in tree order, skipping
// the descendants of n.
func (t *Tree[N]) FollowingSkipChildren(n N, within N) N {
	var zero N
	for n != zero && n != within {
		if next := t.NextSibling(n); next != zero {
			return next
		}
		n = t.Parent(n)
	}
	return zero
}

// Preceding returns the node preceding n in tree order, or the zero value for
// roots.
func (t *Tree[N]) Preceding(n N) N {
	var zero N
	prev := t.PreviousSibling(n)
	if prev == zero {
		return t.Parent(n)
	}
	for last := t.LastChild(prev); last != zero; last = t.LastChild(prev) {
		prev = last
	}
	return prev
}

// --- Containment and order --------------------------------------------------

// IsDescendant is true if a is a descendant of b.
func (t *Tree[N]) IsDescendant(a, b N) bool {
	for anc := range t.Ancestors(a) {
		if anc == b {
			return true
		}
	}
	return false
}

// IsInclusiveDescendant is true if a is b or a descendant of b.
func (t *Tree[N]) IsInclusiveDescendant(a, b N) bool {
	return a == b || t.IsDescendant(a, b)
}

// IsAncestor is true if a is an ancestor of b.
func (t *Tree[N]) IsAncestor(a, b N) bool {
	return t.IsDescendant(b, a)
}

// IsInclusiveAncestor is true if a is b or an ancestor of b.
func (t *Tree[N]) IsInclusiveAncestor(a, b N) bool {
	return a == b || t.IsDescendant(b, a)
}

// IsSibling is true if a and b are distinct children of the same parent.
func (t *Tree[N]) IsSibling(a, b N) bool {
	var zero N
	p := t.Parent(a)
	return a != b && p != zero && p == t.Parent(b)
}

// IsPreceding is true if a and b share a root and a precedes b in tree order.
func (t *Tree[N]) IsPreceding(a, b N) bool {
	if a == b {
		return false
	}
	pa, pb := t.pathFromRoot(a), t.pathFromRoot(b)
	if pa[0] != pb[0] {
		return false
	}
	i := 0
	for i < len(pa) && i < len(pb) && pa[i] == pb[i] {
		i++
	}
	if i == len(pa) { // a is an ancestor of b
		return true
	}
	if i == len(pb) { // b is an ancestor of a
		return false
	}
	return t.Index(pa[i]) < t.Index(pb[i])
}

// IsFollowing is true if a and b share a root and a follows b in tree order.
func (t *Tree[N]) IsFollowing(a, b N) bool {
	return t.IsPreceding(b, a)
}

// CommonAncestor returns the lowest inclusive ancestor shared by a and b,
// or the zero value if they live in different trees.
func (t *Tree[N]) CommonAncestor(a, b N) N {
	pa, pb := t.pathFromRoot(a), t.pathFromRoot(b)
	var common N
	for i := 0; i < len(pa) && i < len(pb) && pa[i] == pb[i]; i++ {
		common = pa[i]
	}
	return common
}

// pathFromRoot returns the inclusive ancestors of n, root first.
func (t *Tree[N]) pathFromRoot(n N) []N {
	var path []N
	for a := range t.InclusiveAncestors(n) {
		path = append(path, a)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
