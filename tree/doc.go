/*
Package tree implements a parent/children registry over opaque node identities.

Nodes do not carry pointers to their relatives. Instead, a Tree keeps a side table
node → {parent, children}, registering a node lazily the first time it is
referenced. Node identities may be anything comparable: pointers, integer
handles into an arena, etc.

The children of every node are kept in a trapped orderedset.Set. Each time a child
enters or leaves a children set, the set's hooks update the child's parent entry.
This is the single point where the parent/children invariant is enforced;
no call site has to do its own bookkeeping. Moving a node to a new parent
silently detaches it from its former parent.

Navigation:

   Parent(n), Children(n), FirstChild(n), LastChild(n)   // O(1)
   Root(n)                                               // O(depth)
   Index(n), PreviousSibling(n), NextSibling(n)          // O(index)
   Ancestors(n), Descendants(n), Siblings(n)             // lazy sequences
   IsDescendant(a, b), IsPreceding(a, b), …              // order and containment

A Tree performs no hierarchy validation, and it is not concurrency-safe.
Higher layers (package dom) check structural rules before calling the
mutation functions.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'domcore.tree'.
func tracer() tracing.Trace {
	return tracing.Select("domcore.tree")
}
