/*
Package orderedset implements an insertion-ordered set.

A Set is a hybrid of a list and a set: members are unique, their order is the
order of insertion (or of explicit positioning), and membership tests are O(1).

Sets may be "trapped": clients install Hooks which are called whenever a member
enters or leaves the set. Package tree uses this to keep parent pointers of nodes
consistent with the children sets of their parents, without any bookkeeping at the
call sites.

Sets are not concurrency-safe.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package orderedset

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'domcore.orderedset'.
func tracer() tracing.Trace {
	return tracing.Select("domcore.orderedset")
}
