/*
Package dom implements the core of a Document Object Model: a mutable node tree,
event dispatch with shadow-tree encapsulation, live ranges and mutation observers.

Status

The package covers what a headless DOM needs before parsing, scripting bindings or
rendering can be put on top of it. HTML parsing is done elsewhere (see package
htmlbuild), and it builds trees through the very same insertion primitives as any
other client.

Overview

All nodes of a program live in an Agent. The agent owns the parent/children
registry (package tree), the microtask queue, the mutation-observer bookkeeping
and the notification hooks. Nodes never point to their relatives directly; every
structural query goes through the agent's tree registry.

    agent := dom.NewAgent()
    doc := agent.NewDocument()
    body := doc.CreateElement("body")
    doc.AppendChild(body)

Events

Events are dispatched in three phases, capturing, at-target and bubbling. The
event path is computed once per dispatch, crossing from slotted nodes to their
slots and from shadow roots to their hosts. Targets and related targets are
retargeted per path entry, so listeners outside a shadow tree never see nodes
inside of it. Listener errors (and panics) are reported to the agent's error
reporter; they never abort a dispatch.

Ranges

A Range is a pair of boundary points (node, offset). Ranges are live: every
range is registered with its document, and tree mutations and character data
changes rewrite affected boundary points in place. The start of a range never
comes after its end.

Mutation Observers

Tree, attribute and character data mutations are recorded for interested
observers. Records are delivered in batches, one callback invocation per observer,
from a single microtask. Clients drive microtasks with
Agent.PerformMicrotaskCheckpoint.

Concurrency

None of the types in this package are safe for concurrent use. A multi-threaded
host has to confine all work on an agent to a single goroutine at a time.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'domcore.dom'
func tracer() tracing.Trace {
	return tracing.Select("domcore.dom")
}
