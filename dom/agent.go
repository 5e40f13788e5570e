package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"github.com/npillmayer/domcore/orderedset"
	"github.com/npillmayer/domcore/tree"
)

// Agent is a single-threaded execution context owning documents, their node tree
// registry, a microtask queue and the mutation-observer state.
type Agent struct {
	tree       *tree.Tree[*Node]
	serial     uint64
	microtasks []func()
	draining   bool
	// mutation observers
	moScheduled      bool
	pendingObservers *orderedset.Set[*MutationObserver]
	signalSlots      *orderedset.Set[*Node]
	// configuration
	report          func(error)
	legacyAliases   map[string]string
	activationTypes map[string]bool
	// notification hooks
	childrenChanged  []func(parent *Node)
	attributeChanged []func(el *Node, name, oldValue string, value *string)
	inserted         []func(n *Node)
	removing         []func(n, oldParent *Node)
}

// Option configures an agent.
type Option func(*Agent)

// WithErrorReporter sets the function which receives errors of event listeners
// and mutation observer callbacks. The default reporter traces them at error level.
func WithErrorReporter(report func(error)) Option {
	return func(a *Agent) {
		if report != nil {
			a.report = report
		}
	}
}

// WithLegacyAliases replaces the table of legacy event types. A trusted event
// that finds no listeners for its type is re-dispatched to listeners of the
// legacy alias of its type.
func WithLegacyAliases(aliases map[string]string) Option {
	return func(a *Agent) {
		a.legacyAliases = make(map[string]string, len(aliases))
		for k, v := range aliases {
			a.legacyAliases[k] = v
		}
	}
}

// WithActivationEventTypes sets the event types which trigger activation
// behavior. The default is "click".
func WithActivationEventTypes(types ...string) Option {
	return func(a *Agent) {
		a.activationTypes = make(map[string]bool, len(types))
		for _, t := range types {
			a.activationTypes[t] = true
		}
	}
}

var defaultLegacyAliases = map[string]string{
	"animationend":       "webkitAnimationEnd",
	"animationiteration": "webkitAnimationIteration",
	"animationstart":     "webkitAnimationStart",
	"transitionend":      "webkitTransitionEnd",
}

// NewAgent creates an agent. Use it like this:
//
//     agent := dom.NewAgent(dom.WithErrorReporter(func(err error) { … }))
//
func NewAgent(opts ...Option) *Agent {
	a := &Agent{
		tree:             tree.New[*Node](),
		pendingObservers: orderedset.New[*MutationObserver](),
		signalSlots:      orderedset.New[*Node](),
		report: func(err error) {
			tracer().Errorf("dom: %v", err)
		},
		legacyAliases:   defaultLegacyAliases,
		activationTypes: map[string]bool{"click": true},
	}
	for _, option := range opts {
		option(a)
	}
	return a
}

// Tree gives read access to the agent's parent/children registry.
func (a *Agent) Tree() *tree.Tree[*Node] {
	return a.tree
}

func (a *Agent) nextSerial() uint64 {
	a.serial++
	return a.serial
}

// reportError hands a callback failure to the error reporter.
func (a *Agent) reportError(err error) {
	a.report(err)
}

// --- Microtasks -------------------------------------------------------------

// QueueMicrotask appends a task to the microtask queue.
func (a *Agent) QueueMicrotask(task func()) {
	if task != nil {
		a.microtasks = append(a.microtasks, task)
	}
}

// PendingMicrotasks returns the number of queued microtasks.
func (a *Agent) PendingMicrotasks() int {
	return len(a.microtasks)
}

// PerformMicrotaskCheckpoint runs queued microtasks until the queue is empty,
// including microtasks queued by microtasks. Calls from within a microtask
// return immediately.
func (a *Agent) PerformMicrotaskCheckpoint() {
	if a.draining {
		return
	}
	a.draining = true
	defer func() { a.draining = false }()
	for len(a.microtasks) > 0 {
		task := a.microtasks[0]
		a.microtasks[0] = nil
		a.microtasks = a.microtasks[1:]
		a.runMicrotask(task)
	}
}

func (a *Agent) runMicrotask(task func()) {
	defer func() {
		if r := recover(); r != nil {
			a.reportError(&CallbackError{Where: "microtask", Panic: r})
		}
	}()
	task()
}

// --- Hooks ------------------------------------------------------------------

// OnChildrenChanged registers a hook which is called after the children of a
// node changed. Hooks run synchronously, in order of registration.
func (a *Agent) OnChildrenChanged(hook func(parent *Node)) {
	a.childrenChanged = append(a.childrenChanged, hook)
}

// OnAttributeChanged registers a hook which is called after an attribute has
// been set or removed. value is nil for removals.
func (a *Agent) OnAttributeChanged(hook func(el *Node, name, oldValue string, value *string)) {
	a.attributeChanged = append(a.attributeChanged, hook)
}

// OnInserted registers a hook which is called for every shadow-including
// inclusive descendant of an inserted node.
func (a *Agent) OnInserted(hook func(n *Node)) {
	a.inserted = append(a.inserted, hook)
}

// OnRemoving registers a hook which is called for a node right after it has
// been removed from oldParent.
func (a *Agent) OnRemoving(hook func(n, oldParent *Node)) {
	a.removing = append(a.removing, hook)
}

func (a *Agent) runChildrenChanged(parent *Node) {
	for _, hook := range a.childrenChanged {
		hook(parent)
	}
}

func (a *Agent) runAttributeChanged(el *Node, name, oldValue string, value *string) {
	for _, hook := range a.attributeChanged {
		hook(el, name, oldValue, value)
	}
}

func (a *Agent) runInserted(n *Node) {
	for _, hook := range a.inserted {
		hook(n)
	}
}

func (a *Agent) runRemoving(n, oldParent *Node) {
	for _, hook := range a.removing {
		hook(n, oldParent)
	}
}
