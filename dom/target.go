package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"reflect"
)

// EventTarget is implemented by nodes and by stand-alone targets created with
// NewEventTarget.
type EventTarget interface {
	AddEventListener(typ string, listener EventListener, opts ...ListenerOption)
	RemoveEventListener(typ string, listener EventListener, opts ...ListenerOption)
	DispatchEvent(e *Event) (bool, error)
	eventTargetData() *targetData
	getTheParent(e *Event) EventTarget
}

// EventListener is the interface of event handlers. Errors returned by a
// listener are reported, but do not influence dispatch.
//
// Listeners are identified by equality of interface values. Listener types
// which are not comparable (funcs, maps, slices) cannot be removed and are
// never recognized as duplicates; use NewListener to wrap a func.
type EventListener interface {
	HandleEvent(e *Event) error
}

type funcListener struct {
	f func(*Event) error
}

func (l *funcListener) HandleEvent(e *Event) error {
	return l.f(e)
}

// NewListener wraps a function as an EventListener. Every call creates a
// distinct listener; keep it to remove it later.
func NewListener(f func(*Event) error) EventListener {
	return &funcListener{f: f}
}

func sameListener(a, b EventListener) bool {
	ta := reflect.TypeOf(a)
	if ta == nil || ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

// ListenerOption is an option for AddEventListener and RemoveEventListener.
type ListenerOption func(*listenerFlags)

type listenerFlags struct {
	capture, once, passive bool
}

// Capture registers a listener for the capturing phase.
var Capture ListenerOption = func(f *listenerFlags) { f.capture = true }

// Once removes a listener before its first invocation.
var Once ListenerOption = func(f *listenerFlags) { f.once = true }

// Passive makes PreventDefault a no-op inside the listener.
var Passive ListenerOption = func(f *listenerFlags) { f.passive = true }

type listener struct {
	typ      string
	callback EventListener
	listenerFlags
	removed bool
}

// targetData is the event-related state of a target.
type targetData struct {
	agent                    *Agent
	self                     EventTarget
	listeners                []*listener
	activation               func(*Event)
	legacyPreActivation      func(*Event)
	legacyCanceledActivation func(*Event)
}

func (td *targetData) init(agent *Agent, self EventTarget) {
	td.agent = agent
	td.self = self
}

func flagsOf(opts []ListenerOption) listenerFlags {
	var flags listenerFlags
	for _, option := range opts {
		if option != nil {
			option(&flags)
		}
	}
	return flags
}

func (td *targetData) addListener(typ string, callback EventListener, opts []ListenerOption) {
	if callback == nil {
		return
	}
	flags := flagsOf(opts)
	for _, l := range td.listeners {
		if l.typ == typ && l.capture == flags.capture && sameListener(l.callback, callback) {
			return
		}
	}
	td.listeners = append(td.listeners, &listener{typ: typ, callback: callback, listenerFlags: flags})
}

func (td *targetData) removeListener(typ string, callback EventListener, opts []ListenerOption) {
	capture := flagsOf(opts).capture
	for i, l := range td.listeners {
		if l.typ == typ && l.capture == capture && sameListener(l.callback, callback) {
			td.dropListener(i)
			return
		}
	}
}

// dropListener marks a listener as removed, so that running dispatches holding
// a snapshot skip it, and deletes it from the list.
func (td *targetData) dropListener(i int) {
	td.listeners[i].removed = true
	td.listeners = append(td.listeners[:i:i], td.listeners[i+1:]...)
}

func (td *targetData) removeListenerEntry(l *listener) {
	for i, other := range td.listeners {
		if other == l {
			td.dropListener(i)
			return
		}
	}
}

// --- Nodes as event targets -------------------------------------------------

// AddEventListener registers a listener for events of type typ. Registering
// the same listener for the same type and phase twice is a no-op.
func (n *Node) AddEventListener(typ string, listener EventListener, opts ...ListenerOption) {
	n.target.addListener(typ, listener, opts)
}

// RemoveEventListener removes a listener. Only the Capture option is relevant.
func (n *Node) RemoveEventListener(typ string, listener EventListener, opts ...ListenerOption) {
	n.target.removeListener(typ, listener, opts)
}

// DispatchEvent dispatches an untrusted event to n. It returns false if the
// event has been canceled. An event which is being dispatched, or which has
// not been initialized, is rejected with an InvalidStateError.
func (n *Node) DispatchEvent(e *Event) (bool, error) {
	return dispatchUntrusted(n, e)
}

// SetActivationBehavior sets the default action of n, which runs after an
// uncanceled activation event (e.g., "click") has been dispatched.
func (n *Node) SetActivationBehavior(behavior func(*Event)) {
	n.target.activation = behavior
}

// SetLegacyPreActivation sets a behavior which runs before the event path of
// an activation event is invoked.
func (n *Node) SetLegacyPreActivation(behavior func(*Event)) {
	n.target.legacyPreActivation = behavior
}

// SetLegacyCanceledActivation sets a behavior which runs instead of the
// activation behavior if the activation event has been canceled.
func (n *Node) SetLegacyCanceledActivation(behavior func(*Event)) {
	n.target.legacyCanceledActivation = behavior
}

func (n *Node) eventTargetData() *targetData {
	return &n.target
}

// getTheParent determines the next hop of the event path.
func (n *Node) getTheParent(e *Event) EventTarget {
	if n.assignedSlot != nil {
		return n.assignedSlot
	}
	if n.IsShadowRoot() {
		if !e.composed && len(e.path) > 0 {
			if first, ok := e.path[0].invocationTarget.(*Node); ok && first.Root() == n {
				return nil
			}
		}
		return n.host
	}
	if p := n.Parent(); p != nil {
		return p
	}
	return nil
}

// --- Stand-alone targets ----------------------------------------------------

// Target is an event target which is not a node. Its path consists of itself
// and, optionally, a chain of parent targets.
type Target struct {
	data   targetData
	parent EventTarget
}

// NewEventTarget creates a stand-alone event target. parent may be nil.
func NewEventTarget(agent *Agent, parent EventTarget) *Target {
	t := &Target{parent: parent}
	t.data.init(agent, t)
	return t
}

// AddEventListener registers a listener, see Node.AddEventListener.
func (t *Target) AddEventListener(typ string, listener EventListener, opts ...ListenerOption) {
	t.data.addListener(typ, listener, opts)
}

// RemoveEventListener removes a listener, see Node.RemoveEventListener.
func (t *Target) RemoveEventListener(typ string, listener EventListener, opts ...ListenerOption) {
	t.data.removeListener(typ, listener, opts)
}

// DispatchEvent dispatches an untrusted event, see Node.DispatchEvent.
func (t *Target) DispatchEvent(e *Event) (bool, error) {
	return dispatchUntrusted(t, e)
}

// SetActivationBehavior sets the default action of t.
func (t *Target) SetActivationBehavior(behavior func(*Event)) {
	t.data.activation = behavior
}

func (t *Target) eventTargetData() *targetData {
	return &t.data
}

func (t *Target) getTheParent(e *Event) EventTarget {
	return t.parent
}
