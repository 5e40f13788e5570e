package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"time"
)

// EventPhase is the dispatch phase an event is in.
type EventPhase uint8

// Dispatch phases.
const (
	PhaseNone      EventPhase = 0
	PhaseCapturing EventPhase = 1
	PhaseAtTarget  EventPhase = 2
	PhaseBubbling  EventPhase = 3
)

func (p EventPhase) String() string {
	switch p {
	case PhaseCapturing:
		return "capturing"
	case PhaseAtTarget:
		return "at-target"
	case PhaseBubbling:
		return "bubbling"
	}
	return "none"
}

// EventInit holds the initial values of an event.
type EventInit struct {
	Bubbles       bool
	Cancelable    bool
	Composed      bool
	RelatedTarget EventTarget
	TouchTargets  []EventTarget
	Detail        interface{}
}

// Event is a value dispatched to event targets. Events are not single-use: an
// event may be dispatched again as soon as its previous dispatch has finished.
type Event struct {
	typ           string
	bubbles       bool
	cancelable    bool
	composed      bool
	isTrusted     bool
	timeStamp     time.Time
	detail        interface{}
	target        EventTarget
	relatedTarget EventTarget
	touchTargets  []EventTarget
	currentTarget EventTarget
	path          []*pathEntry
	phase         EventPhase
	// flags
	initialized       bool
	dispatching       bool
	stopPropagation   bool
	stopImmediate     bool
	canceled          bool
	inPassiveListener bool
}

// pathEntry is a struct of the event path.
type pathEntry struct {
	invocationTarget     EventTarget
	inShadowTree         bool
	shadowAdjustedTarget EventTarget // non-nil at real target hops
	relatedTarget        EventTarget
	touchTargets         []EventTarget
	rootOfClosedTree     bool
	slotInClosedTree     bool
}

// NewEvent creates an untrusted event.
func NewEvent(typ string, init EventInit) *Event {
	return &Event{
		typ:           typ,
		bubbles:       init.Bubbles,
		cancelable:    init.Cancelable,
		composed:      init.Composed,
		relatedTarget: init.RelatedTarget,
		touchTargets:  append([]EventTarget(nil), init.TouchTargets...),
		detail:        init.Detail,
		timeStamp:     time.Now(),
		initialized:   true,
	}
}

// NewTrustedEvent creates an event as if created by the user agent itself.
// Only trusted events are re-dispatched under legacy type aliases.
func NewTrustedEvent(typ string, init EventInit) *Event {
	e := NewEvent(typ, init)
	e.isTrusted = true
	return e
}

// CreateEvent creates an uninitialized event, which has to be initialized
// with InitEvent before dispatch.
func (doc *Node) CreateEvent() *Event {
	return &Event{timeStamp: time.Now()}
}

// InitEvent (re-)initializes an event. It is a no-op during dispatch.
func (e *Event) InitEvent(typ string, bubbles, cancelable bool) {
	if e.dispatching {
		return
	}
	e.initialized = true
	e.stopPropagation, e.stopImmediate, e.canceled = false, false, false
	e.isTrusted = false
	e.target = nil
	e.typ, e.bubbles, e.cancelable = typ, bubbles, cancelable
}

func (e *Event) String() string {
	return "Event(" + e.typ + ")"
}

// Type returns the event type.
func (e *Event) Type() string { return e.typ }

// Bubbles is true for events which run the bubbling phase.
func (e *Event) Bubbles() bool { return e.bubbles }

// Cancelable is true for events whose default action may be prevented.
func (e *Event) Cancelable() bool { return e.cancelable }

// Composed is true for events which propagate out of shadow trees.
func (e *Event) Composed() bool { return e.composed }

// IsTrusted is true for events created by the user agent.
func (e *Event) IsTrusted() bool { return e.isTrusted }

// TimeStamp returns the creation time of the event.
func (e *Event) TimeStamp() time.Time { return e.timeStamp }

// Detail returns the client data of the event.
func (e *Event) Detail() interface{} { return e.detail }

// Target returns the (retargeted) target of the event.
func (e *Event) Target() EventTarget { return e.target }

// RelatedTarget returns the (retargeted) related target of the event.
func (e *Event) RelatedTarget() EventTarget { return e.relatedTarget }

// TouchTargets returns the (retargeted) touch target list.
func (e *Event) TouchTargets() []EventTarget {
	return append([]EventTarget(nil), e.touchTargets...)
}

// CurrentTarget returns the target whose listeners are being invoked.
func (e *Event) CurrentTarget() EventTarget { return e.currentTarget }

// EventPhase returns the current dispatch phase.
func (e *Event) EventPhase() EventPhase { return e.phase }

// IsDispatching is true while the event is being dispatched.
func (e *Event) IsDispatching() bool { return e.dispatching }

// StopPropagation prevents invocation of listeners on further targets.
func (e *Event) StopPropagation() { e.stopPropagation = true }

// StopImmediatePropagation additionally prevents the remaining listeners of the
// current target from being invoked.
func (e *Event) StopImmediatePropagation() {
	e.stopPropagation = true
	e.stopImmediate = true
}

// CancelBubble reports whether propagation has been stopped.
func (e *Event) CancelBubble() bool { return e.stopPropagation }

// SetCancelBubble stops propagation if set; unsetting has no effect.
func (e *Event) SetCancelBubble(cancel bool) {
	if cancel {
		e.stopPropagation = true
	}
}

// PreventDefault cancels the event, if it is cancelable and not inside a
// passive listener.
func (e *Event) PreventDefault() {
	e.setCanceled()
}

// DefaultPrevented is true for canceled events.
func (e *Event) DefaultPrevented() bool { return e.canceled }

// ReturnValue is false for canceled events.
func (e *Event) ReturnValue() bool { return !e.canceled }

// SetReturnValue cancels the event if value is false.
func (e *Event) SetReturnValue(value bool) {
	if !value {
		e.setCanceled()
	}
}

func (e *Event) setCanceled() {
	if e.cancelable && !e.inPassiveListener {
		e.canceled = true
	}
}

// ComposedPath returns the invocation targets of the event path which are
// visible from the current target. Targets inside closed shadow trees are
// hidden from listeners outside of them.
func (e *Event) ComposedPath() []EventTarget {
	path := e.path
	if len(path) == 0 {
		return nil
	}
	current := e.currentTarget
	composed := []EventTarget{current}
	currentIndex := 0
	currentHiddenLevel := 0
	for i := len(path) - 1; i >= 0; i-- {
		if path[i].rootOfClosedTree {
			currentHiddenLevel++
		}
		if path[i].invocationTarget == current {
			currentIndex = i
			break
		}
		if path[i].slotInClosedTree {
			currentHiddenLevel--
		}
	}
	level, maxLevel := currentHiddenLevel, currentHiddenLevel
	for i := currentIndex - 1; i >= 0; i-- {
		if path[i].rootOfClosedTree {
			level++
		}
		if level <= maxLevel {
			composed = append([]EventTarget{path[i].invocationTarget}, composed...)
		}
		if path[i].slotInClosedTree {
			level--
			if level < maxLevel {
				maxLevel = level
			}
		}
	}
	level, maxLevel = currentHiddenLevel, currentHiddenLevel
	for i := currentIndex + 1; i < len(path); i++ {
		if path[i].slotInClosedTree {
			level++
		}
		if level <= maxLevel {
			composed = append(composed, path[i].invocationTarget)
		}
		if path[i].rootOfClosedTree {
			level--
			if level < maxLevel {
				maxLevel = level
			}
		}
	}
	return composed
}
