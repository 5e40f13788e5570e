package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"slices"
)

// Mutation record types.
const (
	childListMutation     = "childList"
	attributesMutation    = "attributes"
	characterDataMutation = "characterData"
)

// MutationRecord describes a single observed change. Records are immutable.
type MutationRecord struct {
	typ             string
	target          *Node
	addedNodes      []*Node
	removedNodes    []*Node
	previousSibling *Node
	nextSibling     *Node
	attributeName   *string
	oldValue        *string
}

// Type is one of "childList", "attributes" or "characterData".
func (r *MutationRecord) Type() string { return r.typ }

// Target is the node which changed: the parent for childList records.
func (r *MutationRecord) Target() *Node { return r.target }

// AddedNodes returns the inserted nodes of a childList record.
func (r *MutationRecord) AddedNodes() []*Node { return slices.Clone(r.addedNodes) }

// RemovedNodes returns the removed nodes of a childList record.
func (r *MutationRecord) RemovedNodes() []*Node { return slices.Clone(r.removedNodes) }

// PreviousSibling returns the sibling before the added or removed nodes.
func (r *MutationRecord) PreviousSibling() *Node { return r.previousSibling }

// NextSibling returns the sibling after the added or removed nodes.
func (r *MutationRecord) NextSibling() *Node { return r.nextSibling }

// AttributeName returns the name of a changed attribute.
func (r *MutationRecord) AttributeName() (string, bool) {
	if r.attributeName == nil {
		return "", false
	}
	return *r.attributeName, true
}

// OldValue returns the value before the change, if the observer asked for it
// and there has been one.
func (r *MutationRecord) OldValue() (string, bool) {
	if r.oldValue == nil {
		return "", false
	}
	return *r.oldValue, true
}

// MutationObserverInit holds the options of an observation. An AttributeFilter
// or AttributeOldValue implies Attributes, CharacterDataOldValue implies
// CharacterData.
type MutationObserverInit struct {
	ChildList             bool
	Attributes            bool
	CharacterData         bool
	Subtree               bool
	AttributeOldValue     bool
	CharacterDataOldValue bool
	AttributeFilter       []string // nil: no filter
}

// MutationCallback receives a batch of records. Errors are reported to the agent.
type MutationCallback func(records []*MutationRecord, observer *MutationObserver) error

// MutationObserver collects mutation records for nodes it observes and hands
// them to its callback in batches.
type MutationObserver struct {
	agent    *Agent
	callback MutationCallback
	nodes    []*Node
	queue    []*MutationRecord
}

// registeredObserver attaches an observer to a node. Transient registered
// observers have a source; they live on removed nodes until the next flush.
type registeredObserver struct {
	observer *MutationObserver
	options  MutationObserverInit
	source   *registeredObserver
}

// NewMutationObserver creates an observer.
func (a *Agent) NewMutationObserver(callback MutationCallback) *MutationObserver {
	return &MutationObserver{agent: a, callback: callback}
}

// Observe registers the observer for target. Observing a node again replaces
// the options of the former registration.
func (mo *MutationObserver) Observe(target *Node, options MutationObserverInit) error {
	if target == nil {
		return raise(ErrType, "target must not be nil")
	}
	if options.AttributeOldValue || options.AttributeFilter != nil {
		options.Attributes = true
	}
	if options.CharacterDataOldValue {
		options.CharacterData = true
	}
	if !options.ChildList && !options.Attributes && !options.CharacterData {
		return raise(ErrType, "one of childList, attributes or characterData must be set")
	}
	options.AttributeFilter = slices.Clone(options.AttributeFilter)
	for _, registered := range target.observers {
		if registered.observer != mo || registered.source != nil {
			continue
		}
		for _, node := range mo.nodes {
			node.observers = slices.DeleteFunc(node.observers, func(r *registeredObserver) bool {
				return r.source == registered
			})
		}
		registered.options = options
		return nil
	}
	target.observers = append(target.observers, &registeredObserver{observer: mo, options: options})
	if !slices.Contains(mo.nodes, target) {
		mo.nodes = append(mo.nodes, target)
	}
	tracer().Debugf("dom: observing %s", target)
	return nil
}

// Disconnect stops all observations and drops pending records.
func (mo *MutationObserver) Disconnect() {
	for _, node := range mo.nodes {
		node.observers = slices.DeleteFunc(node.observers, func(r *registeredObserver) bool {
			return r.observer == mo
		})
	}
	mo.nodes = nil
	mo.queue = nil
}

// addTransient attaches a transient registered observer to a removed node, so
// that mutations in the removed subtree are seen until the next flush.
func (mo *MutationObserver) addTransient(node *Node, source *registeredObserver) {
	node.observers = append(node.observers, &registeredObserver{
		observer: mo,
		options:  source.options,
		source:   source,
	})
	if !slices.Contains(mo.nodes, node) {
		mo.nodes = append(mo.nodes, node)
	}
}

// dropTransients removes the transient registered observers of mo and forgets
// nodes which are no longer observed.
func (mo *MutationObserver) dropTransients() {
	mo.nodes = slices.DeleteFunc(mo.nodes, func(node *Node) bool {
		node.observers = slices.DeleteFunc(node.observers, func(r *registeredObserver) bool {
			return r.observer == mo && r.source != nil
		})
		return !slices.ContainsFunc(node.observers, func(r *registeredObserver) bool {
			return r.observer == mo
		})
	})
}

// TakeRecords returns and clears the pending records.
func (mo *MutationObserver) TakeRecords() []*MutationRecord {
	records := mo.queue
	mo.queue = nil
	return records
}

// --- Queueing ---------------------------------------------------------------

type mutationDetails struct {
	attributeName   string
	oldValue        *string
	addedNodes      []*Node
	removedNodes    []*Node
	previousSibling *Node
	nextSibling     *Node
}

// interested matches a registered observer's options against a mutation.
func (registered *registeredObserver) interested(node, target *Node, typ string, attributeName string) bool {
	options := registered.options
	switch {
	case node != target && !options.Subtree:
		return false
	case typ == attributesMutation && !options.Attributes:
		return false
	case typ == attributesMutation && options.AttributeFilter != nil &&
		!slices.Contains(options.AttributeFilter, attributeName):
		return false
	case typ == characterDataMutation && !options.CharacterData:
		return false
	case typ == childListMutation && !options.ChildList:
		return false
	}
	return true
}

// queueMutationRecord creates one record per interested observer of target or
// its ancestors and schedules delivery.
func (a *Agent) queueMutationRecord(typ string, target *Node, details mutationDetails) {
	var interested []*MutationObserver
	oldValues := make(map[*MutationObserver]*string)
	for node := range target.InclusiveAncestors() {
		for _, registered := range node.observers {
			if !registered.interested(node, target, typ, details.attributeName) {
				continue
			}
			observer := registered.observer
			if _, ok := oldValues[observer]; !ok {
				interested = append(interested, observer)
				oldValues[observer] = nil
			}
			if (typ == attributesMutation && registered.options.AttributeOldValue) ||
				(typ == characterDataMutation && registered.options.CharacterDataOldValue) {
				oldValues[observer] = details.oldValue
			}
		}
	}
	if len(interested) == 0 {
		return
	}
	for _, observer := range interested {
		record := &MutationRecord{
			typ:             typ,
			target:          target,
			addedNodes:      slices.Clone(details.addedNodes),
			removedNodes:    slices.Clone(details.removedNodes),
			previousSibling: details.previousSibling,
			nextSibling:     details.nextSibling,
			oldValue:        oldValues[observer],
		}
		if typ == attributesMutation {
			name := details.attributeName
			record.attributeName = &name
		}
		observer.queue = append(observer.queue, record)
		a.pendingObservers.Append(observer)
	}
	a.queueMutationObserverMicrotask()
}

func (a *Agent) queueTreeMutationRecord(target *Node, added, removed []*Node, previousSibling, nextSibling *Node) {
	if len(added) == 0 && len(removed) == 0 {
		return
	}
	a.queueMutationRecord(childListMutation, target, mutationDetails{
		addedNodes:      added,
		removedNodes:    removed,
		previousSibling: previousSibling,
		nextSibling:     nextSibling,
	})
}

// queueMutationObserverMicrotask schedules a flush unless one is pending.
func (a *Agent) queueMutationObserverMicrotask() {
	if a.moScheduled {
		return
	}
	a.moScheduled = true
	a.QueueMicrotask(a.notifyMutationObservers)
}

// notifyMutationObservers delivers all pending records and fires pending
// slotchange events.
func (a *Agent) notifyMutationObservers() {
	a.moScheduled = false
	notifySet := a.pendingObservers.Clear()
	signalSet := a.signalSlots.Clear()
	tracer().Debugf("dom: notifying %d mutation observer(s)", len(notifySet))
	for _, mo := range notifySet {
		records := mo.TakeRecords()
		mo.dropTransients()
		if len(records) > 0 {
			a.invokeMutationCallback(mo, records)
		}
	}
	for _, slot := range signalSet {
		FireEvent(slot, "slotchange", EventInit{Bubbles: true})
	}
}

func (a *Agent) invokeMutationCallback(mo *MutationObserver, records []*MutationRecord) {
	defer func() {
		if r := recover(); r != nil {
			a.reportError(&CallbackError{Where: "mutation observer", Panic: r})
		}
	}()
	if err := mo.callback(records, mo); err != nil {
		a.reportError(&CallbackError{Where: "mutation observer", Err: err})
	}
}
