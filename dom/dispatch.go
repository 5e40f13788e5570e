package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

// dispatchUntrusted is the client entry point for dispatch.
func dispatchUntrusted(target EventTarget, e *Event) (bool, error) {
	if e == nil {
		return false, raise(ErrType, "event must not be nil")
	}
	if e.dispatching {
		return false, raise(ErrInvalidState, "%s is already being dispatched", e)
	}
	if !e.initialized {
		return false, raise(ErrInvalidState, "%s has not been initialized", e)
	}
	e.isTrusted = false
	return dispatch(target, e), nil
}

// FireEvent creates a trusted event and dispatches it to target.
func FireEvent(target EventTarget, typ string, init EventInit) bool {
	return dispatch(target, NewTrustedEvent(typ, init))
}

// dispatch runs the event path for e. It never fails; listener errors are
// reported to the agent.
func dispatch(target EventTarget, e *Event) bool {
	agent := target.eventTargetData().agent
	tracer().Debugf("dom: dispatching %s to %v", e, target)
	e.dispatching = true
	var activationTarget EventTarget
	relatedTarget := retarget(e.relatedTarget, target)
	clearTargets := false
	if target != relatedTarget || target == e.relatedTarget {
		touchTargets := retargetAll(e.touchTargets, target)
		e.appendToPath(target, target, relatedTarget, touchTargets, false)
		isActivationEvent := agent.activationTypes[e.typ]
		if isActivationEvent && hasActivationBehavior(target) {
			activationTarget = target
		}
		var slottable EventTarget
		if n, ok := target.(*Node); ok && n.assignedSlot != nil {
			slottable = n
		}
		slotInClosedTree := false
		parent := target.getTheParent(e)
		for parent != nil {
			if slottable != nil {
				slottable = nil
				if root := parent.(*Node).Root(); root.IsShadowRoot() && root.mode == ShadowRootClosed {
					slotInClosedTree = true
				}
			}
			if p, ok := parent.(*Node); ok && p.assignedSlot != nil {
				slottable = p
			}
			relatedTarget = retarget(e.relatedTarget, parent)
			touchTargets = retargetAll(e.touchTargets, parent)
			if isShadowIncludingAncestorHop(target, parent) {
				if isActivationEvent && e.bubbles && activationTarget == nil && hasActivationBehavior(parent) {
					activationTarget = parent
				}
				e.appendToPath(parent, nil, relatedTarget, touchTargets, slotInClosedTree)
			} else if parent == relatedTarget {
				parent = nil
			} else {
				target = parent
				if isActivationEvent && activationTarget == nil && hasActivationBehavior(target) {
					activationTarget = target
				}
				e.appendToPath(parent, target, relatedTarget, touchTargets, slotInClosedTree)
			}
			if parent != nil {
				parent = parent.getTheParent(e)
			}
			slotInClosedTree = false
		}
		var clearTargetsEntry *pathEntry
		for i := len(e.path) - 1; i >= 0; i-- {
			if e.path[i].shadowAdjustedTarget != nil {
				clearTargetsEntry = e.path[i]
				break
			}
		}
		clearTargets = isInShadowTree(clearTargetsEntry.shadowAdjustedTarget) ||
			isInShadowTree(clearTargetsEntry.relatedTarget)
		for _, t := range clearTargetsEntry.touchTargets {
			clearTargets = clearTargets || isInShadowTree(t)
		}
		if activationTarget != nil {
			if pre := activationTarget.eventTargetData().legacyPreActivation; pre != nil {
				pre(e)
			}
		}
		for i := len(e.path) - 1; i >= 0; i-- {
			entry := e.path[i]
			if entry.shadowAdjustedTarget != nil {
				e.phase = PhaseAtTarget
			} else {
				e.phase = PhaseCapturing
			}
			e.invoke(i, PhaseCapturing, agent)
		}
		for i, entry := range e.path {
			if entry.shadowAdjustedTarget != nil {
				e.phase = PhaseAtTarget
			} else {
				if !e.bubbles {
					continue
				}
				e.phase = PhaseBubbling
			}
			e.invoke(i, PhaseBubbling, agent)
		}
	}
	e.phase = PhaseNone
	e.currentTarget = nil
	e.path = nil
	e.dispatching = false
	e.stopPropagation = false
	e.stopImmediate = false
	if clearTargets {
		e.target = nil
		e.relatedTarget = nil
		e.touchTargets = nil
	}
	if activationTarget != nil {
		td := activationTarget.eventTargetData()
		if !e.canceled {
			if td.activation != nil {
				td.activation(e)
			}
		} else if td.legacyCanceledActivation != nil {
			td.legacyCanceledActivation(e)
		}
	}
	tracer().Debugf("dom: dispatch of %s done, canceled=%v", e, e.canceled)
	return !e.canceled
}

// isShadowIncludingAncestorHop is true if parent is not a node, or if the
// root of target is a shadow-including inclusive ancestor of parent. In this
// case parent is not a new target.
func isShadowIncludingAncestorHop(target, parent EventTarget) bool {
	p, ok := parent.(*Node)
	if !ok {
		return true
	}
	t, ok := target.(*Node)
	if !ok {
		return false
	}
	return t.Root().isShadowIncludingInclusiveAncestorOf(p)
}

func hasActivationBehavior(t EventTarget) bool {
	return t.eventTargetData().activation != nil
}

func isInShadowTree(t EventTarget) bool {
	n, ok := t.(*Node)
	return ok && n != nil && n.Root().IsShadowRoot()
}

func (e *Event) appendToPath(invocationTarget, shadowAdjustedTarget, relatedTarget EventTarget,
	touchTargets []EventTarget, slotInClosedTree bool) {
	//
	entry := &pathEntry{
		invocationTarget:     invocationTarget,
		shadowAdjustedTarget: shadowAdjustedTarget,
		relatedTarget:        relatedTarget,
		touchTargets:         touchTargets,
		slotInClosedTree:     slotInClosedTree,
	}
	if n, ok := invocationTarget.(*Node); ok {
		entry.inShadowTree = n.Root().IsShadowRoot()
		entry.rootOfClosedTree = n.IsShadowRoot() && n.mode == ShadowRootClosed
	}
	e.path = append(e.path, entry)
}

// invoke calls the listeners of path entry i for a phase.
func (e *Event) invoke(i int, phase EventPhase, agent *Agent) {
	entry := e.path[i]
	for j := i; j >= 0; j-- {
		if e.path[j].shadowAdjustedTarget != nil {
			e.target = e.path[j].shadowAdjustedTarget
			break
		}
	}
	e.relatedTarget = entry.relatedTarget
	e.touchTargets = entry.touchTargets
	if e.stopPropagation {
		return
	}
	e.currentTarget = entry.invocationTarget
	td := entry.invocationTarget.eventTargetData()
	listeners := append([]*listener(nil), td.listeners...)
	found := e.innerInvoke(td, listeners, phase, agent)
	if !found && e.isTrusted {
		original := e.typ
		alias, ok := agent.legacyAliases[original]
		if !ok {
			return
		}
		e.typ = alias
		e.innerInvoke(td, listeners, phase, agent)
		e.typ = original
	}
}

// innerInvoke runs a snapshot of listeners. Listeners added during dispatch are
// not part of the snapshot, listeners removed during dispatch are skipped.
func (e *Event) innerInvoke(td *targetData, listeners []*listener, phase EventPhase, agent *Agent) bool {
	found := false
	for _, l := range listeners {
		if l.removed || l.typ != e.typ {
			continue
		}
		found = true
		if (phase == PhaseCapturing && !l.capture) || (phase == PhaseBubbling && l.capture) {
			continue
		}
		if l.once {
			td.removeListenerEntry(l)
		}
		if l.passive {
			e.inPassiveListener = true
		}
		callListener(l.callback, e, agent)
		e.inPassiveListener = false
		if e.stopImmediate {
			break
		}
	}
	return found
}

func callListener(callback EventListener, e *Event, agent *Agent) {
	defer func() {
		if r := recover(); r != nil {
			agent.reportError(&CallbackError{Where: "listener", Panic: r})
		}
	}()
	if err := callback.HandleEvent(e); err != nil {
		agent.reportError(&CallbackError{Where: "listener", Err: err})
	}
}

// retarget replaces a by the host of its shadow root for as long as a lives in a
// shadow tree which is not a shadow-including ancestor of b.
func retarget(a, b EventTarget) EventTarget {
	for {
		n, ok := a.(*Node)
		if !ok || n == nil {
			return a
		}
		root := n.Root()
		if !root.IsShadowRoot() {
			return a
		}
		if bn, ok := b.(*Node); ok && root.isShadowIncludingInclusiveAncestorOf(bn) {
			return a
		}
		a = root.host
	}
}

// Retarget exposes the retargeting algorithm: it returns what a looks like
// from the perspective of b.
func Retarget(a, b EventTarget) EventTarget {
	return retarget(a, b)
}

func retargetAll(targets []EventTarget, against EventTarget) []EventTarget {
	if len(targets) == 0 {
		return nil
	}
	result := make([]EventTarget, len(targets))
	for i, t := range targets {
		result[i] = retarget(t, against)
	}
	return result
}
