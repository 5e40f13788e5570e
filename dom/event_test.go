package dom

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPathForTest creates the chain doc → root → p → t.
func buildPathForTest(t *testing.T, agent *Agent) (doc, root, p, target *Node) {
	doc = agent.NewDocument()
	root = doc.CreateElement("root")
	p = doc.CreateElement("p")
	target = doc.CreateElement("t")
	doc.AppendChild(root)
	root.AppendChild(p)
	if _, err := p.AppendChild(target); err != nil {
		t.Fatalf("cannot build event path for test: %v", err)
	}
	return
}

func counter(count *int) EventListener {
	return NewListener(func(*Event) error {
		*count++
		return nil
	})
}

func TestListenerFiresOncePerDispatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domcore.dom")
	defer teardown()
	//
	_, _, _, target := buildPathForTest(t, NewAgent())
	count := 0
	l1 := counter(&count)
	target.AddEventListener("click", l1)
	target.AddEventListener("click", l1) // duplicate, ignored
	e := NewEvent("click", EventInit{Bubbles: true})
	for i := 0; i < 2; i++ {
		if _, err := target.DispatchEvent(e); err != nil {
			t.Fatal(err)
		}
	}
	if count != 2 {
		t.Errorf("expected listener to fire twice, fired %d times", count)
	}
	target.RemoveEventListener("click", l1)
	target.DispatchEvent(e)
	if count != 2 {
		t.Errorf("expected removed listener not to fire, count is %d", count)
	}
}

func TestOnceListener(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domcore.dom")
	defer teardown()
	//
	_, _, _, target := buildPathForTest(t, NewAgent())
	count := 0
	target.AddEventListener("ping", counter(&count), Once)
	target.DispatchEvent(NewEvent("ping", EventInit{}))
	target.DispatchEvent(NewEvent("ping", EventInit{}))
	if count != 1 {
		t.Errorf("expected once-listener to fire exactly once, fired %d times", count)
	}
}

func TestPhases(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domcore.dom")
	defer teardown()
	//
	_, root, p, target := buildPathForTest(t, NewAgent())
	var log []string
	record := func(name string) EventListener {
		return NewListener(func(e *Event) error {
			log = append(log, name+":"+e.EventPhase().String())
			return nil
		})
	}
	root.AddEventListener("click", record("root"), Capture)
	root.AddEventListener("click", record("root"))
	p.AddEventListener("click", record("p"), Capture)
	p.AddEventListener("click", record("p"))
	target.AddEventListener("click", record("t"))
	target.AddEventListener("click", record("t-capture"), Capture)
	target.DispatchEvent(NewEvent("click", EventInit{Bubbles: true}))
	assert.Equal(t, []string{
		"root:capturing", "p:capturing", "t-capture:at-target",
		"t:at-target", "p:bubbling", "root:bubbling",
	}, log)
	//
	log = nil
	target.DispatchEvent(NewEvent("click", EventInit{}))
	assert.Equal(t, []string{
		"root:capturing", "p:capturing", "t-capture:at-target", "t:at-target",
	}, log, "non-bubbling event must not reach ancestor bubble listeners")
}

func TestStopPropagationInCapture(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domcore.dom")
	defer teardown()
	//
	_, _, p, target := buildPathForTest(t, NewAgent())
	var first, second, deeper int
	p.AddEventListener("click", NewListener(func(e *Event) error {
		first++
		e.StopPropagation()
		return nil
	}), Capture)
	p.AddEventListener("click", counter(&second), Capture)
	target.AddEventListener("click", counter(&deeper))
	target.DispatchEvent(NewEvent("click", EventInit{Bubbles: true}))
	if first != 1 || second != 1 {
		t.Errorf("expected both capture listeners on p to run, ran %d and %d times", first, second)
	}
	if deeper != 0 {
		t.Errorf("expected target listener to be skipped, ran %d times", deeper)
	}
	//
	var immediate int
	target.AddEventListener("tap", NewListener(func(e *Event) error {
		e.StopImmediatePropagation()
		return nil
	}))
	target.AddEventListener("tap", counter(&immediate))
	target.DispatchEvent(NewEvent("tap", EventInit{}))
	if immediate != 0 {
		t.Errorf("expected stopImmediatePropagation to skip the second listener, ran %d times", immediate)
	}
}

func TestComposedPathWithoutShadow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domcore.dom")
	defer teardown()
	//
	doc, root, p, target := buildPathForTest(t, NewAgent())
	var path []EventTarget
	target.AddEventListener("click", NewListener(func(e *Event) error {
		path = e.ComposedPath()
		return nil
	}))
	e := NewEvent("click", EventInit{Bubbles: true})
	target.DispatchEvent(e)
	assert.Equal(t, []EventTarget{target, p, root, doc}, path)
	assert.Empty(t, e.ComposedPath(), "path must be cleared after dispatch")
	assert.Equal(t, EventTarget(target), e.Target())
	assert.Equal(t, PhaseNone, e.EventPhase())
}

func TestShadowRetargeting(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domcore.dom")
	defer teardown()
	//
	doc, root, _, _ := buildPathForTest(t, NewAgent())
	host := doc.CreateElement("host")
	root.AppendChild(host)
	shadow, err := host.AttachShadow(ShadowRootOpen)
	require.NoError(t, err)
	inner := doc.CreateElement("span")
	shadow.AppendChild(inner)
	//
	var seenByHost, seenByInner EventTarget
	host.AddEventListener("x", NewListener(func(e *Event) error {
		seenByHost = e.Target()
		return nil
	}))
	inner.AddEventListener("x", NewListener(func(e *Event) error {
		seenByInner = e.Target()
		return nil
	}))
	e := NewEvent("x", EventInit{Bubbles: true, Composed: true})
	inner.DispatchEvent(e)
	assert.Equal(t, EventTarget(inner), seenByInner)
	assert.Equal(t, EventTarget(host), seenByHost, "host must see the retargeted target")
	assert.Equal(t, EventTarget(host), e.Target())
	//
	seenByHost = nil
	e = NewEvent("x", EventInit{Bubbles: true})
	inner.DispatchEvent(e)
	assert.Nil(t, seenByHost, "non-composed event must not leave the shadow tree")
	assert.Nil(t, e.Target(), "targets inside shadow trees are cleared after dispatch")
	//
	assert.Equal(t, EventTarget(host), Retarget(inner, doc))
	assert.Equal(t, EventTarget(inner), Retarget(inner, shadow))
}

func TestClosedShadowComposedPath(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domcore.dom")
	defer teardown()
	//
	doc, root, _, _ := buildPathForTest(t, NewAgent())
	host := doc.CreateElement("host")
	root.AppendChild(host)
	shadow, err := host.AttachShadow(ShadowRootClosed)
	require.NoError(t, err)
	require.Nil(t, host.ShadowRoot(), "closed shadow root must not be exposed")
	inner := doc.CreateElement("span")
	shadow.AppendChild(inner)
	//
	var outside, inside []EventTarget
	host.AddEventListener("x", NewListener(func(e *Event) error {
		outside = e.ComposedPath()
		return nil
	}))
	inner.AddEventListener("x", NewListener(func(e *Event) error {
		inside = e.ComposedPath()
		return nil
	}))
	inner.DispatchEvent(NewEvent("x", EventInit{Bubbles: true, Composed: true}))
	assert.Equal(t, []EventTarget{host, root, doc}, outside)
	assert.Equal(t, []EventTarget{inner, shadow, host, root, doc}, inside)
}

func TestLegacyAliasAndTrust(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domcore.dom")
	defer teardown()
	//
	_, _, _, target := buildPathForTest(t, NewAgent())
	count := 0
	var types []string
	target.AddEventListener("webkitAnimationEnd", NewListener(func(e *Event) error {
		count++
		types = append(types, e.Type())
		return nil
	}))
	e := NewTrustedEvent("animationend", EventInit{})
	FireEvent(target, "animationend", EventInit{})
	if count != 1 {
		t.Errorf("expected legacy listener to fire for trusted event, fired %d times", count)
	}
	target.DispatchEvent(e)
	if count != 1 {
		t.Errorf("expected legacy listener to ignore untrusted event, fired %d times", count)
	}
	if e.IsTrusted() || e.Type() != "animationend" {
		t.Errorf("expected dispatched event to be untrusted with original type, is %v/%s", e.IsTrusted(), e.Type())
	}
	assert.Equal(t, []string{"webkitAnimationEnd"}, types)
}

func TestActivationBehavior(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domcore.dom")
	defer teardown()
	//
	_, _, p, target := buildPathForTest(t, NewAgent())
	var activated, canceled, pre int
	p.SetActivationBehavior(func(*Event) { activated++ })
	p.SetLegacyPreActivation(func(*Event) { pre++ })
	p.SetLegacyCanceledActivation(func(*Event) { canceled++ })
	if !FireEvent(target, "click", EventInit{Bubbles: true, Cancelable: true}) {
		t.Errorf("expected uncanceled click to return true")
	}
	if activated != 1 || pre != 1 {
		t.Errorf("expected activation behavior of p to run once, ran %d times", activated)
	}
	target.AddEventListener("click", NewListener(func(e *Event) error {
		e.PreventDefault()
		return nil
	}))
	if FireEvent(target, "click", EventInit{Bubbles: true, Cancelable: true}) {
		t.Errorf("expected canceled click to return false")
	}
	if activated != 1 || canceled != 1 {
		t.Errorf("expected canceled activation to run, activated=%d canceled=%d", activated, canceled)
	}
	FireEvent(target, "focus", EventInit{Bubbles: true})
	if activated != 1 {
		t.Errorf("expected non-activation event to leave activation alone, activated=%d", activated)
	}
}

func TestListenerErrorsAreReported(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domcore.dom")
	defer teardown()
	//
	var reported []error
	agent := NewAgent(WithErrorReporter(func(err error) { reported = append(reported, err) }))
	_, _, _, target := buildPathForTest(t, agent)
	boom := errors.New("boom")
	last := 0
	target.AddEventListener("x", NewListener(func(*Event) error { return boom }))
	target.AddEventListener("x", NewListener(func(*Event) error { panic("bang") }))
	target.AddEventListener("x", counter(&last))
	ok, err := target.DispatchEvent(NewEvent("x", EventInit{}))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, last, "dispatch must continue after failing listeners")
	require.Len(t, reported, 2)
	assert.ErrorIs(t, reported[0], boom)
	var cbErr *CallbackError
	require.ErrorAs(t, reported[1], &cbErr)
	assert.Equal(t, "bang", cbErr.Panic)
}

func TestDispatchStateErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domcore.dom")
	defer teardown()
	//
	doc, _, _, target := buildPathForTest(t, NewAgent())
	e := doc.CreateEvent()
	if _, err := target.DispatchEvent(e); !errors.Is(err, ErrInvalidState) {
		t.Errorf("expected InvalidStateError for uninitialized event, is %v", err)
	}
	e.InitEvent("x", true, true)
	var nested error
	target.AddEventListener("x", NewListener(func(ev *Event) error {
		_, nested = target.DispatchEvent(ev)
		return nil
	}))
	if _, err := target.DispatchEvent(e); err != nil {
		t.Fatal(err)
	}
	if !errors.Is(nested, ErrInvalidState) {
		t.Errorf("expected InvalidStateError for re-entrant dispatch, is %v", nested)
	}
}

func TestPassiveListener(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domcore.dom")
	defer teardown()
	//
	_, _, _, target := buildPathForTest(t, NewAgent())
	target.AddEventListener("wheel", NewListener(func(e *Event) error {
		e.PreventDefault()
		return nil
	}), Passive)
	e := NewEvent("wheel", EventInit{Cancelable: true})
	ok, _ := target.DispatchEvent(e)
	if !ok || e.DefaultPrevented() {
		t.Errorf("expected passive listener not to cancel the event")
	}
}

func TestStandAloneTargets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domcore.dom")
	defer teardown()
	//
	agent := NewAgent()
	parent := NewEventTarget(agent, nil)
	child := NewEventTarget(agent, parent)
	var phases []EventPhase
	parent.AddEventListener("x", NewListener(func(e *Event) error {
		phases = append(phases, e.EventPhase())
		return nil
	}))
	child.DispatchEvent(NewEvent("x", EventInit{Bubbles: true}))
	assert.Equal(t, []EventPhase{PhaseBubbling}, phases)
}
