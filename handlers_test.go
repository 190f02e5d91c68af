package tweetstream

import "testing"

func TestHandlersRegistration(t *testing.T) {
	h := NewHandlers()

	if _, ok := h.StatusHandler(); ok {
		t.Error("unset slot reported as present")
	}

	var calls []string
	ret := h.OnStatus(func(*Status) { calls = append(calls, "first") })
	if ret != h {
		t.Error("setter must return the registry for chaining")
	}

	fn, ok := h.StatusHandler()
	if !ok {
		t.Fatal("registered slot reported as absent")
	}
	fn(&Status{}, nil)
	if len(calls) != 1 || calls[0] != "first" {
		t.Fatalf("stored handler not invoked: %v", calls)
	}

	// Last write wins.
	h.OnStatus(func(*Status) { calls = append(calls, "second") })
	fn, _ = h.StatusHandler()
	fn(&Status{}, nil)
	if calls[len(calls)-1] != "second" {
		t.Errorf("re-registration did not overwrite: %v", calls)
	}
}

func TestHandlersChaining(t *testing.T) {
	h := NewHandlers().
		OnStatus(func(*Status) {}).
		OnDelete(func(DeletionNotice) {}).
		OnLimit(func(LimitNotice) {}).
		OnDirectMessage(func(*DirectMessage) {}).
		OnError(func(error) {}).
		OnInited(func() {})

	for name, ok := range map[string]bool{
		"status":         func() bool { _, ok := h.StatusHandler(); return ok }(),
		"delete":         func() bool { _, ok := h.DeleteHandler(); return ok }(),
		"limit":          func() bool { _, ok := h.LimitHandler(); return ok }(),
		"direct_message": func() bool { _, ok := h.DirectMessageHandler(); return ok }(),
		"error":          func() bool { _, ok := h.ErrorHandler(); return ok }(),
		"inited":         func() bool { _, ok := h.InitedHandler(); return ok }(),
	} {
		if !ok {
			t.Errorf("slot %s not set after chaining", name)
		}
	}
}

func TestHandlersSessionVariants(t *testing.T) {
	h := NewHandlers()
	var gotSession *Session
	h.OnStatusWithSession(func(_ *Status, s *Session) { gotSession = s })

	want := &Session{id: "s1"}
	fn, _ := h.StatusHandler()
	fn(&Status{}, want)
	if gotSession != want {
		t.Error("session-aware handler did not receive the session")
	}
}

func TestHandlersMergedPrecedence(t *testing.T) {
	var got []string
	base := NewHandlers().
		OnStatus(func(*Status) { got = append(got, "base-status") }).
		OnError(func(error) { got = append(got, "base-error") })
	over := NewHandlers().
		OnStatus(func(*Status) { got = append(got, "over-status") })

	merged := base.merged(over)

	fn, _ := merged.StatusHandler()
	fn(&Status{}, nil)
	if got[len(got)-1] != "over-status" {
		t.Errorf("override slot must win: %v", got)
	}

	efn, ok := merged.ErrorHandler()
	if !ok {
		t.Fatal("base error slot lost in merge")
	}
	efn(nil, nil)
	if got[len(got)-1] != "base-error" {
		t.Errorf("base slot must survive when not overridden: %v", got)
	}

	// Neither input registry is mutated.
	bfn, _ := base.StatusHandler()
	bfn(&Status{}, nil)
	if got[len(got)-1] != "base-status" {
		t.Errorf("merge mutated the base registry: %v", got)
	}
}

func TestHandlersMergedNil(t *testing.T) {
	base := NewHandlers().OnStatus(func(*Status) {})
	merged := base.merged(nil)
	if _, ok := merged.StatusHandler(); !ok {
		t.Error("merging nil overrides lost base slots")
	}
}
