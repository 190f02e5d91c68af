package tweetstream

// Handler types come in two explicit variants per slot: an event-only form
// and a form that also receives the active *Session (useful for stopping the
// stream or reading the last status from inside a callback). The variant is
// chosen at registration; there is no runtime signature inspection.
type (
	StatusHandler        func(*Status)
	StatusSessionHandler func(*Status, *Session)

	DeleteHandler        func(DeletionNotice)
	DeleteSessionHandler func(DeletionNotice, *Session)

	LimitHandler        func(LimitNotice)
	LimitSessionHandler func(LimitNotice, *Session)

	DirectMessageHandler        func(*DirectMessage)
	DirectMessageSessionHandler func(*DirectMessage, *Session)

	ErrorHandler        func(error)
	ErrorSessionHandler func(error, *Session)

	InitedHandler        func()
	InitedSessionHandler func(*Session)
)

// Handlers is the registry of callback slots consulted when dispatching
// classified events. Setters return the registry for chaining; re-registering
// a slot overwrites it (last write wins). An unset slot means the matching
// events are silently dropped.
//
// Handlers run synchronously on the stream loop: a handler that blocks stalls
// the whole stream.
type Handlers struct {
	status        StatusSessionHandler
	deletion      DeleteSessionHandler
	limit         LimitSessionHandler
	directMessage DirectMessageSessionHandler
	err           ErrorSessionHandler
	inited        InitedSessionHandler
}

// NewHandlers returns an empty registry.
func NewHandlers() *Handlers {
	return &Handlers{}
}

// OnStatus registers the per-status callback.
func (h *Handlers) OnStatus(fn StatusHandler) *Handlers {
	h.status = func(st *Status, _ *Session) { fn(st) }
	return h
}

// OnStatusWithSession registers a per-status callback that also receives the
// active session.
func (h *Handlers) OnStatusWithSession(fn StatusSessionHandler) *Handlers {
	h.status = fn
	return h
}

// OnDelete registers the deletion-notice callback.
func (h *Handlers) OnDelete(fn DeleteHandler) *Handlers {
	h.deletion = func(d DeletionNotice, _ *Session) { fn(d) }
	return h
}

// OnDeleteWithSession registers a deletion-notice callback that also receives
// the active session.
func (h *Handlers) OnDeleteWithSession(fn DeleteSessionHandler) *Handlers {
	h.deletion = fn
	return h
}

// OnLimit registers the limit-notice callback.
func (h *Handlers) OnLimit(fn LimitHandler) *Handlers {
	h.limit = func(l LimitNotice, _ *Session) { fn(l) }
	return h
}

// OnLimitWithSession registers a limit-notice callback that also receives the
// active session.
func (h *Handlers) OnLimitWithSession(fn LimitSessionHandler) *Handlers {
	h.limit = fn
	return h
}

// OnDirectMessage registers the direct-message callback.
func (h *Handlers) OnDirectMessage(fn DirectMessageHandler) *Handlers {
	h.directMessage = func(dm *DirectMessage, _ *Session) { fn(dm) }
	return h
}

// OnDirectMessageWithSession registers a direct-message callback that also
// receives the active session.
func (h *Handlers) OnDirectMessageWithSession(fn DirectMessageSessionHandler) *Handlers {
	h.directMessage = fn
	return h
}

// OnError registers the callback for recoverable failures: decode errors and
// connection-level transport errors. Without one, such errors are dropped;
// they never stop the stream either way.
func (h *Handlers) OnError(fn ErrorHandler) *Handlers {
	h.err = func(err error, _ *Session) { fn(err) }
	return h
}

// OnErrorWithSession registers an error callback that also receives the
// active session.
func (h *Handlers) OnErrorWithSession(fn ErrorSessionHandler) *Handlers {
	h.err = fn
	return h
}

// OnInited registers a callback invoked once after the transport session has
// been opened, before any items are delivered.
func (h *Handlers) OnInited(fn InitedHandler) *Handlers {
	h.inited = func(_ *Session) { fn() }
	return h
}

// OnInitedWithSession registers an inited callback that also receives the
// active session.
func (h *Handlers) OnInitedWithSession(fn InitedSessionHandler) *Handlers {
	h.inited = fn
	return h
}

// StatusHandler reports the registered per-status callback, if any.
func (h *Handlers) StatusHandler() (StatusSessionHandler, bool) {
	return h.status, h.status != nil
}

// DeleteHandler reports the registered deletion-notice callback, if any.
func (h *Handlers) DeleteHandler() (DeleteSessionHandler, bool) {
	return h.deletion, h.deletion != nil
}

// LimitHandler reports the registered limit-notice callback, if any.
func (h *Handlers) LimitHandler() (LimitSessionHandler, bool) {
	return h.limit, h.limit != nil
}

// DirectMessageHandler reports the registered direct-message callback, if any.
func (h *Handlers) DirectMessageHandler() (DirectMessageSessionHandler, bool) {
	return h.directMessage, h.directMessage != nil
}

// ErrorHandler reports the registered error callback, if any.
func (h *Handlers) ErrorHandler() (ErrorSessionHandler, bool) {
	return h.err, h.err != nil
}

// InitedHandler reports the registered inited callback, if any.
func (h *Handlers) InitedHandler() (InitedSessionHandler, bool) {
	return h.inited, h.inited != nil
}

// merged resolves effective handlers: slots set on over win over slots set on
// h. Neither registry is mutated.
func (h *Handlers) merged(over *Handlers) *Handlers {
	out := &Handlers{}
	if h != nil {
		*out = *h
	}
	if over == nil {
		return out
	}
	if over.status != nil {
		out.status = over.status
	}
	if over.deletion != nil {
		out.deletion = over.deletion
	}
	if over.limit != nil {
		out.limit = over.limit
	}
	if over.directMessage != nil {
		out.directMessage = over.directMessage
	}
	if over.err != nil {
		out.err = over.err
	}
	if over.inited != nil {
		out.inited = over.inited
	}
	return out
}
