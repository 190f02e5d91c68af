package tweetstream

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// Session is one active streaming connection. It owns the last successfully
// classified status and the stop flag. Sessions are created by the client's
// operation methods and live for exactly one start/stop pair.
type Session struct {
	id       string
	desc     *RequestDescriptor
	handlers *Handlers
	decoder  Decoder
	log      *slog.Logger

	mu         sync.Mutex
	conn       StreamConn
	lastStatus *Status
	stopped    bool
}

// ID is the unique identifier assigned to this session, used in log records.
func (s *Session) ID() string { return s.id }

// LastStatus returns the most recent successfully classified status, or nil
// if none has been seen.
func (s *Session) LastStatus() *Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastStatus
}

// Stop ends the session and returns the last classified status (nil if none
// was ever seen). It is idempotent and safe to call from any goroutine,
// including from inside a handler.
func (s *Session) Stop() *Status {
	s.mu.Lock()
	alreadyStopped := s.stopped
	s.stopped = true
	conn := s.conn
	last := s.lastStatus
	s.mu.Unlock()

	if !alreadyStopped && conn != nil {
		_ = conn.Close()
	}
	return last
}

func (s *Session) stopRequested() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

// run drives the session: connect, wire signals, then consume items until the
// loop ends. It blocks the caller for the session's entire lifetime.
func (s *Session) run(ctx context.Context, transport Transport) error {
	conn, err := transport.Connect(ctx, s.desc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.stopped {
		// Stop raced ahead of the connect.
		s.mu.Unlock()
		_ = conn.Close()
		return nil
	}
	s.conn = conn
	s.mu.Unlock()

	// Connection-level failures are recovered by the transport itself; they
	// reach the error handler for observability only.
	conn.OnError(func(err error) {
		s.log.DebugContext(ctx, "transport error", slog.String("error", err.Error()))
		s.dispatchError(err)
	})

	if fn := s.handlers.inited; fn != nil {
		fn(s)
	}

	err = conn.ForEachItem(ctx, func(item []byte) { s.handleItem(ctx, item) })

	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()

	var exhausted *ReconnectExhaustedError
	if errors.As(err, &exhausted) {
		s.log.ErrorContext(ctx, "reconnect retries exhausted",
			slog.Int("retries", exhausted.Retries),
			slog.Duration("timeout", exhausted.Timeout))
		return err
	}
	return err
}

// handleItem is the per-item pipeline: decode, classify, dispatch. Decode
// failures go to the error handler and the loop continues; unrecognized
// objects are dropped silently.
func (s *Session) handleItem(ctx context.Context, item []byte) {
	if s.stopRequested() {
		return
	}

	obj, err := s.decoder.Decode(item)
	if err != nil {
		s.dispatchError(&DecodeError{Raw: string(item), Err: err})
		return
	}

	ev := classify(item, obj)
	switch ev.Kind {
	case kindStatus:
		s.mu.Lock()
		s.lastStatus = ev.Status
		s.mu.Unlock()
		if fn := s.handlers.status; fn != nil {
			fn(ev.Status, s)
		}
	case kindDeletion:
		if fn := s.handlers.deletion; fn != nil {
			fn(*ev.Deletion, s)
		}
	case kindLimit:
		if fn := s.handlers.limit; fn != nil {
			fn(*ev.Limit, s)
		}
	case kindDirectMessage:
		if fn := s.handlers.directMessage; fn != nil {
			fn(ev.DirectMessage, s)
		}
	default:
		s.log.DebugContext(ctx, "dropping unrecognized item")
	}
}

// dispatchError forwards a recoverable error to the error handler if one is
// registered. No handler, no crash: the error is dropped and the stream
// continues.
func (s *Session) dispatchError(err error) {
	if fn := s.handlers.err; fn != nil {
		fn(err, s)
	}
}
