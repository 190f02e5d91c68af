// Package logctx enriches slog records with stream attributes carried in the
// context, so every log line emitted during a session identifies it without
// threading fields through call sites.
package logctx

import (
	"context"
	"log/slog"
)

type Handler struct {
	slog.Handler
}

func (h Handler) Handle(ctx context.Context, r slog.Record) error {
	if sd, ok := ctx.Value(streamDataKey{}).(*StreamData); ok {
		r.AddAttrs(slog.Group("stream",
			slog.String("session_id", sd.SessionID),
			slog.String("operation", sd.Operation),
			slog.String("host", sd.Host),
			slog.String("method", sd.Method),
		))
	}

	return h.Handler.Handle(ctx, r)
}

type streamDataKey struct{}

type StreamData struct {
	SessionID string
	Operation string
	Host      string
	Method    string
}

func WithStreamData(ctx context.Context, data *StreamData) context.Context {
	return context.WithValue(ctx, streamDataKey{}, data)
}
