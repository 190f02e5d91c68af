package tweetstream

import "context"

// Transport opens streaming sessions. Implementations own the connection
// lifecycle including reconnect-with-backoff; the session controller only
// consumes items and signals.
type Transport interface {
	// Connect prepares a streaming connection for the given request. It
	// must not block on network I/O for the lifetime of the stream; the
	// delivery loop runs inside ForEachItem.
	Connect(ctx context.Context, desc *RequestDescriptor) (StreamConn, error)
}

// StreamConn is one live streaming connection.
type StreamConn interface {
	// ForEachItem blocks, invoking fn once per raw item, until Close is
	// called, ctx is canceled (both return nil), or a fatal error ends the
	// connection. Reconnect exhaustion is reported as a
	// *ReconnectExhaustedError.
	ForEachItem(ctx context.Context, fn func(item []byte)) error

	// OnError registers an observer for connection-level failures the
	// transport recovers from internally. Must be called before
	// ForEachItem.
	OnError(fn func(error))

	// Close ends the delivery loop. Safe to call from any goroutine and
	// more than once.
	Close() error
}
