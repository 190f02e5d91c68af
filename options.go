package tweetstream

import "log/slog"

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the slog logger used by the client. Defaults to
// slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithDecoder replaces the JSON decoding engine applied to each raw item.
func WithDecoder(d Decoder) Option {
	return func(c *Client) {
		if d != nil {
			c.decoder = d
		}
	}
}

// StreamOption configures a single stream operation call.
type StreamOption func(*streamConfig)

type streamConfig struct {
	handlers      *Handlers
	handlersOwned bool
	host          string
	path          string
}

// overrides returns a registry private to this start call, cloning a
// caller-supplied one first so the WithHandlers input is never mutated.
func (sc *streamConfig) overrides() *Handlers {
	switch {
	case sc.handlers == nil:
		sc.handlers = NewHandlers()
	case !sc.handlersOwned:
		clone := *sc.handlers
		sc.handlers = &clone
	}
	sc.handlersOwned = true
	return sc.handlers
}

// WithHandlers supplies per-call handler overrides. Slots set here win over
// the client's instance-level registry for the duration of the stream. The
// registry is not mutated by other stream options.
func WithHandlers(h *Handlers) StreamOption {
	return func(sc *streamConfig) {
		sc.handlers = h
		sc.handlersOwned = false
	}
}

// WithStatusHandler is shorthand for overriding just the per-status callback
// for this stream, the way a status block accompanies a start call.
func WithStatusHandler(fn StatusHandler) StreamOption {
	return func(sc *streamConfig) {
		sc.overrides().OnStatus(fn)
	}
}

// WithStatusSessionHandler is the session-aware variant of WithStatusHandler.
func WithStatusSessionHandler(fn StatusSessionHandler) StreamOption {
	return func(sc *streamConfig) {
		sc.overrides().OnStatusWithSession(fn)
	}
}

// WithHost overrides the endpoint host for this stream only.
func WithHost(host string) StreamOption {
	return func(sc *streamConfig) { sc.host = host }
}

// withEndpoint overrides both host and full request path, bypassing the
// version-prefix path construction. Used for the user stream endpoint.
func withEndpoint(host, path string) StreamOption {
	return func(sc *streamConfig) {
		sc.host = host
		sc.path = path
	}
}
