package httpstream

import (
	"log/slog"
	"net/http"
	"time"
)

// Option configures the Transport.
type Option func(*Transport)

// WithLogger sets the slog logger used by the transport. Defaults to
// slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(t *Transport) {
		if log != nil {
			t.log = log
		}
	}
}

// WithHTTPClient replaces the base HTTP client. The client must not have a
// Timeout set: the streamed response body is unbounded.
func WithHTTPClient(client *http.Client) Option {
	return func(t *Transport) {
		if client != nil {
			t.client = client
		}
	}
}

// WithScheme overrides the URL scheme. The default is "https"; "http" is
// intended for tests against local servers.
func WithScheme(scheme string) Option {
	return func(t *Transport) { t.scheme = scheme }
}

// WithNetworkBackoff tunes the linear backoff applied to network-level
// failures: wait starts at step and grows by step per attempt, capped at max.
func WithNetworkBackoff(step, max time.Duration) Option {
	return func(t *Transport) {
		t.netBackoffStep = step
		t.netBackoffMax = max
	}
}

// WithHTTPBackoff tunes the exponential backoff applied to protocol-level
// failures: wait starts at initial and doubles per attempt, capped at max.
func WithHTTPBackoff(initial, max time.Duration) Option {
	return func(t *Transport) {
		t.httpBackoffInitial = initial
		t.httpBackoffMax = max
	}
}

// WithMaxRetries bounds consecutive failed reconnect attempts before the
// delivery loop gives up with a ReconnectExhaustedError.
func WithMaxRetries(n int) Option {
	return func(t *Transport) { t.maxRetries = n }
}

// WithStallTimeout sets the maximum silence between items before the
// connection is considered dead and redialed. Zero disables stall detection.
func WithStallTimeout(d time.Duration) Option {
	return func(t *Transport) { t.stallTimeout = d }
}

// WithLocalKeywordFilter drops items that do not contain any of the
// descriptor's track keywords before they reach the session. Off by default;
// the server-side filter is authoritative.
func WithLocalKeywordFilter() Option {
	return func(t *Transport) { t.localFilter = true }
}
