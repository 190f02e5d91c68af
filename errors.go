package tweetstream

import (
	"fmt"
	"time"
)

// ConfigurationError reports a problem with the client configuration that is
// detected at start time, before any connection attempt: no auth mode
// configured, conflicting auth fields, or starting a stream while one is
// already active.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "tweetstream: configuration error: " + e.Reason
}

// DecodeError reports an item that could not be decoded into a JSON object
// (malformed JSON or a non-object top-level value). It is delivered to the
// error handler; the session continues with the next item.
type DecodeError struct {
	// Raw is the offending item as received from the transport.
	Raw string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("tweetstream: failed to decode item %q: %v", e.Raw, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ReconnectExhaustedError is returned from a blocking operation call when the
// transport has given up reconnecting. It is fatal: the session is stopped.
type ReconnectExhaustedError struct {
	// Timeout is the backoff interval that was in effect for the final
	// attempt.
	Timeout time.Duration
	// Retries is the number of reconnect attempts made before giving up.
	Retries int
}

func (e *ReconnectExhaustedError) Error() string {
	return fmt.Sprintf("tweetstream: reconnect retries exhausted after %d attempts (last backoff %s)", e.Retries, e.Timeout)
}
