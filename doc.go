// Package tweetstream is a client for long-lived, server-pushed JSON event
// streams. It opens a single persistent connection through a pluggable
// Transport, decodes each newline-delimited item into a JSON object, and
// classifies it into typed domain events (statuses, deletion notices, limit
// notices, direct messages) delivered to caller-supplied handlers.
//
// The package is transport-agnostic; the httpstream subpackage provides the
// default HTTP implementation with reconnect and backoff. A minimal session
// looks like:
//
//	cfg := tweetstream.Config{Username: "user", Password: "pass"}
//	client, err := tweetstream.New(cfg, httpstream.New())
//	if err != nil {
//		log.Fatal(err)
//	}
//	client.Handlers().OnStatus(func(st *tweetstream.Status) {
//		fmt.Println(st.Text)
//	})
//	if err := client.Track(ctx, []string{"golang"}, nil); err != nil {
//		log.Fatal(err)
//	}
//
// Operation methods block for the lifetime of the stream; call Stop (or
// cancel the context) from another goroutine to end the session.
package tweetstream
