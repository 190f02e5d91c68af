// Package httpstream is the default tweetstream.Transport: a persistent
// HTTP/1.1 streaming connection delivering newline-delimited items, with
// two-tier reconnect backoff. Network-level failures retry on a linear
// schedule; protocol-level failures (non-200 responses, wrong content type)
// retry on an exponential schedule. When the retry budget is spent the
// delivery loop ends with a *tweetstream.ReconnectExhaustedError.
//
// Basic credentials are sent as an Authorization header; oauth credentials
// sign each request via dghubble/oauth1.
package httpstream
