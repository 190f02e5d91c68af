package tweetstream

import (
	"net/http"
	"net/url"
	"strings"
)

const (
	apiVersion       = "1"
	defaultHost      = "stream.twitter.com"
	userStreamHost   = "userstream.twitter.com"
	userStreamPath   = "/2/user.json"
	defaultUserAgent = "tweetstream-go/1.0"
)

// AuthMode selects how the transport authenticates the connection. Exactly
// one mode must be active when a stream is started.
type AuthMode int

const (
	AuthModeUnset AuthMode = iota
	AuthModeBasic
	AuthModeOAuth
)

// OAuthCredentials is the four-field token set used by the oauth auth mode.
type OAuthCredentials struct {
	ConsumerKey       string
	ConsumerSecret    string
	AccessToken       string
	AccessTokenSecret string
}

// AuthPayload is the credential material handed to the transport. For basic
// auth, Basic holds the single "username:password" credential string; for
// oauth, OAuth holds the token set.
type AuthPayload struct {
	Mode  AuthMode
	Basic string
	OAuth OAuthCredentials
}

// RequestDescriptor fully describes one streaming request. It is built fresh
// per start call and is not mutated afterwards.
type RequestDescriptor struct {
	// Host to connect to, without scheme.
	Host string
	// Path including the API version prefix and ".json" suffix.
	Path string
	// Method is http.MethodGet or http.MethodPost.
	Method string
	// Query is the encoded query string without a leading "?". Empty for
	// POST-style operations.
	Query string
	// Body is the encoded form body for POST-style operations.
	Body string
	// Params is the normalized parameter set the query/body was encoded from.
	Params *Params
	// Auth is the credential payload for the configured auth mode.
	Auth AuthPayload
	// UserAgent to send with the request.
	UserAgent string
	// Filters holds the normalized track keywords, split back out for
	// transports that do local keyword pre-filtering.
	Filters []string
}

// buildRequest assembles the descriptor for a logical operation: the path is
// the operation joined with the API version prefix and a ".json" suffix, and
// the normalized parameters are encoded into the query string (GET) or the
// form body (POST).
func buildRequest(operation, method string, params *Params, auth AuthPayload, host, userAgent string) *RequestDescriptor {
	return buildRequestPath("/"+apiVersion+"/"+operation+".json", method, params, auth, host, userAgent)
}

func buildRequestPath(path, method string, params *Params, auth AuthPayload, host, userAgent string) *RequestDescriptor {
	norm := params.Normalize()
	encoded := encodeParams(norm)

	desc := &RequestDescriptor{
		Host:      host,
		Path:      path,
		Method:    method,
		Params:    norm,
		Auth:      auth,
		UserAgent: userAgent,
		Filters:   trackFilters(norm),
	}
	if method == http.MethodPost {
		desc.Body = encoded
	} else {
		desc.Query = encoded
	}
	return desc
}

// encodeParams serializes the parameter set: values are flattened to their
// comma-joined string form, percent-encoded, and the key=value pairs joined
// with "&" in insertion order. An empty set encodes to the empty string.
func encodeParams(p *Params) string {
	if p.Len() == 0 {
		return ""
	}
	var b strings.Builder
	for i, k := range p.Keys() {
		if i > 0 {
			b.WriteByte('&')
		}
		v, _ := p.Get(k)
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(flattenJoin(v)))
	}
	return b.String()
}

// trackFilters splits the normalized track value back into its keyword list.
func trackFilters(p *Params) []string {
	v, ok := p.Get("track")
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
