package tweetstream

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/tweetstream/tweetstream-go/internal/logctx"
)

// Client is the stream session controller. It owns the instance-level handler
// registry and at most one active Session; operation methods build the
// request, open a transport session, and block while driving the
// decode/classify/dispatch loop.
type Client struct {
	cfg       Config
	transport Transport
	decoder   Decoder
	log       *slog.Logger
	handlers  *Handlers

	mu     sync.Mutex
	active *Session
}

// New constructs a Client. The transport is required; the httpstream package
// provides the default implementation.
func New(cfg Config, transport Transport, opts ...Option) (*Client, error) {
	if transport == nil {
		return nil, fmt.Errorf("transport is required")
	}
	cfg.applyDefaults()

	c := &Client{
		cfg:       cfg,
		transport: transport,
		decoder:   defaultDecoder,
		log:       slog.Default(),
		handlers:  NewHandlers(),
	}
	for _, opt := range opts {
		opt(c)
	}
	// Enrich every record with the stream attributes carried in context.
	c.log = slog.New(logctx.Handler{Handler: c.log.Handler()})
	return c, nil
}

// Handlers returns the instance-level registry. Handlers registered here
// apply to every stream started by this client unless overridden per call.
func (c *Client) Handlers() *Handlers { return c.handlers }

// Stop ends the active session, if any, and returns its last classified
// status. Safe to call from any goroutine; a no-op when nothing is running.
func (c *Client) Stop() *Status {
	c.mu.Lock()
	s := c.active
	c.mu.Unlock()
	if s == nil {
		return nil
	}
	return s.Stop()
}

// Session returns the active session, or nil if the client is idle.
func (c *Client) Session() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Firehose streams every public status. Blocks until the stream ends.
func (c *Client) Firehose(ctx context.Context, params *Params, opts ...StreamOption) error {
	return c.start(ctx, "statuses/firehose", http.MethodGet, params, opts...)
}

// Retweet streams every public retweet. Blocks until the stream ends.
func (c *Client) Retweet(ctx context.Context, params *Params, opts ...StreamOption) error {
	return c.start(ctx, "statuses/retweet", http.MethodGet, params, opts...)
}

// Sample streams a random sample of public statuses. Blocks until the stream
// ends.
func (c *Client) Sample(ctx context.Context, params *Params, opts ...StreamOption) error {
	return c.start(ctx, "statuses/sample", http.MethodGet, params, opts...)
}

// Filter streams statuses matching the track, follow, and locations
// parameters. POST-style: parameters travel in the request body. Blocks until
// the stream ends.
func (c *Client) Filter(ctx context.Context, params *Params, opts ...StreamOption) error {
	return c.start(ctx, "statuses/filter", http.MethodPost, params, opts...)
}

// Track streams statuses matching the given keywords. Convenience wrapper
// over Filter: the keywords are merged into a clone of params (which may be
// nil), so count, delimited, or other filter parameters combine freely.
func (c *Client) Track(ctx context.Context, keywords []string, params *Params, opts ...StreamOption) error {
	return c.Filter(ctx, params.Clone().Set("track", keywords), opts...)
}

// Follow streams statuses from the given user IDs. Convenience wrapper over
// Filter; userIDs are merged into a clone of params.
func (c *Client) Follow(ctx context.Context, userIDs []int64, params *Params, opts ...StreamOption) error {
	return c.Filter(ctx, params.Clone().Set("follow", userIDs), opts...)
}

// BoundingBox is a locations filter box: southwest longitude/latitude
// followed by northeast longitude/latitude.
type BoundingBox [4]float64

// Locations streams geotagged statuses falling within the given boxes.
// Convenience wrapper over Filter; the boxes are merged into a clone of
// params.
func (c *Client) Locations(ctx context.Context, boxes []BoundingBox, params *Params, opts ...StreamOption) error {
	return c.Filter(ctx, params.Clone().Set("locations", boxes), opts...)
}

// UserStream streams events for the authenticated user. It targets the
// dedicated user-stream host rather than the public streaming host. Blocks
// until the stream ends.
func (c *Client) UserStream(ctx context.Context, params *Params, opts ...StreamOption) error {
	opts = append(opts, withEndpoint(userStreamHost, userStreamPath))
	return c.start(ctx, "", http.MethodGet, params, opts...)
}

// start is the single entry point for all operations: it validates auth,
// resolves effective handlers, builds the request descriptor, registers the
// session as active, and blocks running the loop. At most one session may be
// active; starting another is a ConfigurationError.
func (c *Client) start(ctx context.Context, operation, method string, params *Params, opts ...StreamOption) error {
	auth, err := c.cfg.authPayload()
	if err != nil {
		return err
	}

	var sc streamConfig
	for _, opt := range opts {
		opt(&sc)
	}

	host := c.cfg.Host
	if sc.host != "" {
		host = sc.host
	}

	var desc *RequestDescriptor
	if sc.path != "" {
		desc = buildRequestPath(sc.path, method, params, auth, host, c.cfg.UserAgent)
	} else {
		desc = buildRequest(operation, method, params, auth, host, c.cfg.UserAgent)
	}

	s := &Session{
		id:       uuid.NewString(),
		desc:     desc,
		handlers: c.handlers.merged(sc.handlers),
		decoder:  c.decoder,
		log:      c.log,
	}

	c.mu.Lock()
	if c.active != nil {
		c.mu.Unlock()
		return &ConfigurationError{Reason: "a stream is already active on this client"}
	}
	c.active = s
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.active = nil
		c.mu.Unlock()
	}()

	ctx = logctx.WithStreamData(ctx, &logctx.StreamData{
		SessionID: s.id,
		Operation: desc.Path,
		Host:      desc.Host,
		Method:    desc.Method,
	})

	c.log.InfoContext(ctx, "starting stream")
	err = s.run(ctx, c.transport)
	if err != nil {
		c.log.ErrorContext(ctx, "stream ended", slog.String("error", err.Error()))
		return err
	}
	c.log.InfoContext(ctx, "stream stopped")
	return nil
}
