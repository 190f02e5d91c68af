package httpstream

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dghubble/oauth1"
	"github.com/elnormous/contenttype"
	tweetstream "github.com/tweetstream/tweetstream-go"
)

var _ tweetstream.Transport = (*Transport)(nil)

var jsonMediaTypes = []contenttype.MediaType{contenttype.NewMediaType("application/json")}

// Transport dials streaming endpoints over HTTP. The zero configuration from
// New uses TLS, the classic backoff schedules (network failures: 250ms linear
// steps capped at 16s; protocol failures: 10s doubling capped at 240s), and a
// 90s stall timeout between items.
type Transport struct {
	client *http.Client
	log    *slog.Logger
	scheme string

	netBackoffStep     time.Duration
	netBackoffMax      time.Duration
	httpBackoffInitial time.Duration
	httpBackoffMax     time.Duration
	maxRetries         int
	stallTimeout       time.Duration
	localFilter        bool
}

// New constructs a Transport with defaults and applies options.
func New(opts ...Option) *Transport {
	t := &Transport{
		// No client-level timeout: the response body is unbounded.
		client:             &http.Client{},
		log:                slog.Default(),
		scheme:             "https",
		netBackoffStep:     250 * time.Millisecond,
		netBackoffMax:      16 * time.Second,
		httpBackoffInitial: 10 * time.Second,
		httpBackoffMax:     240 * time.Second,
		maxRetries:         10,
		stallTimeout:       90 * time.Second,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Connect prepares a streaming connection for desc. For the oauth mode the
// request-signing client is built here; basic credentials are applied per
// request.
func (t *Transport) Connect(ctx context.Context, desc *tweetstream.RequestDescriptor) (tweetstream.StreamConn, error) {
	if desc == nil || desc.Host == "" {
		return nil, fmt.Errorf("request descriptor with a host is required")
	}

	client := t.client
	switch desc.Auth.Mode {
	case tweetstream.AuthModeBasic:
		if _, _, ok := strings.Cut(desc.Auth.Basic, ":"); !ok {
			return nil, fmt.Errorf("malformed basic credential string")
		}
	case tweetstream.AuthModeOAuth:
		oc := oauth1.NewConfig(desc.Auth.OAuth.ConsumerKey, desc.Auth.OAuth.ConsumerSecret)
		token := oauth1.NewToken(desc.Auth.OAuth.AccessToken, desc.Auth.OAuth.AccessTokenSecret)
		client = oc.Client(context.WithValue(ctx, oauth1.HTTPClient, client), token)
	default:
		return nil, fmt.Errorf("no auth mode set on request descriptor")
	}

	return &conn{
		t:      t,
		desc:   desc,
		client: client,
		closed: make(chan struct{}),
	}, nil
}

// httpError marks a protocol-level failure, which backs off on the
// exponential schedule rather than the linear network one.
type httpError struct {
	Status int
	Reason string
}

func (e *httpError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unexpected response (status %d): %s", e.Status, e.Reason)
	}
	return fmt.Sprintf("unexpected HTTP status %d", e.Status)
}

type conn struct {
	t      *Transport
	desc   *tweetstream.RequestDescriptor
	client *http.Client

	closeOnce sync.Once
	closed    chan struct{}

	mu      sync.Mutex
	onError func(error)
}

func (c *conn) OnError(fn func(error)) {
	c.mu.Lock()
	c.onError = fn
	c.mu.Unlock()
}

func (c *conn) notifyError(err error) {
	c.mu.Lock()
	fn := c.onError
	c.mu.Unlock()
	if fn != nil && err != nil {
		fn(err)
	}
}

func (c *conn) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })
	return nil
}

// ForEachItem drives the connect/read/reconnect loop. A connection that
// delivered at least one item resets the backoff schedules and the retry
// budget.
func (c *conn) ForEachItem(ctx context.Context, fn func(item []byte)) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-c.closed:
			cancel()
		case <-done:
		}
	}()

	netWait := c.t.netBackoffStep
	httpWait := c.t.httpBackoffInitial
	retries := 0
	var lastWait time.Duration

	for {
		delivered, err := c.streamOnce(ctx, fn)
		if ctx.Err() != nil {
			return nil
		}
		if delivered {
			netWait = c.t.netBackoffStep
			httpWait = c.t.httpBackoffInitial
			retries = 0
		}

		retries++
		if retries > c.t.maxRetries {
			return &tweetstream.ReconnectExhaustedError{Timeout: lastWait, Retries: retries - 1}
		}
		c.notifyError(err)

		var wait time.Duration
		var he *httpError
		if errors.As(err, &he) {
			wait = httpWait
			httpWait = minDuration(httpWait*2, c.t.httpBackoffMax)
		} else {
			wait = netWait
			netWait = minDuration(netWait+c.t.netBackoffStep, c.t.netBackoffMax)
		}
		lastWait = wait

		c.t.log.DebugContext(ctx, "reconnecting",
			slog.Int("attempt", retries),
			slog.Duration("backoff", wait),
			slog.String("error", err.Error()))

		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return nil
		}
	}
}

// streamOnce performs one request and reads items until the connection ends.
// It reports whether any item was delivered, and always returns a non-nil
// error unless the context ended first.
func (c *conn) streamOnce(ctx context.Context, fn func(item []byte)) (bool, error) {
	req, err := c.newRequest(ctx)
	if err != nil {
		return false, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Keep the start of the body so the error notification says what the
		// server objected to.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return false, &httpError{Status: resp.StatusCode, Reason: strings.TrimSpace(string(snippet))}
	}
	if err := checkMediaType(resp); err != nil {
		return false, &httpError{Status: resp.StatusCode, Reason: err.Error()}
	}

	// A silent connection is a dead connection: force the read to fail if
	// nothing arrives within the stall window.
	var stall *time.Timer
	if c.t.stallTimeout > 0 {
		stall = time.AfterFunc(c.t.stallTimeout, func() { resp.Body.Close() })
		defer stall.Stop()
	}

	delivered := false
	br := bufio.NewReaderSize(resp.Body, 64<<10)
	for {
		line, err := br.ReadBytes('\n')
		if stall != nil {
			stall.Reset(c.t.stallTimeout)
		}
		line = bytes.TrimRight(line, "\r\n")
		// Blank lines are keep-alives.
		if len(line) > 0 {
			delivered = true
			if c.wantItem(line) {
				fn(line)
			}
		}
		if err != nil {
			return delivered, err
		}
	}
}

func (c *conn) newRequest(ctx context.Context) (*http.Request, error) {
	u := url.URL{
		Scheme:   c.t.scheme,
		Host:     c.desc.Host,
		Path:     c.desc.Path,
		RawQuery: c.desc.Query,
	}
	var body io.Reader
	if c.desc.Body != "" {
		body = strings.NewReader(c.desc.Body)
	}
	req, err := http.NewRequestWithContext(ctx, c.desc.Method, u.String(), body)
	if err != nil {
		return nil, err
	}
	if c.desc.Body != "" {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if c.desc.UserAgent != "" {
		req.Header.Set("User-Agent", c.desc.UserAgent)
	}
	req.Header.Set("Accept", "application/json")
	if c.desc.Auth.Mode == tweetstream.AuthModeBasic {
		user, pass, _ := strings.Cut(c.desc.Auth.Basic, ":")
		req.SetBasicAuth(user, pass)
	}
	return req, nil
}

// wantItem applies the optional local keyword pre-filter driven by the
// descriptor's Filters.
func (c *conn) wantItem(line []byte) bool {
	if !c.t.localFilter || len(c.desc.Filters) == 0 {
		return true
	}
	lower := bytes.ToLower(line)
	for _, kw := range c.desc.Filters {
		if bytes.Contains(lower, bytes.ToLower([]byte(kw))) {
			return true
		}
	}
	return false
}

func checkMediaType(resp *http.Response) error {
	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		return nil
	}
	if _, _, err := contenttype.GetAcceptableMediaTypeFromHeader(ct, jsonMediaTypes); err != nil {
		return fmt.Errorf("unexpected content type %q", ct)
	}
	return nil
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
