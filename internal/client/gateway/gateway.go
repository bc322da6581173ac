// Package gateway is the client's single way out to the remote service. It
// joins paths onto the configured base address, injects the bearer token,
// encodes bodies, enforces a per-call timeout and turns every response into
// either a parsed payload or one of the common status errors.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrijs2005/casedesk/internal/common"
	"github.com/dmitrijs2005/casedesk/internal/logging"
)

const (
	// DefaultTimeout is the request budget when none is given.
	DefaultTimeout = 15 * time.Second

	maxResponseBytes = 8 << 20
)

// TokenSource returns the bearer token for outgoing requests. An empty token
// means the request goes out unauthenticated.
type TokenSource func(ctx context.Context) (string, error)

// RequestOptions tune one call. The zero value is an authenticated GET with
// the default timeout.
type RequestOptions struct {
	Method  string
	Headers map[string]string
	// Body is nil, a *Multipart form, an io.Reader / []byte sent as-is, or
	// any value that is encoded as JSON.
	Body     any
	Timeout  time.Duration
	SkipAuth bool
}

type Gateway struct {
	baseURL        string
	tokens         TokenSource
	httpClient     *http.Client
	defaultTimeout time.Duration
	log            logging.Logger
	metrics        *metrics
}

type Option func(*Gateway)

func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) { g.httpClient = c }
}

func WithLogger(l logging.Logger) Option {
	return func(g *Gateway) { g.log = l }
}

func WithDefaultTimeout(d time.Duration) Option {
	return func(g *Gateway) {
		if d > 0 {
			g.defaultTimeout = d
		}
	}
}

// WithMetrics registers request metrics on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(g *Gateway) { g.metrics = newMetrics(reg) }
}

// New creates a Gateway for baseURL. An empty baseURL yields a gateway whose
// every call fails with common.ErrNoBackend.
func New(baseURL string, tokens TokenSource, opts ...Option) *Gateway {
	g := &Gateway{
		baseURL:        strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		tokens:         tokens,
		httpClient:     &http.Client{},
		defaultTimeout: DefaultTimeout,
		log:            logging.Nop(),
	}
	for _, o := range opts {
		o(g)
	}
	g.log = g.log.With("component", "gateway")
	return g
}

// Configured reports whether a base address is set.
func (g *Gateway) Configured() bool {
	return g.baseURL != ""
}

// BaseURL returns the normalised base address.
func (g *Gateway) BaseURL() string {
	return g.baseURL
}

// JoinURL joins base and path with exactly one slash between them.
func JoinURL(base, path string) string {
	base = strings.TrimRight(base, "/")
	path = strings.TrimLeft(path, "/")
	if path == "" {
		return base
	}
	return base + "/" + path
}

// Request performs one call and returns the parsed payload: decoded JSON
// (map[string]any, []any, string, float64, bool or nil) for JSON responses,
// the raw text otherwise.
//
// Errors: common.ErrNoBackend (status 0) when unconfigured, common.ErrTimeout
// (408) when the budget expires, common.ErrNetwork with the response status
// for non-2xx replies or status 0 when no response arrived at all.
func (g *Gateway) Request(ctx context.Context, path string, o RequestOptions) (any, error) {
	if !g.Configured() {
		return nil, common.NewNoBackendError()
	}

	method := o.Method
	if method == "" {
		method = http.MethodGet
	}
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = g.defaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, contentType, err := encodeBody(o.Body)
	if err != nil {
		return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, JoinURL(g.baseURL, path), body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range o.Headers {
		req.Header.Set(k, v)
	}

	if !o.SkipAuth && g.tokens != nil {
		token, err := g.tokens(ctx)
		if err != nil {
			// the remote decides what an unauthenticated call means
			g.log.Warn(ctx, "token lookup failed, sending unauthenticated", "path", path, "error", err)
		}
		if token != "" {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
		}
	}

	start := time.Now()
	payload, status, err := g.do(ctx, req)
	g.observe(ctx, method, path, status, err, time.Since(start))
	return payload, err
}

func (g *Gateway) do(ctx context.Context, req *http.Request) (any, int, error) {
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, 0, g.transportError(ctx, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, resp.StatusCode, g.transportError(ctx, err)
	}

	payload := parsePayload(resp.Header.Get("Content-Type"), raw)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return payload, resp.StatusCode, common.NewNetworkError(resp.StatusCode, messageFrom(payload))
	}
	return payload, resp.StatusCode, nil
}

// transportError classifies a failure that produced no usable response.
func (g *Gateway) transportError(ctx context.Context, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return common.NewTimeoutError()
	case errors.Is(ctx.Err(), context.Canceled):
		return ctx.Err()
	default:
		return common.NewTransportError(err)
	}
}

func (g *Gateway) observe(ctx context.Context, method, path string, status int, err error, took time.Duration) {
	outcome := outcomeOf(status, err)
	g.metrics.observe(method, outcome, took)

	if err != nil {
		g.log.Warn(ctx, "request failed", "method", method, "path", path, "outcome", outcome, "took", took, "error", err)
		return
	}
	g.log.Debug(ctx, "request done", "method", method, "path", path, "status", status, "took", took)
}

func outcomeOf(status int, err error) string {
	switch {
	case errors.Is(err, common.ErrTimeout):
		return "timeout"
	case status == 0 && err != nil:
		return "error"
	default:
		return fmt.Sprintf("%d", status)
	}
}
