// Package upstream performs the outbound calls from the edge service to its
// dependencies and classifies every outcome into a payload or a *FetchError.
package upstream

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/imroc/req/v3"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/deppfellow/service-chain/internal/metrics"
)

// Client calls one dependency. It is safe for concurrent use and holds no
// per-request state.
type Client struct {
	name     string
	baseURL  string
	http     *req.Client
	metrics  *metrics.Metrics
	validate *validator.Validate
}

// Option customizes a Client.
type Option func(*Client)

// WithMetrics records every call on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithHTTPClient replaces the underlying req client.
func WithHTTPClient(hc *req.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// NewHTTPClient returns the req client used for dependency calls.
//
// Retries stay off and the timeout is req's default. Requests carrying a
// New Relic transaction in their context are recorded as external segments
// and propagate distributed tracing headers.
func NewHTTPClient() *req.Client {
	c := req.C().
		SetJsonMarshal(json.Marshal).
		SetJsonUnmarshal(json.Unmarshal)

	c.Transport.WrapRoundTripFunc(func(rt http.RoundTripper) req.HttpRoundTripFunc {
		return newrelic.NewRoundTripper(rt).RoundTrip
	})

	return c
}

// NewClient creates a Client for the dependency called name at baseURL.
func NewClient(name, baseURL string, opts ...Option) *Client {
	c := &Client{
		name:     name,
		baseURL:  baseURL,
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = NewHTTPClient()
	}
	return c
}

// Name returns the dependency name used in logs and metrics.
func (c *Client) Name() string {
	return c.name
}

// BuildURL concatenates the base URL, path and encoded query.
func (c *Client) BuildURL(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// Fetch issues one GET to the dependency and decodes the body through W.
//
// Failures are classified in this order: transport error (KindUnreachable),
// non-2xx status (KindRejected), undecodable body (KindMalformed). The
// request logger is taken from ctx.
func Fetch[T any, W Wire[T]](ctx context.Context, c *Client, path string, query url.Values) (T, error) {
	var zero T

	target := c.BuildURL(path, query)
	logger := zerolog.Ctx(ctx).With().
		Str("dependency", c.name).
		Str("url", target).
		Logger()

	logger.Info().Msg("(Request)=" + target)

	start := time.Now()
	resp, err := c.http.R().SetContext(ctx).Get(target)
	if err != nil {
		logger.Error().Err(err).Msg("Error requesting")
		return zero, c.fail(&FetchError{Kind: KindUnreachable, Err: err}, target, start)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Error().Int("status", resp.StatusCode).Msg("Bad request")
		return zero, c.fail(&FetchError{Kind: KindRejected, Status: resp.StatusCode}, target, start)
	}

	var wire W
	if err := json.Unmarshal(resp.Bytes(), &wire); err != nil {
		logger.Error().Err(err).Msg("Error parsing")
		return zero, c.fail(&FetchError{Kind: KindMalformed, Err: err}, target, start)
	}
	if err := c.validate.Struct(wire); err != nil {
		logger.Error().Err(err).Msg("Error parsing")
		return zero, c.fail(&FetchError{Kind: KindMalformed, Err: err}, target, start)
	}

	c.metrics.ObserveFetch(c.name, "ok", time.Since(start))
	return wire.Payload(), nil
}

func (c *Client) fail(e *FetchError, target string, start time.Time) *FetchError {
	e.Dependency = c.name
	e.URL = target
	c.metrics.ObserveFetch(c.name, e.Kind.String(), time.Since(start))
	return e
}
