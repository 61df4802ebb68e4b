// Package apiclient talks to the shop API: a verb-based HTTP client with a
// bearer-token interceptor, and the typed Gateway on top of it.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bingo/shop-console/internal/api/metrics"
	"github.com/bingo/shop-console/internal/core/domain"
	"github.com/bingo/shop-console/internal/core/ports"
)

const maxBodySize = 8 << 20

// Config configures a Client. A zero Timeout leaves requests bounded only by
// their context.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client sends JSON requests to one shop API base URL. Before every request
// it reads the token store and attaches the token as a bearer credential.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  ports.TokenStore
	log     zerolog.Logger
}

func New(cfg Config, tokens ports.TokenStore, log zerolog.Logger) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    hc,
		tokens:  tokens,
		log:     log,
	}
}

// BaseURL returns the base URL every path is resolved against.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out)
}

// Do sends one request and decodes a 2xx JSON body into out (nil discards it).
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	raw, err := c.DoRaw(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %s %s: decode response: %w", domain.ErrUpstream, method, path, err)
	}
	return nil
}

// DoRaw sends one request and returns the raw 2xx body. Transport failures and
// non-2xx statuses come back as one error wrapping domain.ErrUpstream.
func (c *Client) DoRaw(ctx context.Context, method, path string, body any) ([]byte, error) {
	endpoint := endpointLabel(path)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path), reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if err := c.authorize(req); err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(method, endpoint, "transport_error").Inc()
		c.log.Debug().Err(err).Str("method", method).Str("path", path).Msg("shop api unreachable")
		return nil, fmt.Errorf("%w: %s %s: %w", domain.ErrUpstream, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(method, endpoint, "transport_error").Inc()
		return nil, fmt.Errorf("%w: %s %s: read body: %w", domain.ErrUpstream, method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.UpstreamRequestsTotal.WithLabelValues(method, endpoint, "http_error").Inc()
		c.log.Debug().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Msg("shop api returned an error status")
		return nil, fmt.Errorf("%w: %s %s: status %d", domain.ErrUpstream, method, path, resp.StatusCode)
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(method, endpoint, "ok").Inc()
	return data, nil
}

// authorize is the request interceptor: bearer token when one is stored,
// no header otherwise.
func (c *Client) authorize(req *http.Request) error {
	if c.tokens == nil {
		return nil
	}
	token, ok, err := c.tokens.Get(req.Context())
	if err != nil {
		return fmt.Errorf("read token: %w", err)
	}
	if ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return nil
}

func (c *Client) resolve(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

// endpointLabel keeps metric cardinality bounded: only the first path segment.
func endpointLabel(path string) string {
	p := strings.TrimLeft(path, "/")
	if i := strings.IndexByte(p, '/'); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return "root"
	}
	return p
}
