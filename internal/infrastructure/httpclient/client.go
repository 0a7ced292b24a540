// Package httpclient is the storefront REST API client. It owns the base URL,
// attaches the bearer token supplied by a TokenSource, picks the content type,
// and turns 401 responses into an explicit unauthorized event.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/mobicorp/storefront/internal/core/domain"
	"github.com/mobicorp/storefront/internal/core/ports"
	"github.com/mobicorp/storefront/internal/metrics"
)

const (
	defaultBaseURL = "http://localhost:8000"
	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 8 << 20

	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
)

// Config captures the settings of the storefront API connection.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// RateLimit caps outgoing requests per second; <= 0 disables throttling.
	RateLimit float64
	RateBurst int
}

// Client talks to the storefront API. The zero token source sends every
// request without Authorization; use Authorized to bind a session.
type Client struct {
	base         *url.URL
	http         *http.Client
	tokens       ports.TokenSource
	unauthorized ports.UnauthorizedHandler
	limiter      *rate.Limiter
	log          zerolog.Logger
}

// Option customises a Client at construction time.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New builds a Client. An empty BaseURL falls back to http://localhost:8000.
func New(cfg Config, opts ...Option) (*Client, error) {
	raw := strings.TrimRight(cfg.BaseURL, "/")
	if raw == "" {
		raw = defaultBaseURL
	}
	base, err := url.Parse(raw)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("httpclient: invalid base url %q", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &Client{
		base: base,
		http: &http.Client{Timeout: timeout},
		log:  zerolog.Nop(),
	}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Authorized returns a copy of c that reads its token from tokens and reports
// 401 responses to onUnauthorized. Either may be nil.
func (c *Client) Authorized(tokens ports.TokenSource, onUnauthorized ports.UnauthorizedHandler) *Client {
	cp := *c
	cp.tokens = tokens
	cp.unauthorized = onUnauthorized
	return &cp
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string { return c.base.String() }

type request struct {
	endpoint string
	method   string
	path     string
	query    url.Values
	json     any
	form     url.Values
	// token overrides the token source for this request.
	token string
	// authCall marks auth endpoints: their 401s belong to the caller and
	// never raise the unauthorized event.
	authCall bool
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%s %s: %w", r.method, r.path, err)
		}
	}

	req, err := c.newRequest(ctx, r)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(r.endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(r.endpoint, r.method, "error").Inc()
		c.log.Debug().Err(err).Str("endpoint", r.endpoint).Msg("upstream request failed")
		return fmt.Errorf("%s %s: %w", r.method, r.path, err)
	}
	defer resp.Body.Close()

	metrics.UpstreamRequestsTotal.WithLabelValues(r.endpoint, r.method, statusClass(resp.StatusCode)).Inc()
	c.log.Debug().
		Str("endpoint", r.endpoint).
		Str("method", r.method).
		Str("path", r.path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("upstream request")

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", r.method, r.path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized && !r.authCall && c.unauthorized != nil {
		c.unauthorized.HandleUnauthorized(ctx)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &domain.APIError{
			Status: resp.StatusCode,
			Detail: parseDetail(body),
			Method: r.method,
			Path:   r.path,
		}
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", r.method, r.path, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, r request) (*http.Request, error) {
	u := c.base.JoinPath(r.path)
	if len(r.query) > 0 {
		u.RawQuery = r.query.Encode()
	}

	var (
		body        io.Reader
		contentType = contentTypeJSON
	)
	switch {
	case r.form != nil:
		body = strings.NewReader(r.form.Encode())
		contentType = contentTypeForm
	case r.json != nil:
		payload, err := json.Marshal(r.json)
		if err != nil {
			return nil, fmt.Errorf("%s %s: encode body: %w", r.method, r.path, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", r.method, r.path, err)
	}
	req.Header.Set("Accept", contentTypeJSON)
	req.Header.Set("Content-Type", contentType)

	token := r.token
	if token == "" && c.tokens != nil {
		token = c.tokens.Token()
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// Ping reports whether the API answers at all. Any response below 500 counts
// as reachable.
func (c *Client) Ping(ctx context.Context) error {
	err := c.do(ctx, request{endpoint: "ping", method: http.MethodGet, path: "/openapi.json", authCall: true}, nil)
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError {
		return nil
	}
	return err
}

func statusClass(code int) string {
	return strconv.Itoa(code/100) + "xx"
}

// parseDetail extracts the message from the API error envelope. FastAPI sends
// {"detail": "..."} or, on validation failures, a list of {"msg": "..."}.
func parseDetail(body []byte) string {
	var envelope struct {
		Detail  json.RawMessage `json:"detail"`
		Error   string          `json:"error"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}

	if len(envelope.Detail) > 0 {
		var s string
		if err := json.Unmarshal(envelope.Detail, &s); err == nil {
			return s
		}
		var items []struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(envelope.Detail, &items); err == nil {
			msgs := make([]string, 0, len(items))
			for _, it := range items {
				if it.Msg != "" {
					msgs = append(msgs, it.Msg)
				}
			}
			return strings.Join(msgs, "; ")
		}
	}
	if envelope.Error != "" {
		return envelope.Error
	}
	return envelope.Message
}
