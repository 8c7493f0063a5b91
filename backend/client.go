package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// TransportError wraps a network or decode failure and carries the original
// request context for diagnostics. Callers decide whether to retry; the
// client never does.
type TransportError struct {
	URL     string
	Payload any
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("commerce backend request %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RequestOption adjusts a single outgoing request.
type RequestOption func(*http.Request)

// WithHeader sets one request header.
func WithHeader(key, value string) RequestOption {
	return func(r *http.Request) { r.Header.Set(key, value) }
}

// WithNoStore marks the request as uncacheable end to end. Every mutating
// call goes out with this so a read immediately after a write is never
// served stale.
func WithNoStore() RequestOption {
	return func(r *http.Request) { r.Header.Set("Cache-Control", "no-store") }
}

// Client is the raw JSON-over-HTTP transport shared by the backend
// adapters. It always pairs the decoded body with the HTTP status and never
// swallows a transport failure.
type Client struct {
	http *http.Client
	log  *slog.Logger
}

func NewClient(h *http.Client, log *slog.Logger) *Client {
	if h == nil {
		h = http.DefaultClient
	}
	return &Client{http: h, log: log}
}

// Get issues a GET and decodes the JSON response body into out.
func (c *Client) Get(ctx context.Context, url string, out any, opts ...RequestOption) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, &TransportError{URL: url, Err: err}
	}
	return c.do(req, url, nil, out, opts)
}

// Post issues a POST with a JSON payload and decodes the response into out.
func (c *Client) Post(ctx context.Context, url string, payload, out any, opts ...RequestOption) (int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, &TransportError{URL: url, Payload: payload, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, &TransportError{URL: url, Payload: payload, Err: err}
	}
	return c.do(req, url, payload, out, opts)
}

func (c *Client) do(req *http.Request, url string, payload, out any, opts []RequestOption) (int, error) {
	req.Header.Set("Content-Type", "application/json")
	for _, opt := range opts {
		opt(req)
	}

	res, err := c.http.Do(req)
	if err != nil {
		c.log.Error("backend request failed", "url", url, "err", err)
		return 0, &TransportError{URL: url, Payload: payload, Err: err}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return res.StatusCode, &TransportError{URL: url, Payload: payload, Err: err}
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			c.log.Error("backend response decode failed", "url", url, "status", res.StatusCode, "err", err)
			return res.StatusCode, &TransportError{URL: url, Payload: payload, Err: err}
		}
	}
	return res.StatusCode, nil
}
