// Package fetch issues the single unauthenticated GET behind a copy request.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"casccopy/internal/errors"
)

// Response carries the only parts of an HTTP response a copy consumes
type Response struct {
	StatusCode int
	StatusText string
	Body       []byte
}

// OK reports whether the status code is exactly 200
func (r *Response) OK() bool {
	return r.StatusCode == http.StatusOK
}

// Getter fetches a resource
type Getter interface {
	Get(ctx context.Context, rawURL string) (*Response, error)
}

// Config configures the HTTP client
type Config struct {
	// Timeout bounds one request. Zero means no timeout.
	Timeout time.Duration
}

// Client is a Getter backed by net/http
type Client struct {
	client *http.Client
}

// NewClient creates a client from the given config
func NewClient(cfg Config) *Client {
	return &Client{
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Get performs one GET without body or custom headers. Transport failures
// and failures while reading the body are returned as network errors; any
// received status code, including non-200, is returned in the Response.
func (c *Client) Get(ctx context.Context, rawURL string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.WrapNetworkError(fmt.Errorf("create request: %w", err), rawURL)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.WrapNetworkError(err, rawURL)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapNetworkError(fmt.Errorf("read body: %w", err), rawURL)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		StatusText: StatusText(resp),
		Body:       body,
	}, nil
}

// Close releases idle connections
func (c *Client) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

// StatusText returns the reason phrase of a response ("Not Found"), falling
// back to the standard text for the code when the server sent none
func StatusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

var _ Getter = (*Client)(nil)
