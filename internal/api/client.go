package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// Credentials identify the account used for every operation
type Credentials struct {
	Endpoint string
	Email    string
	Password string
}

// Client talks to the task server. It holds no session state: every
// exported operation logs in again before its request.
type Client struct {
	creds  Credentials
	http   *http.Client
	logger *slog.Logger
}

// Option customises a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for soft failures
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client for the given account
func NewClient(creds Credentials, opts ...Option) *Client {
	creds.Endpoint = strings.TrimRight(creds.Endpoint, "/")
	c := &Client{
		creds:  creds,
		http:   http.DefaultClient,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the base URL the client talks to
func (c *Client) Endpoint() string {
	return c.creds.Endpoint
}

// TaskURL returns the browser link for a task
func (c *Client) TaskURL(uid string) string {
	return TaskURL(c.creds.Endpoint, uid)
}

// TaskURL builds {endpoint}/task/{uid}
func TaskURL(endpoint, uid string) string {
	return strings.TrimRight(endpoint, "/") + "/task/" + uid
}

// do sends a request with an optional JSON body and session cookie. The
// caller owns the response body.
func (c *Client) do(ctx context.Context, method, path string, sess Session, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.creds.Endpoint+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	sess.apply(req)

	c.logger.Debug("api request", "method", method, "path", path)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("api response", "method", method, "path", path, "status", resp.StatusCode)
	return resp, nil
}

// get performs an authenticated GET and returns the raw body of a 2xx response.
// Non-2xx responses are reported through *FetchError.
func (c *Client) get(ctx context.Context, resource, path string) ([]byte, error) {
	sess, err := c.Authenticate(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, http.MethodGet, path, sess, nil)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrFetch, resource, err)
	}
	defer resp.Body.Close()

	if !ok(resp) {
		drain(resp)
		return nil, &FetchError{Resource: resource, StatusCode: resp.StatusCode, StatusText: statusText(resp)}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrFetch, resource, err)
	}
	return raw, nil
}

func ok(resp *http.Response) bool {
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// statusText mirrors the reason phrase of the response ("Not Found")
func statusText(resp *http.Response) string {
	if _, reason, found := strings.Cut(resp.Status, " "); found && reason != "" {
		return reason
	}
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", resp.StatusCode)
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
}
