package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// ErrInvalidArgument is returned when a request is missing a required path
// parameter. Nothing is sent to the platform in that case.
var ErrInvalidArgument = errors.New("invalid argument")

// StatusError reports a non-2xx response from the platform.
type StatusError struct {
	Method  string
	Path    string
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = http.StatusText(e.Code)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Code, msg)
}

// IsNotFound reports whether err carries a 404 from the platform.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// StatusCode extracts the HTTP status from err, or 0 when err is not a
// StatusError.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}

// Client talks to the platform REST API.
type Client struct {
	base    *url.URL
	http    *http.Client
	headers http.Header
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient swaps the transport, mostly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds every request made by the client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHeader adds a header sent on every request (e.g. an auth token).
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Set(key, value)
	}
}

// New builds a client rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, fmt.Errorf("api base url: %w", ErrInvalidArgument)
	}
	u, err := url.Parse(strings.TrimRight(trimmed, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("api base url %q must include scheme and host: %w", baseURL, ErrInvalidArgument)
	}
	c := &Client{
		base:    u,
		http:    &http.Client{Timeout: defaultTimeout},
		headers: make(http.Header),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the root the client was configured with.
func (c *Client) BaseURL() string {
	return c.base.String()
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	target := *c.base
	target.Path = c.base.Path + path
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	for k, values := range c.headers {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Method: method, Path: path, Code: resp.StatusCode, Message: errorMessage(data)}
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// errorMessage pulls a readable message out of an error body, which the
// platform sends either as plain text or as {"error": "..."}.
func errorMessage(data []byte) string {
	var wrapped struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil {
		if wrapped.Error != "" {
			return wrapped.Error
		}
		if wrapped.Message != "" {
			return wrapped.Message
		}
	}
	return strings.TrimSpace(string(data))
}

func namespacePath(namespace string, segments ...string) (string, error) {
	if strings.TrimSpace(namespace) == "" {
		return "", fmt.Errorf("namespace: %w", ErrInvalidArgument)
	}
	var b strings.Builder
	b.WriteString("/v3/namespaces/")
	b.WriteString(url.PathEscape(namespace))
	for _, seg := range segments {
		b.WriteByte('/')
		b.WriteString(seg)
	}
	return b.String(), nil
}

func requireID(name, value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("%s: %w", name, ErrInvalidArgument)
	}
	return url.PathEscape(value), nil
}
