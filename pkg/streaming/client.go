// Package streaming provides a synchronous client for the vistream server's
// REST API. Every method is an independent request/response round trip; the
// only state shared across calls is the reused HTTP session.
package streaming

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vistream-hq/vistream/pkg/httpclient"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultChunkSize = 8192
)

// Client talks to a single streaming server identified by its base URL.
type Client struct {
	baseURL   string
	http      httpclient.Client
	headers   map[string]string
	chunkSize int
}

// Option customizes a Client at construction time.
type Option func(*Client)

// WithHTTPClient injects a transport, mainly for tests.
func WithHTTPClient(c httpclient.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

// WithTimeout sets the per-request timeout for buffered calls.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.http = httpclient.NewRestyClient(d)
		}
	}
}

// WithChunkSize sets the copy buffer size used by downloads.
func WithChunkSize(n int) Option {
	return func(cl *Client) {
		if n > 0 {
			cl.chunkSize = n
		}
	}
}

// WithHeaders attaches headers to every request issued by the client.
func WithHeaders(headers map[string]string) Option {
	return func(cl *Client) {
		if len(headers) > 0 {
			cl.headers = headers
		}
	}
}

// New builds a Client for the server at baseURL. Trailing slashes are
// stripped once here so every URL the client constructs is normalized.
func New(baseURL string, opts ...Option) *Client {
	cl := &Client{
		baseURL:   strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		chunkSize: defaultChunkSize,
	}
	for _, opt := range opts {
		opt(cl)
	}
	if cl.http == nil {
		cl.http = httpclient.NewRestyClient(defaultTimeout)
	}
	return cl
}

// BaseURL returns the normalized server address the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

// Close releases the underlying HTTP session.
func (c *Client) Close() {
	if c == nil || c.http == nil {
		return
	}
	c.http.Close()
}

// StreamURL computes the media URL for a video without any network call.
func (c *Client) StreamURL(videoID string) string {
	return c.baseURL + "/stream/" + videoID
}

// StreamDirectoryURL computes the media URL for a video addressed by
// directory and relative path, without any network call.
func (c *Client) StreamDirectoryURL(directory, relPath string) string {
	return c.baseURL + "/stream/" + directory + "/" + relPath
}

// endpoint joins the base URL with escaped path segments.
func (c *Client) endpoint(segments ...string) string {
	var b strings.Builder
	b.WriteString(c.baseURL)
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

// getJSON issues a GET, verifies the status, and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, reqURL string, out any) error {
	resp, err := c.http.Get(ctx, reqURL, c.headers)
	if err != nil {
		return fmt.Errorf("GET %s: %w", reqURL, err)
	}
	return decodeResponse(http.MethodGet, reqURL, resp, out)
}

// postJSON issues an empty-body POST, verifies the status, and decodes the
// body into out.
func (c *Client) postJSON(ctx context.Context, reqURL string, out any) error {
	resp, err := c.http.Post(ctx, reqURL, c.headers)
	if err != nil {
		return fmt.Errorf("POST %s: %w", reqURL, err)
	}
	return decodeResponse(http.MethodPost, reqURL, resp, out)
}

// decodeResponse enforces the shared failure semantics: any non-2xx status
// fails immediately with the request context and a capped body snippet.
func decodeResponse(method, reqURL string, resp httpclient.Response, out any) error {
	body := resp.Body()
	if !isSuccess(resp.StatusCode()) {
		return &APIError{
			Method:     method,
			URL:        reqURL,
			StatusCode: resp.StatusCode(),
			Snippet:    bodySnippet(body),
		}
	}
	return decodeBody(method, reqURL, body, out)
}

// decodeBody decodes a response body into out, reporting decode failures with
// the request context.
func decodeBody(method, reqURL string, body []byte, out any) error {
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, reqURL, err)
	}
	return nil
}

func isSuccess(status int) bool {
	return status >= 200 && status <= 299
}

// APIError reports a non-success HTTP status from the server.
type APIError struct {
	Method     string
	URL        string
	StatusCode int
	Snippet    string
}

func (e *APIError) Error() string {
	if e.Snippet == "" {
		return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.URL, e.StatusCode, e.Snippet)
}

// bodySnippet caps error payloads so failed calls do not drag whole bodies
// into logs.
func bodySnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}
