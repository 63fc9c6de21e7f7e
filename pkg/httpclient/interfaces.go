package httpclient

import (
	"context"
	"io"
)

// Response is a minimal HTTP response contract for buffered exchanges.
type Response interface {
	Body() []byte
	StatusCode() int
}

// StreamResponse exposes an unparsed response body for incremental reads.
// Callers own the reader and must close it.
type StreamResponse interface {
	Stream() io.ReadCloser
	StatusCode() int
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
	Post(ctx context.Context, url string, headers map[string]string) (Response, error)
	PostMultipart(ctx context.Context, url, field, filename string, content io.Reader, headers map[string]string) (Response, error)
	GetStream(ctx context.Context, url string, headers map[string]string) (StreamResponse, error)
	Close()
}
