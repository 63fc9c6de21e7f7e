package httpclient

import (
	"context"
	"io"
	"time"

	"github.com/go-resty/resty/v2"
)

// RestyClient adapts resty.Client to the httpclient.Client interface. It owns
// two underlying sessions: one for buffered JSON exchanges and one configured
// to leave response bodies unparsed for streaming reads.
type RestyClient struct {
	client *resty.Client
	stream *resty.Client
}

// NewRestyClient creates a new RestyClient with the specified timeout for
// buffered calls. Streaming calls carry no timeout so large transfers are not
// cut off mid-body.
func NewRestyClient(timeout time.Duration) *RestyClient {
	streamClient := resty.New()
	streamClient.SetDoNotParseResponse(true)
	return &RestyClient{
		client: newRestyBaseClient(timeout),
		stream: streamClient,
	}
}

// NewRestyHTTPClient exposes a configured resty.Client for callers needing custom verbs.
func NewRestyHTTPClient(timeout time.Duration) *resty.Client {
	return newRestyBaseClient(timeout)
}

// newRestyBaseClient creates a new resty.Client with the specified timeout.
func newRestyBaseClient(timeout time.Duration) *resty.Client {
	c := resty.New()
	c.SetTimeout(timeout)
	return c
}

// Get performs an HTTP GET request with the specified context, URL, and headers.
func (r *RestyClient) Get(ctx context.Context, url string, headers map[string]string) (Response, error) {
	resp, err := r.newRequest(ctx, headers).Get(url)
	if err != nil {
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// Post performs an HTTP POST request with an empty body.
func (r *RestyClient) Post(ctx context.Context, url string, headers map[string]string) (Response, error) {
	resp, err := r.newRequest(ctx, headers).Post(url)
	if err != nil {
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// PostMultipart posts the given reader as a multipart form file under the
// provided field name.
func (r *RestyClient) PostMultipart(ctx context.Context, url, field, filename string, content io.Reader, headers map[string]string) (Response, error) {
	req := r.newRequest(ctx, headers).SetFileReader(field, filename, content)
	resp, err := req.Post(url)
	if err != nil {
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// GetStream performs an HTTP GET request whose body is left unparsed. The
// returned stream must be closed by the caller.
func (r *RestyClient) GetStream(ctx context.Context, url string, headers map[string]string) (StreamResponse, error) {
	req := r.stream.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	resp, err := req.Get(url)
	if err != nil {
		return nil, err
	}
	return &restyStreamAdapter{resp: resp}, nil
}

// Close releases idle connections held by the underlying sessions.
func (r *RestyClient) Close() {
	if r == nil {
		return
	}
	if r.client != nil {
		r.client.GetClient().CloseIdleConnections()
	}
	if r.stream != nil {
		r.stream.GetClient().CloseIdleConnections()
	}
}

func (r *RestyClient) newRequest(ctx context.Context, headers map[string]string) *resty.Request {
	req := r.client.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	return req
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte    { return r.resp.Body() }
func (r *restyResponseAdapter) StatusCode() int { return r.resp.StatusCode() }

// restyStreamAdapter adapts an unparsed resty.Response to StreamResponse.
type restyStreamAdapter struct {
	resp *resty.Response
}

func (r *restyStreamAdapter) Stream() io.ReadCloser { return r.resp.RawBody() }
func (r *restyStreamAdapter) StatusCode() int       { return r.resp.StatusCode() }
