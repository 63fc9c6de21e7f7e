package streaming

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/vistream-hq/vistream/pkg/httpclient"
)

type mockResponse struct {
	body       []byte
	statusCode int
}

func (r mockResponse) Body() []byte    { return r.body }
func (r mockResponse) StatusCode() int { return r.statusCode }

type mockStream struct {
	body       io.ReadCloser
	statusCode int
}

func (r mockStream) Stream() io.ReadCloser { return r.body }
func (r mockStream) StatusCode() int       { return r.statusCode }

// mockHTTPClient records requests and replays canned responses.
type mockHTTPClient struct {
	t          *testing.T
	expectURL  string
	expect     map[string]string
	status     int
	body       string
	err        error
	calls      int
	lastField  string
	lastName   string
	lastReader io.Reader
}

func (m *mockHTTPClient) respond() (httpclient.Response, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	status := m.status
	if status == 0 {
		status = 200
	}
	return mockResponse{body: []byte(m.body), statusCode: status}, nil
}

func (m *mockHTTPClient) check(url string, headers map[string]string) {
	if m.expectURL != "" && url != m.expectURL {
		m.t.Fatalf("expected url %q, got %q", m.expectURL, url)
	}
	for key, want := range m.expect {
		if got := headers[key]; got != want {
			m.t.Fatalf("expected header %s=%q, got %q", key, want, got)
		}
	}
}

func (m *mockHTTPClient) Get(_ context.Context, url string, headers map[string]string) (httpclient.Response, error) {
	m.check(url, headers)
	return m.respond()
}

func (m *mockHTTPClient) Post(_ context.Context, url string, headers map[string]string) (httpclient.Response, error) {
	m.check(url, headers)
	return m.respond()
}

func (m *mockHTTPClient) PostMultipart(_ context.Context, url, field, filename string, content io.Reader, headers map[string]string) (httpclient.Response, error) {
	m.check(url, headers)
	m.lastField = field
	m.lastName = filename
	m.lastReader = content
	return m.respond()
}

func (m *mockHTTPClient) GetStream(_ context.Context, url string, headers map[string]string) (httpclient.StreamResponse, error) {
	m.check(url, headers)
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	status := m.status
	if status == 0 {
		status = 200
	}
	return mockStream{body: io.NopCloser(strings.NewReader(m.body)), statusCode: status}, nil
}

func (m *mockHTTPClient) Close() {}

func TestStreamURLIsPureConcatenation(t *testing.T) {
	client := New("http://localhost:9000")
	defer client.Close()

	if got := client.StreamURL("abc"); got != "http://localhost:9000/stream/abc" {
		t.Fatalf("StreamURL = %q", got)
	}
	if got := client.StreamDirectoryURL("movies", "intro/clip.mp4"); got != "http://localhost:9000/stream/movies/intro/clip.mp4" {
		t.Fatalf("StreamDirectoryURL = %q", got)
	}
}

func TestNewNormalizesTrailingSlash(t *testing.T) {
	for _, base := range []string{"http://host:9000", "http://host:9000/", "http://host:9000//", " http://host:9000/ "} {
		client := New(base)
		if got := client.BaseURL(); got != "http://host:9000" {
			t.Fatalf("base %q normalized to %q", base, got)
		}
		client.Close()
	}
}

func TestListVideosSuccess(t *testing.T) {
	mock := &mockHTTPClient{
		t:         t,
		expectURL: "http://host:9000/api/videos",
		body:      `{"count":2,"videos":[{"id":"movies:a.mp4","name":"a.mp4"},{"id":"movies:b.mp4","name":"b.mp4"}],"directories":["movies"]}`,
	}
	client := New("http://host:9000/", WithHTTPClient(mock))

	list, err := client.ListVideos(context.Background())
	if err != nil {
		t.Fatalf("ListVideos: %v", err)
	}
	if list.Count != 2 || len(list.Videos) != 2 {
		t.Fatalf("unexpected list: %+v", list)
	}
	if list.Videos[0].ID != "movies:a.mp4" {
		t.Fatalf("unexpected first video: %+v", list.Videos[0])
	}
}

func TestListVideosPropagatesNon2xx(t *testing.T) {
	mock := &mockHTTPClient{t: t, status: 404, body: `{"error":"not found"}`}
	client := New("http://host:9000", WithHTTPClient(mock))

	_, err := client.ListVideos(context.Background())
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != 404 {
		t.Fatalf("StatusCode = %d", apiErr.StatusCode)
	}
	if !strings.Contains(apiErr.Error(), "not found") {
		t.Fatalf("error missing body snippet: %v", apiErr)
	}
}

func TestSearchVideosEncodesQuery(t *testing.T) {
	mock := &mockHTTPClient{
		t:         t,
		expectURL: "http://host:9000/api/search?q=night+sky",
		body:      `{"query":"night sky","count":1,"total":4,"videos":[{"id":"movies:sky.mp4","name":"sky.mp4"}]}`,
	}
	client := New("http://host:9000", WithHTTPClient(mock))

	res, err := client.SearchVideos(context.Background(), "night sky")
	if err != nil {
		t.Fatalf("SearchVideos: %v", err)
	}
	if res.Count != 1 || res.Total != 4 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestSearchVideosRejectsEmptyQuery(t *testing.T) {
	client := New("http://host:9000", WithHTTPClient(&mockHTTPClient{t: t}))
	if _, err := client.SearchVideos(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty query")
	}
}

func TestGetVideoInfoEscapesID(t *testing.T) {
	mock := &mockHTTPClient{
		t:         t,
		expectURL: "http://host:9000/api/video/movies:a%20b.mp4",
		body:      `{"id":"movies:a b.mp4","name":"a b.mp4","available":true}`,
	}
	client := New("http://host:9000", WithHTTPClient(mock))

	video, err := client.GetVideoInfo(context.Background(), "movies:a b.mp4")
	if err != nil {
		t.Fatalf("GetVideoInfo: %v", err)
	}
	if !video.Available || video.Name != "a b.mp4" {
		t.Fatalf("unexpected video: %+v", video)
	}
}

func TestClientSendsConfiguredHeaders(t *testing.T) {
	mock := &mockHTTPClient{
		t:      t,
		expect: map[string]string{"X-Api-Key": "secret"},
		body:   `{"status":"ok"}`,
	}
	client := New("http://host:9000", WithHTTPClient(mock), WithHeaders(map[string]string{"X-Api-Key": "secret"}))

	if _, err := client.CheckHealth(context.Background()); err != nil {
		t.Fatalf("CheckHealth: %v", err)
	}
}

func TestCheckHealthReturnsDecodedMapping(t *testing.T) {
	mock := &mockHTTPClient{t: t, expectURL: "http://host:9000/health", body: `{"status":"ok"}`}
	client := New("http://host:9000", WithHTTPClient(mock))

	health, err := client.CheckHealth(context.Background())
	if err != nil {
		t.Fatalf("CheckHealth: %v", err)
	}
	if len(health) != 1 || health["status"] != "ok" {
		t.Fatalf("unexpected health payload: %#v", health)
	}
}

func TestSchedulerControlsUsePost(t *testing.T) {
	mock := &mockHTTPClient{
		t:         t,
		expectURL: "http://host:9000/api/scheduler/video-delete/movies:old.mp4",
		body:      `{"scheduled":true}`,
	}
	client := New("http://host:9000", WithHTTPClient(mock))

	out, err := client.ScheduleVideoDeletion(context.Background(), "movies:old.mp4")
	if err != nil {
		t.Fatalf("ScheduleVideoDeletion: %v", err)
	}
	if out["scheduled"] != true {
		t.Fatalf("unexpected ack: %#v", out)
	}
}

func TestDecodeFailureIsSurfaced(t *testing.T) {
	mock := &mockHTTPClient{t: t, body: `<!doctype html>`}
	client := New("http://host:9000", WithHTTPClient(mock))

	if _, err := client.ListVideos(context.Background()); err == nil {
		t.Fatal("expected decode error for non-JSON body")
	}
}
