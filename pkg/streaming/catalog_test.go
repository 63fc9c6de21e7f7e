package streaming

import (
	"context"
	"testing"
)

func TestListVideosByDirectoryScopesPath(t *testing.T) {
	mock := &mockHTTPClient{
		t:         t,
		expectURL: "http://host:9000/api/videos/movies",
		body:      `{"directory":"movies","count":1,"videos":[{"id":"movies:a.mp4","name":"a.mp4"}]}`,
	}
	client := New("http://host:9000", WithHTTPClient(mock))

	listing, err := client.ListVideosByDirectory(context.Background(), "movies")
	if err != nil {
		t.Fatalf("ListVideosByDirectory: %v", err)
	}
	if listing.Directory != "movies" || listing.Count != 1 {
		t.Fatalf("unexpected listing: %+v", listing)
	}
}

func TestListVideosByDirectoryRejectsEmpty(t *testing.T) {
	client := New("http://host:9000", WithHTTPClient(&mockHTTPClient{t: t}))
	if _, err := client.ListVideosByDirectory(context.Background(), ""); err != nil {
		return
	}
	t.Fatal("expected error for empty directory")
}

func TestListDirectories(t *testing.T) {
	mock := &mockHTTPClient{
		t:         t,
		expectURL: "http://host:9000/api/directories",
		body:      `{"count":2,"enabled_count":1,"directories":[{"name":"movies","enabled":true},{"name":"archive","enabled":false}]}`,
	}
	client := New("http://host:9000", WithHTTPClient(mock))

	dirs, err := client.ListDirectories(context.Background())
	if err != nil {
		t.Fatalf("ListDirectories: %v", err)
	}
	if dirs.Count != 2 || dirs.EnabledCount != 1 || len(dirs.Directories) != 2 {
		t.Fatalf("unexpected directory list: %+v", dirs)
	}
}

func TestValidateVideoDecodesFailedVerdict(t *testing.T) {
	mock := &mockHTTPClient{
		t:      t,
		status: 422,
		body:   `{"video_id":"movies:bad.mp4","valid":false,"details":"file is empty"}`,
	}
	client := New("http://host:9000", WithHTTPClient(mock))

	report, err := client.ValidateVideo(context.Background(), "movies:bad.mp4")
	if err != nil {
		t.Fatalf("ValidateVideo: %v", err)
	}
	if report.Valid {
		t.Fatalf("expected invalid verdict, got %+v", report)
	}
	if report.Details != "file is empty" {
		t.Fatalf("unexpected details: %q", report.Details)
	}
}

func TestValidateVideoSurfacesOtherErrors(t *testing.T) {
	mock := &mockHTTPClient{t: t, status: 404, body: `{"error":"video not found"}`}
	client := New("http://host:9000", WithHTTPClient(mock))

	if _, err := client.ValidateVideo(context.Background(), "nope"); err == nil {
		t.Fatal("expected error for 404 response")
	}
}
