package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vistream-hq/vistream/internal/config"
)

func writeConfigFile(t *testing.T, dir, name, raw string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestMirrorSendsJobHeadersOnEveryRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "secret" {
			http.Error(w, `{"error":"missing api key"}`, http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/api/videos/movies":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"directory":"movies","videos":[{"id":"movies:a.mp4","name":"a.mp4"}],"count":1}`))
		case "/stream/movies:a.mp4":
			_, _ = w.Write([]byte("media bytes"))
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer webhook.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, "mirror")
	jobsFile := writeConfigFile(t, dir, "jobs.yaml", `
jobs:
  - id: movies
    directory: movies
    dest_dir: `+dest+`
    request_delay_ms: 1
    headers:
      X-Api-Key: secret
`)
	publishersFile := writeConfigFile(t, dir, "publishers.yaml", `
publishers:
  - id: hook
    type: http
    http:
      url: `+webhook.URL+`
`)

	cfg := &config.Config{
		ServerURL:              srv.URL,
		HTTPTimeout:            5 * time.Second,
		DownloadChunkBytes:     1024,
		JobsFile:               jobsFile,
		PublishersFile:         publishersFile,
		MirrorInterval:         time.Minute,
		StorageType:            "none",
		StorageTTL:             time.Hour,
		StorageCleanupInterval: time.Hour,
	}

	ctx := context.Background()
	m, err := NewMirror(ctx, cfg, nil)
	if err != nil {
		t.Fatalf("NewMirror: %v", err)
	}
	if err := m.RunOnce(ctx); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dest, "a.mp4"))
	if err != nil {
		t.Fatalf("read mirrored file: %v", err)
	}
	if string(got) != "media bytes" {
		t.Fatalf("mirrored contents = %q", got)
	}
}
