package streaming

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestUploadVideoPostsMultipart(t *testing.T) {
	payload := []byte("fake mp4 bytes")

	var gotPath string
	var gotFile []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		gotPath = r.URL.Path
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("FormFile: %v", err)
		}
		defer file.Close()
		if header.Filename != "clip.mp4" {
			t.Fatalf("filename = %q", header.Filename)
		}
		buf := new(bytes.Buffer)
		if _, err := buf.ReadFrom(file); err != nil {
			t.Fatalf("read upload: %v", err)
		}
		gotFile = buf.Bytes()
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"uploaded":true,"video_id":"movies:clip.mp4"}`)
	}))
	defer srv.Close()

	src := filepath.Join(t.TempDir(), "clip.mp4")
	if err := os.WriteFile(src, payload, 0o644); err != nil {
		t.Fatalf("write source file: %v", err)
	}

	client := New(srv.URL)
	defer client.Close()

	ack, err := client.UploadVideo(context.Background(), "movies", "clip.mp4", src)
	if err != nil {
		t.Fatalf("UploadVideo: %v", err)
	}
	if gotPath != "/upload/movies/clip.mp4" {
		t.Fatalf("request path = %q", gotPath)
	}
	if !bytes.Equal(gotFile, payload) {
		t.Fatalf("server received %d bytes, want %d", len(gotFile), len(payload))
	}
	if ack["uploaded"] != true {
		t.Fatalf("unexpected ack: %#v", ack)
	}
}

func TestUploadVideoFailsBeforeNetworkOnMissingFile(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := New(srv.URL)
	defer client.Close()

	_, err := client.UploadVideo(context.Background(), "movies", "v1", filepath.Join(t.TempDir(), "missing.mp4"))
	if err == nil {
		t.Fatal("expected error for missing source file")
	}
	if requests != 0 {
		t.Fatalf("expected no network request, server saw %d", requests)
	}
}

func TestDownloadVideoWritesChunkedPayload(t *testing.T) {
	// Three distinct chunks, flushed separately, larger in total than the
	// client's copy buffer.
	chunks := [][]byte{
		bytes.Repeat([]byte{'a'}, 300),
		bytes.Repeat([]byte{'b'}, 300),
		bytes.Repeat([]byte{'c'}, 100),
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stream/movies:clip.mp4" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		flusher := w.(http.Flusher)
		for _, chunk := range chunks {
			w.Write(chunk)
			flusher.Flush()
		}
	}))
	defer srv.Close()

	client := New(srv.URL, WithChunkSize(256))
	defer client.Close()

	out := filepath.Join(t.TempDir(), "clip.mp4")
	if err := client.DownloadVideo(context.Background(), "movies:clip.mp4", out); err != nil {
		t.Fatalf("DownloadVideo: %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read downloaded file: %v", err)
	}
	want := bytes.Join(chunks, nil)
	if !bytes.Equal(got, want) {
		t.Fatalf("downloaded %d bytes, want %d", len(got), len(want))
	}
}

func TestDownloadVideoPropagatesNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"video not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	client := New(srv.URL)
	defer client.Close()

	out := filepath.Join(t.TempDir(), "clip.mp4")
	err := client.DownloadVideo(context.Background(), "nope", out)
	if err == nil {
		t.Fatal("expected error for 404 stream response")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Fatalf("error missing status: %v", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Fatalf("expected no output file, stat err = %v", statErr)
	}
}

func TestDownloadVideoRemovesPartialFileOnTruncatedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// Announce more bytes than are sent so the client read fails mid-stream.
		w.Header().Set("Content-Length", "1024")
		w.Write(bytes.Repeat([]byte{'x'}, 100))
	}))
	defer srv.Close()

	client := New(srv.URL)
	defer client.Close()

	out := filepath.Join(t.TempDir(), "clip.mp4")
	if err := client.DownloadVideo(context.Background(), "movies:clip.mp4", out); err == nil {
		t.Fatal("expected error for truncated body")
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Fatalf("expected partial file to be removed, stat err = %v", statErr)
	}
}

func TestDownloadThumbnailUsesThumbnailEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/thumbnail/movies:clip.mp4" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte("jpeg bytes"))
	}))
	defer srv.Close()

	client := New(srv.URL)
	defer client.Close()

	out := filepath.Join(t.TempDir(), "thumb.jpg")
	if err := client.DownloadThumbnail(context.Background(), "movies:clip.mp4", out); err != nil {
		t.Fatalf("DownloadThumbnail: %v", err)
	}
	got, err := os.ReadFile(out)
	if err != nil || string(got) != "jpeg bytes" {
		t.Fatalf("thumbnail contents %q err %v", got, err)
	}
}
