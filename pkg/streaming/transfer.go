package streaming

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// UploadVideo reads a local file and posts it as multipart form data under
// the "file" field. The file is opened before any network I/O happens, so an
// unreadable path fails without touching the server.
func (c *Client) UploadVideo(ctx context.Context, directory, videoID, filePath string) (map[string]any, error) {
	if strings.TrimSpace(directory) == "" {
		return nil, fmt.Errorf("directory must not be empty")
	}
	if strings.TrimSpace(videoID) == "" {
		return nil, fmt.Errorf("video id must not be empty")
	}

	src, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open upload file: %w", err)
	}
	defer src.Close()

	reqURL := c.endpoint("upload", directory, videoID)
	resp, err := c.http.PostMultipart(ctx, reqURL, "file", filepath.Base(filePath), src, c.headers)
	if err != nil {
		return nil, fmt.Errorf("POST %s: %w", reqURL, err)
	}

	var ack map[string]any
	if err := decodeResponse(http.MethodPost, reqURL, resp, &ack); err != nil {
		return nil, err
	}
	return ack, nil
}

// DownloadVideo streams a video's media bytes into outputPath, copying one
// chunk at a time so the payload is never held in memory whole. On any
// failure the partial file is removed.
func (c *Client) DownloadVideo(ctx context.Context, videoID, outputPath string) error {
	if strings.TrimSpace(videoID) == "" {
		return fmt.Errorf("video id must not be empty")
	}
	return c.downloadToFile(ctx, c.StreamURL(videoID), outputPath)
}

// DownloadThumbnail streams a video's thumbnail image into outputPath.
func (c *Client) DownloadThumbnail(ctx context.Context, videoID, outputPath string) error {
	if strings.TrimSpace(videoID) == "" {
		return fmt.Errorf("video id must not be empty")
	}
	return c.downloadToFile(ctx, c.endpoint("api", "thumbnail", videoID), outputPath)
}

func (c *Client) downloadToFile(ctx context.Context, reqURL, outputPath string) error {
	resp, err := c.http.GetStream(ctx, reqURL, c.headers)
	if err != nil {
		return fmt.Errorf("GET %s: %w", reqURL, err)
	}
	body := resp.Stream()
	if body == nil {
		return fmt.Errorf("GET %s: response carried no body", reqURL)
	}
	defer body.Close()

	if !isSuccess(resp.StatusCode()) {
		return &APIError{
			Method:     http.MethodGet,
			URL:        reqURL,
			StatusCode: resp.StatusCode(),
			Snippet:    streamSnippet(body),
		}
	}

	dst, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}

	if err := copyChunked(dst, body, c.chunkSize); err != nil {
		dst.Close()
		os.Remove(outputPath)
		return fmt.Errorf("GET %s: %w", reqURL, err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(outputPath)
		return fmt.Errorf("close output file: %w", err)
	}
	return nil
}

// copyChunked copies src to dst through a single fixed-size buffer.
func copyChunked(dst io.Writer, src io.Reader, chunkSize int) error {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	buf := make([]byte, chunkSize)
	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				return fmt.Errorf("write chunk: %w", werr)
			}
		}
		if rerr == io.EOF {
			return nil
		}
		if rerr != nil {
			return fmt.Errorf("read chunk: %w", rerr)
		}
	}
}

// streamSnippet drains at most the snippet cap from an unparsed error body.
func streamSnippet(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 512))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(raw))
}
