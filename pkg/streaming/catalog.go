package streaming

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/vistream-hq/vistream/internal/domain"
)

// ListVideos fetches all videos from all enabled server directories.
func (c *Client) ListVideos(ctx context.Context) (*domain.VideoList, error) {
	var out domain.VideoList
	if err := c.getJSON(ctx, c.baseURL+"/api/videos", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListVideosByDirectory fetches the videos of a single server directory.
func (c *Client) ListVideosByDirectory(ctx context.Context, directory string) (*domain.DirectoryVideos, error) {
	if strings.TrimSpace(directory) == "" {
		return nil, fmt.Errorf("directory must not be empty")
	}
	var out domain.DirectoryVideos
	if err := c.getJSON(ctx, c.endpoint("api", "videos", directory), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchVideos runs a free-text search across video names and IDs.
func (c *Client) SearchVideos(ctx context.Context, query string) (*domain.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("search query must not be empty")
	}
	params := url.Values{}
	params.Set("q", query)
	var out domain.SearchResult
	if err := c.getJSON(ctx, c.baseURL+"/api/search?"+params.Encode(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetVideoInfo fetches the detail record for a single video.
func (c *Client) GetVideoInfo(ctx context.Context, videoID string) (*domain.Video, error) {
	if strings.TrimSpace(videoID) == "" {
		return nil, fmt.Errorf("video id must not be empty")
	}
	var out domain.Video
	if err := c.getJSON(ctx, c.endpoint("api", "video", videoID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListDirectories fetches the server's directory inventory.
func (c *Client) ListDirectories(ctx context.Context) (*domain.DirectoryList, error) {
	var out domain.DirectoryList
	if err := c.getJSON(ctx, c.baseURL+"/api/directories", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ValidateVideo asks the server to verify a video file is readable and well
// formed. A 422 response is decoded into the report rather than surfaced as
// an error, since the server uses it to carry the failed validation verdict.
func (c *Client) ValidateVideo(ctx context.Context, videoID string) (*domain.ValidationReport, error) {
	if strings.TrimSpace(videoID) == "" {
		return nil, fmt.Errorf("video id must not be empty")
	}
	reqURL := c.endpoint("api", "video", videoID) + "/validate"
	resp, err := c.http.Get(ctx, reqURL, c.headers)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", reqURL, err)
	}
	var out domain.ValidationReport
	if resp.StatusCode() == http.StatusUnprocessableEntity {
		if err := decodeBody(http.MethodGet, reqURL, resp.Body(), &out); err != nil {
			return nil, err
		}
		return &out, nil
	}
	if err := decodeResponse(http.MethodGet, reqURL, resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
