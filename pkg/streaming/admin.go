package streaming

import (
	"context"
	"fmt"
	"strings"
)

// Health, probe, stats, and scheduler endpoints return free-form mappings;
// the server does not commit to a schema for them, so they are passed through
// as decoded.

// CheckHealth fetches the server health report.
func (c *Client) CheckHealth(ctx context.Context) (map[string]any, error) {
	return c.getMap(ctx, c.baseURL+"/health")
}

// Ping hits the trivial liveness endpoint.
func (c *Client) Ping(ctx context.Context) (map[string]any, error) {
	return c.getMap(ctx, c.baseURL+"/ping")
}

// Ready reports whether the server is ready to serve videos.
func (c *Client) Ready(ctx context.Context) (map[string]any, error) {
	return c.getMap(ctx, c.baseURL+"/ready")
}

// Live reports the server's liveness probe.
func (c *Client) Live(ctx context.Context) (map[string]any, error) {
	return c.getMap(ctx, c.baseURL+"/live")
}

// ServerInfo fetches the API capability description.
func (c *Client) ServerInfo(ctx context.Context) (map[string]any, error) {
	return c.getMap(ctx, c.baseURL+"/api/info")
}

// SystemStats fetches server-side system metrics.
func (c *Client) SystemStats(ctx context.Context) (map[string]any, error) {
	return c.getMap(ctx, c.baseURL+"/api/system/stats")
}

// StreamingStats fetches the flow-control statistics for streaming requests.
func (c *Client) StreamingStats(ctx context.Context) (map[string]any, error) {
	return c.getMap(ctx, c.baseURL+"/api/streaming/stats")
}

// SchedulerStats fetches task scheduler statistics.
func (c *Client) SchedulerStats(ctx context.Context) (map[string]any, error) {
	return c.getMap(ctx, c.baseURL+"/api/scheduler/stats")
}

// SchedulerStatus fetches the scheduler's run state.
func (c *Client) SchedulerStatus(ctx context.Context) (map[string]any, error) {
	return c.getMap(ctx, c.baseURL+"/api/scheduler/status")
}

// StartScheduler asks the server to start its task scheduler.
func (c *Client) StartScheduler(ctx context.Context) (map[string]any, error) {
	return c.postMap(ctx, c.baseURL+"/api/scheduler/start")
}

// StopScheduler asks the server to stop its task scheduler.
func (c *Client) StopScheduler(ctx context.Context) (map[string]any, error) {
	return c.postMap(ctx, c.baseURL+"/api/scheduler/stop")
}

// ScheduleVideoDeletion enqueues a server-side deletion task for a video.
func (c *Client) ScheduleVideoDeletion(ctx context.Context, videoID string) (map[string]any, error) {
	if strings.TrimSpace(videoID) == "" {
		return nil, fmt.Errorf("video id must not be empty")
	}
	return c.postMap(ctx, c.endpoint("api", "scheduler", "video-delete", videoID))
}

func (c *Client) getMap(ctx context.Context, reqURL string) (map[string]any, error) {
	var out map[string]any
	if err := c.getJSON(ctx, reqURL, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) postMap(ctx context.Context, reqURL string) (map[string]any, error) {
	var out map[string]any
	if err := c.postJSON(ctx, reqURL, &out); err != nil {
		return nil, err
	}
	return out, nil
}
