// Package domain contains core models shared by the client, mirror, and
// publishers.
package domain

// Video describes a single video record as reported by the streaming server.
// Fields the server does not populate are left at their zero values; callers
// must treat unknown record fields as opaque.
type Video struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Size        int64         `json:"size"`
	Modified    int64         `json:"modified"`
	ContentType string        `json:"content_type"`
	Directory   string        `json:"directory"`
	Extension   string        `json:"extension"`
	Metadata    VideoMetadata `json:"metadata,omitempty"`
	StreamURL   string        `json:"stream_url"`
	Available   bool          `json:"available"`
}

// VideoMetadata holds optional media attributes attached to a video record.
type VideoMetadata struct {
	Duration   float64 `json:"duration,omitempty"`
	Bitrate    int64   `json:"bitrate,omitempty"`
	Resolution string  `json:"resolution,omitempty"`
	Codec      string  `json:"codec,omitempty"`
	AudioCodec string  `json:"audio_codec,omitempty"`
}

// Directory describes a server-side video directory.
type Directory struct {
	Name        string  `json:"name"`
	Path        string  `json:"path"`
	Description string  `json:"description"`
	Enabled     bool    `json:"enabled"`
	VideoCount  int     `json:"video_count"`
	TotalSize   int64   `json:"total_size"`
	Videos      []Video `json:"videos,omitempty"`
}

// VideoList is the response of the all-videos listing endpoint.
type VideoList struct {
	Videos      []Video  `json:"videos"`
	Count       int      `json:"count"`
	Directories []string `json:"directories"`
}

// DirectoryVideos is the response of the directory-scoped listing endpoint.
type DirectoryVideos struct {
	Directory string  `json:"directory"`
	Videos    []Video `json:"videos"`
	Count     int     `json:"count"`
}

// SearchResult is the response of the free-text search endpoint.
type SearchResult struct {
	Query  string  `json:"query"`
	Videos []Video `json:"videos"`
	Count  int     `json:"count"`
	Total  int     `json:"total"`
}

// DirectoryList is the response of the directories endpoint.
type DirectoryList struct {
	Directories  []Directory `json:"directories"`
	Count        int         `json:"count"`
	EnabledCount int         `json:"enabled_count"`
}

// ValidationReport is the response of the per-video validation endpoint.
type ValidationReport struct {
	VideoID string `json:"video_id"`
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
	Details string `json:"details,omitempty"`
	Video   *Video `json:"video,omitempty"`
}
