package mirror

import (
	"context"

	"github.com/vistream-hq/vistream/internal/domain"
	"github.com/vistream-hq/vistream/pkg/publishers"
)

// VideoLibrary is the slice of the streaming client the mirror needs: remote
// listing, search, and media download.
type VideoLibrary interface {
	ListVideosByDirectory(ctx context.Context, directory string) (*domain.DirectoryVideos, error)
	SearchVideos(ctx context.Context, query string) (*domain.SearchResult, error)
	DownloadVideo(ctx context.Context, videoID, outputPath string) error
}

// EventPublisher fans mirror events out to the configured downstream sinks.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}
