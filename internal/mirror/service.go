package mirror

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vistream-hq/vistream/internal/domain"
	"github.com/vistream-hq/vistream/internal/logger"
	"github.com/vistream-hq/vistream/internal/storage"
	"github.com/vistream-hq/vistream/pkg/publishers"
)

// Service replicates remote videos to local disk across multiple jobs. Each
// pass lists a job's remote videos, downloads the ones the ledger has not
// recorded yet, and publishes an event per mirrored video.
type Service struct {
	library      VideoLibrary
	jobLibraries map[string]VideoLibrary
	serverURL    string
	publisher    EventPublisher
	log          logger.Logger
	store        storage.Store
}

// NewService wires a mirror service with the streaming client slice it needs.
func NewService(library VideoLibrary, serverURL string, publisher EventPublisher, log logger.Logger, store storage.Store) *Service {
	if log == nil {
		log = &logger.NopLogger{}
	}
	if store == nil {
		store, _ = storage.NewStore("none", "", storage.Options{})
	}
	return &Service{
		library:   library,
		serverURL: strings.TrimRight(strings.TrimSpace(serverURL), "/"),
		publisher: publisher,
		log:       log,
		store:     store,
	}
}

// UseJobLibrary routes one job's requests through its own library, typically
// a client carrying that job's request headers. Other jobs keep the shared
// library.
func (s *Service) UseJobLibrary(jobID string, lib VideoLibrary) {
	if s == nil || strings.TrimSpace(jobID) == "" || lib == nil {
		return
	}
	if s.jobLibraries == nil {
		s.jobLibraries = make(map[string]VideoLibrary)
	}
	s.jobLibraries[jobID] = lib
}

// libraryFor returns the library a job's requests go through.
func (s *Service) libraryFor(jobID string) VideoLibrary {
	if lib, ok := s.jobLibraries[jobID]; ok {
		return lib
	}
	return s.library
}

// Run executes a mirror pass for all given jobs. Job failures are joined and
// reported together; one failing job never aborts the others.
func (s *Service) Run(ctx context.Context, jobs []Job) error {
	if s == nil || s.library == nil {
		return fmt.Errorf("mirror service is not initialized")
	}

	if len(jobs) == 0 {
		return fmt.Errorf("no jobs configured for mirroring")
	}

	var errs []error
	for _, job := range jobs {
		if err := s.runJob(ctx, job); err != nil {
			errs = append(errs, fmt.Errorf("job %s: %w", job.ID, err))
			s.log.ErrorObj("mirror job failed", "job_error", map[string]any{
				"job_id": job.ID,
				"error":  err.Error(),
			})
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func (s *Service) runJob(ctx context.Context, job Job) error {
	lib := s.libraryFor(job.ID)
	videos, err := s.listRemote(ctx, lib, job)
	if err != nil {
		return err
	}

	mirrored := 0
	skipped := 0
	for i, video := range videos {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		seen, err := s.store.SeenVideo(video.ID)
		if err != nil {
			return fmt.Errorf("ledger lookup for %s: %w", video.ID, err)
		}
		if seen {
			skipped++
			continue
		}

		if i > 0 {
			pace(ctx, job.RequestDelay())
		}

		if err := s.mirrorVideo(ctx, lib, job, video); err != nil {
			return err
		}
		mirrored++
	}

	s.log.InfoObj("mirror job completed", "job_result", map[string]any{
		"job_id":   job.ID,
		"listed":   len(videos),
		"mirrored": mirrored,
		"skipped":  skipped,
	})
	return nil
}

// listRemote resolves the job's video set: a search when a query is set,
// otherwise the full directory listing.
func (s *Service) listRemote(ctx context.Context, lib VideoLibrary, job Job) ([]domain.Video, error) {
	if job.Query != "" {
		res, err := lib.SearchVideos(ctx, job.Query)
		if err != nil {
			return nil, fmt.Errorf("search %q: %w", job.Query, err)
		}
		return res.Videos, nil
	}

	listing, err := lib.ListVideosByDirectory(ctx, job.Directory)
	if err != nil {
		return nil, fmt.Errorf("list directory %s: %w", job.Directory, err)
	}
	return listing.Videos, nil
}

func (s *Service) mirrorVideo(ctx context.Context, lib VideoLibrary, job Job, video domain.Video) error {
	if err := os.MkdirAll(job.DestDir, 0o755); err != nil {
		return fmt.Errorf("create destination directory: %w", err)
	}

	dest := filepath.Join(job.DestDir, localName(video))
	if err := lib.DownloadVideo(ctx, video.ID, dest); err != nil {
		return fmt.Errorf("download %s: %w", video.ID, err)
	}

	if err := s.store.MarkVideo(video.ID); err != nil {
		return fmt.Errorf("mark video %s: %w", video.ID, err)
	}

	if s.publisher != nil {
		evt := publishers.NewEvent(job.ID, job.Name, s.serverURL, dest, video)
		if _, err := s.publisher.Publish(ctx, evt); err != nil {
			// The video is already on disk and ledgered; delivery failures
			// are logged rather than failing the job.
			s.log.WarnObj("mirror event publish failed", "publish_error", map[string]any{
				"job_id":   job.ID,
				"video_id": video.ID,
				"error":    err.Error(),
			})
		}
	}

	s.log.DebugObj("video mirrored", "mirrored_video", map[string]any{
		"job_id":   job.ID,
		"video_id": video.ID,
		"path":     dest,
	})
	return nil
}

// localName picks the on-disk file name for a video record.
func localName(video domain.Video) string {
	if name := strings.TrimSpace(video.Name); name != "" {
		return filepath.Base(name)
	}
	id := video.ID
	if _, rest, ok := strings.Cut(id, ":"); ok && rest != "" {
		id = rest
	}
	return filepath.Base(id)
}

// pace waits the given delay or returns early on cancellation.
func pace(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
