package publishers

import (
	"time"

	"github.com/vistream-hq/vistream/internal/domain"
)

// Event represents the payload published downstream after a video has been
// mirrored to local disk.
type Event struct {
	JobID      string       `json:"job_id"`
	JobName    string       `json:"job_name"`
	ServerURL  string       `json:"server_url"`
	Video      domain.Video `json:"video"`
	LocalPath  string       `json:"local_path"`
	MirroredAt time.Time    `json:"mirrored_at"`
}

// NewEvent constructs an Event for the given job + mirrored video.
func NewEvent(jobID, jobName, serverURL, localPath string, video domain.Video) Event {
	return Event{
		JobID:      jobID,
		JobName:    jobName,
		ServerURL:  serverURL,
		Video:      video,
		LocalPath:  localPath,
		MirroredAt: time.Now().UTC(),
	}
}
