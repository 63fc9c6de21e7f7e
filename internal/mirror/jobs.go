package mirror

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultRequestDelayMs = 250

// Job declares one mirror target: a server directory (or search query)
// whose videos are replicated into a local destination directory.
type Job struct {
	ID             string            `json:"id" yaml:"id"`
	Name           string            `json:"name" yaml:"name"`
	Directory      string            `json:"directory" yaml:"directory"`
	Query          string            `json:"query" yaml:"query"`
	DestDir        string            `json:"dest_dir" yaml:"dest_dir"`
	Enabled        *bool             `json:"enabled" yaml:"enabled"`
	RequestDelayMs int               `json:"request_delay_ms" yaml:"request_delay_ms"`
	Headers        map[string]string `json:"headers" yaml:"headers"`
}

// RequestDelay returns the pacing delay between downloads for this job.
func (j Job) RequestDelay() time.Duration {
	if j.RequestDelayMs <= 0 {
		return time.Duration(defaultRequestDelayMs) * time.Millisecond
	}
	return time.Duration(j.RequestDelayMs) * time.Millisecond
}

// EnabledValue returns the enabled flag defaulting to true.
func (j Job) EnabledValue() bool {
	if j.Enabled == nil {
		return true
	}
	return *j.Enabled
}

// jobsFile represents the structure of the jobs configuration file.
type jobsFile struct {
	Jobs []Job `json:"jobs" yaml:"jobs"`
}

// JobRegistry materializes mirror job definitions loaded from config files.
type JobRegistry struct {
	mu   sync.RWMutex
	jobs []Job
	idx  map[string]Job
}

// LoadJobs loads the mirror job registry from a YAML/JSON file.
func LoadJobs(path string) (*JobRegistry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("jobs file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open jobs file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read jobs file: %w", err)
	}

	parsed, err := parseJobsFile(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(parsed.Jobs) == 0 {
		return nil, errors.New("jobs file contains no jobs entries")
	}

	reg := &JobRegistry{
		jobs: make([]Job, len(parsed.Jobs)),
		idx:  make(map[string]Job, len(parsed.Jobs)),
	}

	for i := range parsed.Jobs {
		job := sanitizeJob(parsed.Jobs[i])
		if err := validateJob(job); err != nil {
			return nil, fmt.Errorf("jobs[%d]: %w", i, err)
		}
		if _, exists := reg.idx[job.ID]; exists {
			return nil, fmt.Errorf("duplicate job id %q", job.ID)
		}
		reg.jobs[i] = job
		reg.idx[job.ID] = job
	}

	return reg, nil
}

// parseJobsFile attempts to decode the jobs file content.
func parseJobsFile(data []byte, ext string) (jobsFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	decoders := []struct {
		name string
		ext  string
		fn   func([]byte, any) error
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var parsed jobsFile
		if err := d.fn(data, &parsed); err == nil {
			return parsed, nil
		}
	}

	return jobsFile{}, errors.New("jobs file format not recognized (expected YAML or JSON)")
}

// sanitizeJob trims and normalizes the job fields.
func sanitizeJob(job Job) Job {
	job.ID = strings.TrimSpace(job.ID)
	job.Name = strings.TrimSpace(job.Name)
	job.Directory = strings.TrimSpace(job.Directory)
	job.Query = strings.TrimSpace(job.Query)
	job.DestDir = strings.TrimSpace(job.DestDir)

	if job.Name == "" {
		job.Name = job.ID
	}
	if job.Enabled == nil {
		def := true
		job.Enabled = &def
	}
	if len(job.Headers) > 0 {
		out := make(map[string]string, len(job.Headers))
		for k, v := range job.Headers {
			key := strings.TrimSpace(k)
			val := strings.TrimSpace(v)
			if key == "" || val == "" {
				continue
			}
			out[key] = val
		}
		if len(out) == 0 {
			out = nil
		}
		job.Headers = out
	}

	return job
}

// validateJob checks that required fields are present.
func validateJob(job Job) error {
	if job.ID == "" {
		return errors.New("id is required")
	}
	if job.Directory == "" && job.Query == "" {
		return fmt.Errorf("job %q needs a directory or a query", job.ID)
	}
	if job.DestDir == "" {
		return fmt.Errorf("dest_dir is required for job %q", job.ID)
	}
	return nil
}

// ByID returns the job entry for the given id, if loaded.
func (r *JobRegistry) ByID(id string) (Job, bool) {
	if r == nil {
		return Job{}, false
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return Job{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.idx[id]
	return job, ok
}

// All returns all configured jobs.
func (r *JobRegistry) All() []Job {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Job, len(r.jobs))
	copy(out, r.jobs)
	return out
}

// Enabled returns the jobs that are enabled.
func (r *JobRegistry) Enabled() []Job {
	all := r.All()
	if len(all) == 0 {
		return nil
	}

	out := make([]Job, 0, len(all))
	for _, job := range all {
		if job.EnabledValue() {
			out = append(out, job)
		}
	}
	return out
}
