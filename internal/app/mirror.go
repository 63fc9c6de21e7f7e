package app

import (
	"context"
	"fmt"
	"time"

	"github.com/vistream-hq/vistream/internal/config"
	"github.com/vistream-hq/vistream/internal/logger"
	"github.com/vistream-hq/vistream/internal/mirror"
	"github.com/vistream-hq/vistream/internal/storage"
	"github.com/vistream-hq/vistream/pkg/publishers"
	"github.com/vistream-hq/vistream/pkg/streaming"
)

// Mirror represents the mirror daemon runtime. It manages the mirror loop,
// coordinating between the streaming client, the download ledger, and the
// event publishers, and owns storage and session cleanup.
type Mirror struct {
	cfg            *config.Config
	jobReg         *mirror.JobRegistry
	fanout         *publishers.Fanout
	mirrorService  *mirror.Service
	mirrorInterval time.Duration
	log            logger.Logger
	store          storage.Store
	client         *streaming.Client
	jobClients     []*streaming.Client
}

// NewMirror builds a mirror runtime from config files.
func NewMirror(ctx context.Context, cfg *config.Config, log logger.Logger) (*Mirror, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	jobReg, err := mirror.LoadJobs(cfg.JobsFile)
	if err != nil {
		return nil, fmt.Errorf("load jobs registry: %w", err)
	}
	jobList := jobReg.Enabled()
	jobIDs := make([]string, 0, len(jobList))
	for _, job := range jobList {
		jobIDs = append(jobIDs, job.ID)
	}
	log.InfoObj("jobs registry loaded", "jobs_meta", map[string]any{
		"count": len(jobIDs),
		"ids":   jobIDs,
	})

	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}

	enabledPublishers := publisherReg.Enabled()
	if len(enabledPublishers) == 0 {
		return nil, fmt.Errorf("no publishers configured")
	}

	pubRegistry := publishers.DefaultRegistry()
	pubClients, err := publishers.BuildAll(ctx, pubRegistry, enabledPublishers, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	fanout := publishers.NewFanout(pubClients)
	publisherSummaries := make([]map[string]string, 0, len(enabledPublishers))
	for _, pubCfg := range enabledPublishers {
		publisherSummaries = append(publisherSummaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(publisherSummaries),
		"publishers": publisherSummaries,
	})

	storeOpts := storage.Options{
		VideoTTL:        cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	}
	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storeOpts)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"video_ttl_seconds":        int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	client := streaming.New(cfg.ServerURL,
		streaming.WithTimeout(cfg.HTTPTimeout),
		streaming.WithChunkSize(cfg.DownloadChunkBytes),
	)

	mirrorService := mirror.NewService(client, client.BaseURL(), fanout, log, store)

	// Jobs carrying extra request headers get their own client so the headers
	// reach every listing and download call.
	var jobClients []*streaming.Client
	for _, job := range jobList {
		if len(job.Headers) == 0 {
			continue
		}
		jc := streaming.New(cfg.ServerURL,
			streaming.WithTimeout(cfg.HTTPTimeout),
			streaming.WithChunkSize(cfg.DownloadChunkBytes),
			streaming.WithHeaders(job.Headers),
		)
		mirrorService.UseJobLibrary(job.ID, jc)
		jobClients = append(jobClients, jc)
	}

	return &Mirror{
		cfg:            cfg,
		jobReg:         jobReg,
		fanout:         fanout,
		mirrorService:  mirrorService,
		mirrorInterval: cfg.MirrorInterval,
		log:            log,
		store:          store,
		client:         client,
		jobClients:     jobClients,
	}, nil
}

// Run starts the mirror loop until the context is cancelled.
func (m *Mirror) Run(ctx context.Context) error {
	if m == nil || m.mirrorService == nil {
		return fmt.Errorf("mirror is not initialized")
	}
	defer m.closeStore()
	defer m.closeClients()
	defer m.closePublishers()

	jobs := m.jobReg.Enabled()
	if len(jobs) == 0 {
		m.log.WarnObj("no jobs configured; mirror idle", "jobs_file", m.cfg.JobsFile)
		<-ctx.Done()
		return ctx.Err()
	}

	m.log.InfoObj("mirror loop starting", "mirror_state", map[string]any{
		"server_url":       m.client.BaseURL(),
		"jobs_count":       len(jobs),
		"publishers_count": m.fanout.Size(),
		"mirror_interval":  m.mirrorInterval.String(),
	})

	if err := m.runOnce(ctx, jobs); err != nil {
		m.log.ErrorObj("initial mirror pass failed", "error", err)
	}

	ticker := time.NewTicker(m.mirrorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.log.InfoObj("mirror loop exiting", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			if err := m.runOnce(ctx, jobs); err != nil {
				m.log.ErrorObj("scheduled mirror pass failed", "error", err)
			}
		}
	}
}

// RunOnce performs a single mirror pass and returns, for one-shot invocations.
func (m *Mirror) RunOnce(ctx context.Context) error {
	if m == nil || m.mirrorService == nil {
		return fmt.Errorf("mirror is not initialized")
	}
	defer m.closeStore()
	defer m.closeClients()
	defer m.closePublishers()

	jobs := m.jobReg.Enabled()
	if len(jobs) == 0 {
		return fmt.Errorf("no jobs configured in %s", m.cfg.JobsFile)
	}
	return m.runOnce(ctx, jobs)
}

// runOnce performs a single mirror pass across all jobs.
func (m *Mirror) runOnce(ctx context.Context, jobs []mirror.Job) error {
	start := time.Now()
	m.log.InfoObj("mirror pass started", "pass_meta", map[string]any{
		"jobs_count": len(jobs),
		"started_at": start.UTC(),
	})
	if err := m.mirrorService.Run(ctx, jobs); err != nil {
		return err
	}
	m.log.InfoObj("mirror pass completed", "pass_meta", map[string]any{
		"jobs_count": len(jobs),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return nil
}

// closeStore safely closes the storage backend, logging any errors encountered.
func (m *Mirror) closeStore() {
	if m == nil || m.store == nil {
		return
	}
	if err := m.store.Close(); err != nil {
		m.log.ErrorObj("storage close failed", "error", err)
	}
}

// closeClients releases the shared client and any per-job clients.
func (m *Mirror) closeClients() {
	if m == nil {
		return
	}
	if m.client != nil {
		m.client.Close()
	}
	for _, jc := range m.jobClients {
		jc.Close()
	}
}

// closePublishers releases publishers that hold external connections.
func (m *Mirror) closePublishers() {
	if m == nil || m.fanout == nil {
		return
	}
	if err := m.fanout.Close(); err != nil {
		m.log.ErrorObj("publishers close failed", "error", err)
	}
}
