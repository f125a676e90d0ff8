package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/spotdown/spotdown/config"
	"github.com/spotdown/spotdown/internal/core"
	"github.com/spotdown/spotdown/internal/data"
	"github.com/spotdown/spotdown/internal/domain/model"
	apperrors "github.com/spotdown/spotdown/internal/errors"
	"github.com/spotdown/spotdown/internal/observability/metrics"
	"github.com/spotdown/spotdown/internal/observability/statsd"
)

// shmDir is preferred for job temp directories so artifacts live in
// memory-backed storage when available.
const shmDir = "/dev/shm"

// DownloadServiceOptions groups dependencies for DownloadService.
type DownloadServiceOptions struct {
	Store    *data.DownloadStore // Required: download registry
	Resolver core.TrackResolver  // Optional: nil when metadata credentials are absent
	Locator  core.MediaLocator   // Required: media platform search
	Fetcher  core.MediaFetcher   // Required: media download and transcode
	Tagger   core.Tagger         // Optional: ID3 tag writer
	Cache    core.TrackCache     // Optional: resolved metadata cache
	Config   config.DownloadConfig
	TrackTTL time.Duration // Cache TTL for resolved track metadata
	Logger   *slog.Logger  // Optional: structured logger
	Metrics  statsd.Sink   // Optional: metrics sink (StatsD-compatible)
}

// DownloadService orchestrates the download lifecycle: resolve track metadata,
// locate the media, then fetch, transcode, and tag in a background worker.
//
// Lifecycle: starting -> downloading -> {completed | error}. Records live in
// the registry until delivered or evicted by the staleness sweep.
type DownloadService struct {
	store    *data.DownloadStore
	resolver core.TrackResolver
	locator  core.MediaLocator
	fetcher  core.MediaFetcher
	tagger   core.Tagger
	cache    core.TrackCache
	config   config.DownloadConfig
	trackTTL time.Duration
	logger   *slog.Logger
	metrics  statsd.Sink

	now func() time.Time
}

// NewDownloadService constructs a new DownloadService.
func NewDownloadService(opts DownloadServiceOptions) (*DownloadService, error) {
	if opts.Store == nil {
		return nil, errors.New("DownloadStore is required")
	}
	if opts.Locator == nil {
		return nil, errors.New("MediaLocator is required")
	}
	if opts.Fetcher == nil {
		return nil, errors.New("MediaFetcher is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &DownloadService{
		store:    opts.Store,
		resolver: opts.Resolver,
		locator:  opts.Locator,
		fetcher:  opts.Fetcher,
		tagger:   opts.Tagger,
		cache:    opts.Cache,
		config:   opts.Config,
		trackTTL: opts.TrackTTL,
		logger:   logger.With("component", "download_service"),
		metrics:  opts.Metrics,
		now:      time.Now,
	}, nil
}

// Configured reports whether track metadata resolution is available.
func (s *DownloadService) Configured() bool {
	return s.resolver != nil
}

// Start validates the track URL, resolves metadata, locates the media, and
// spawns the background worker. The returned record is a snapshot in status
// "starting"; callers poll Status for progress.
func (s *DownloadService) Start(ctx context.Context, trackURL string) (*model.Download, error) {
	trackID, err := model.ParseTrackID(trackURL)
	if err != nil {
		return nil, err
	}

	if s.resolver == nil {
		return nil, apperrors.Resolution("track metadata resolver is not configured")
	}

	info, err := s.resolveTrack(ctx, trackID)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "processing track",
		"track", info.Name,
		"artist", info.PrimaryArtist(),
	)

	located := s.locator.Locate(ctx, info.Name, info.PrimaryArtist())
	switch located.Outcome {
	case core.LocateFound:
		// proceed
	case core.LocateNotFound:
		s.logger.WarnContext(ctx, "no media match for track", "track", info.Name)
		return nil, apperrors.NotFound("could not find track on media platform")
	default:
		s.logger.ErrorContext(ctx, "media search failed", "track", info.Name, "error", located.Cause)
		return nil, apperrors.NotFound("could not find track on media platform")
	}

	download := &model.Download{
		ID:        uuid.NewString(),
		Status:    model.StatusStarting,
		Track:     *info,
		CreatedAt: s.now(),
	}
	s.store.Create(download)

	// Detached from the request context: the worker outlives the HTTP call.
	go s.process(context.WithoutCancel(ctx), download.ID, *info, located.URL)

	return download, nil
}

// Status sweeps stale records, then returns a snapshot of the requested one.
func (s *DownloadService) Status(ctx context.Context, id string) (*model.Download, error) {
	if evicted := s.store.Sweep(s.now(), s.config.TTL); evicted > 0 {
		s.logger.InfoContext(ctx, "evicted stale downloads during status poll", "count", evicted)
	}

	d, err := s.store.Get(id)
	if err != nil {
		return nil, apperrors.NotFound("download not found")
	}
	return d, nil
}

// Deliver returns the completed download for file delivery. The caller must
// invoke Finish afterwards regardless of whether the send succeeded.
func (s *DownloadService) Deliver(id string) (*model.Download, error) {
	d, err := s.store.Get(id)
	if err != nil {
		return nil, apperrors.NotFound("download not found")
	}
	if !d.Ready() {
		return nil, apperrors.Validation("download not ready")
	}
	return d, nil
}

// Finish removes the record and its temp storage. Delivery is single-use:
// after the first send attempt the record is gone no matter the outcome.
func (s *DownloadService) Finish(id string) {
	if err := s.store.Delete(id); err != nil && !errors.Is(err, data.ErrDownloadNotFound) {
		s.logger.Error("failed to finish download", "download_id", id, "error", err)
	}
}

// resolveTrack returns track metadata, consulting the cache first when one is
// wired. Cache failures are logged and ignored; the resolver is authoritative.
func (s *DownloadService) resolveTrack(ctx context.Context, trackID string) (*model.TrackInfo, error) {
	if s.cache != nil {
		info, err := s.cache.Get(ctx, trackID)
		switch {
		case err != nil:
			s.logger.WarnContext(ctx, "track cache read failed", "track_id", trackID, "error", err)
		case info != nil:
			return info, nil
		}
	}

	info, err := s.resolver.Resolve(ctx, trackID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, trackID, info, s.trackTTL); err != nil {
			s.logger.WarnContext(ctx, "track cache write failed", "track_id", trackID, "error", err)
		}
	}
	return info, nil
}

// process is the background worker for one download. It owns the record's
// mutations from "downloading" until a terminal status.
func (s *DownloadService) process(ctx context.Context, id string, track model.TrackInfo, mediaURL string) {
	start := s.now()
	logger := s.logger.With("download_id", id)

	if err := s.setStatus(id, model.StatusDownloading); err != nil {
		logger.WarnContext(ctx, "record gone before processing began", "error", err)
		return
	}

	tempDir, err := s.makeTempDir()
	if err != nil {
		s.failDownload(ctx, id, "", err)
		s.emitProcessMetric(metrics.ResultError, s.now().Sub(start), err)
		return
	}
	if err := s.store.Update(id, func(d *model.Download) { d.TempDir = tempDir }); err != nil {
		// Record evicted between status update and here; don't leak the dir.
		_ = os.RemoveAll(tempDir)
		return
	}

	result, err := s.fetcher.Fetch(ctx, mediaURL, tempDir)
	if err != nil {
		s.failDownload(ctx, id, tempDir, err)
		s.emitProcessMetric(metrics.ResultError, s.now().Sub(start), err)
		return
	}

	filename := model.SafeFilename(track.Name, track.PrimaryArtist())
	finalPath := filepath.Join(tempDir, filename)
	if err := os.Rename(result.FilePath, finalPath); err != nil {
		s.failDownload(ctx, id, tempDir, err)
		s.emitProcessMetric(metrics.ResultError, s.now().Sub(start), err)
		return
	}

	// Tagging is best-effort; an untagged file is still deliverable.
	if s.tagger != nil {
		if err := s.tagger.Tag(finalPath, track.Name, track.PrimaryArtist()); err != nil {
			logger.WarnContext(ctx, "could not write ID3 tags", "error", err)
		}
	}

	if err := s.store.Update(id, func(d *model.Download) {
		d.Status = model.StatusCompleted
		d.FilePath = finalPath
		d.Filename = filename
	}); err != nil {
		_ = os.RemoveAll(tempDir)
		return
	}

	logger.InfoContext(ctx, "download completed", "file", filename)
	s.emitProcessMetric(metrics.ResultSuccess, s.now().Sub(start), nil)
}

// setStatus applies a guarded lifecycle transition.
func (s *DownloadService) setStatus(id string, next model.DownloadStatus) error {
	return s.store.Update(id, func(d *model.Download) {
		if d.Status.CanTransition(next) {
			d.Status = next
		}
	})
}

// failDownload records the terminal error state and removes the temp
// directory when one was created.
func (s *DownloadService) failDownload(ctx context.Context, id, tempDir string, cause error) {
	s.logger.ErrorContext(ctx, "error processing download", "download_id", id, "error", cause)

	if err := s.store.Update(id, func(d *model.Download) {
		d.Status = model.StatusError
		d.Error = cause.Error()
		d.TempDir = ""
	}); err != nil {
		// Already evicted; nothing left to mark.
	}

	if tempDir != "" {
		if err := os.RemoveAll(tempDir); err != nil {
			s.logger.ErrorContext(ctx, "failed to clean up temp directory", "dir", tempDir, "error", err)
		}
	}
}

// makeTempDir creates the job-scoped artifact directory, preferring
// memory-backed storage when no base directory is configured.
func (s *DownloadService) makeTempDir() (string, error) {
	base := s.config.BaseDir
	if base == "" {
		if fi, err := os.Stat(shmDir); err == nil && fi.IsDir() {
			base = shmDir
		}
	}
	dir, err := os.MkdirTemp(base, "download-")
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "create temp directory")
	}
	return dir, nil
}

func (s *DownloadService) emitProcessMetric(result string, elapsed time.Duration, err error) {
	metrics.EmitDownloadLifecycle(s.metrics, metrics.DownloadMetric{
		Stage:    "process",
		Result:   result,
		Duration: elapsed,
		Err:      err,
	})
}
