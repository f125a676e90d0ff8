package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/spotdown/spotdown/config"
	"github.com/spotdown/spotdown/internal/data"
	"github.com/spotdown/spotdown/internal/observability/statsd"
)

// ReaperServiceOptions groups dependencies for ReaperService.
type ReaperServiceOptions struct {
	Store   *data.DownloadStore   // Required: download registry
	Config  config.ReaperConfig   // Required: reaper configuration
	TTL     time.Duration         // Required: download staleness threshold
	Logger  *slog.Logger          // Optional: structured logger
	Metrics statsd.Sink           // Optional: metrics sink (StatsD-compatible)
}

// ReaperService periodically evicts stale download records and their temp
// storage. The same sweep also runs on every status poll; this loop bounds
// how long the artifacts of never-polled jobs can linger.
type ReaperService struct {
	store   *data.DownloadStore
	config  config.ReaperConfig
	ttl     time.Duration
	logger  *slog.Logger
	metrics statsd.Sink

	now func() time.Time
}

// NewReaperService constructs a new ReaperService.
func NewReaperService(opts ReaperServiceOptions) (*ReaperService, error) {
	if opts.Store == nil {
		return nil, errors.New("DownloadStore is required")
	}
	if opts.TTL <= 0 {
		return nil, errors.New("download TTL must be positive")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ReaperService{
		store:   opts.Store,
		config:  opts.Config,
		ttl:     opts.TTL,
		logger:  logger.With("component", "reaper_service"),
		metrics: opts.Metrics,
		now:     time.Now,
	}, nil
}

// Run starts the sweep loop and runs until the context is cancelled.
// Returns nil on graceful shutdown (context.Canceled), error otherwise.
func (s *ReaperService) Run(ctx context.Context) error {
	s.logger.InfoContext(ctx, "starting reaper service",
		"interval", s.config.Interval,
		"ttl", s.ttl,
	)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "reaper service stopping", "reason", ctx.Err())
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()

		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep evicts stale records and reports the count.
func (s *ReaperService) sweep(ctx context.Context) {
	evicted := s.store.Sweep(s.now(), s.ttl)
	if evicted > 0 {
		s.logger.InfoContext(ctx, "reaped stale downloads", "count", evicted)
	}
	if s.metrics != nil && evicted > 0 {
		s.metrics.Count("reaper.evicted", int64(evicted), nil)
	}
}
