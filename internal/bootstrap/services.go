package bootstrap

import (
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/spotdown/spotdown/config"
	"github.com/spotdown/spotdown/internal/adapters/id3tag"
	"github.com/spotdown/spotdown/internal/adapters/spotify"
	"github.com/spotdown/spotdown/internal/adapters/ytdlp"
	"github.com/spotdown/spotdown/internal/core"
	"github.com/spotdown/spotdown/internal/data"
	"github.com/spotdown/spotdown/internal/observability/statsd"
	"github.com/spotdown/spotdown/internal/service"
)

// ServiceDeps contains the shared dependencies for building services.
type ServiceDeps struct {
	Config      *config.AppConfig
	RedisClient redis.UniversalClient // Optional: nil disables the track cache
	Logger      *slog.Logger
}

// ServiceContainer holds the constructed application services.
type ServiceContainer struct {
	Store     *data.DownloadStore
	Downloads *service.DownloadService
	Reaper    *service.ReaperService

	// MetricsClient owns the StatsD connection; MetricsSink is what services
	// consume. Both are nil-safe.
	MetricsClient *statsd.Client
	MetricsSink   statsd.Sink
}

// NewServices wires adapters and services from configuration.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	metricsClient, err := statsd.NewClient(statsd.Config{
		Enabled: cfg.Observability.Metrics.IsEnabled(),
		Address: cfg.Observability.Metrics.StatsdAddress,
		Prefix:  "spotdown",
		Logger:  logger,
	})
	if err != nil {
		return ServiceContainer{}, err
	}
	var sink statsd.Sink
	if metricsClient.Enabled() {
		sink = metricsClient
	}

	resolver, err := buildResolver(cfg, logger)
	if err != nil {
		return ServiceContainer{}, err
	}

	var cache core.TrackCache
	if deps.RedisClient != nil {
		cache = data.NewRedisTrackCache(deps.RedisClient)
	}

	store := data.NewDownloadStore(logger)

	downloads, err := service.NewDownloadService(service.DownloadServiceOptions{
		Store:    store,
		Resolver: resolver,
		Locator:  ytdlp.NewLocator(ytdlp.LocatorOptions{Config: cfg.Media, Logger: logger}),
		Fetcher:  ytdlp.NewFetcher(ytdlp.FetcherOptions{Config: cfg.Media, Logger: logger}),
		Tagger:   id3tag.NewTagger(),
		Cache:    cache,
		Config:   cfg.Downloads,
		TrackTTL: cfg.Redis.TrackTTL,
		Logger:   logger,
		Metrics:  sink,
	})
	if err != nil {
		return ServiceContainer{}, err
	}

	container := ServiceContainer{
		Store:         store,
		Downloads:     downloads,
		MetricsClient: metricsClient,
		MetricsSink:   sink,
	}

	if cfg.IsReaperEnabled() {
		reaper, err := service.NewReaperService(service.ReaperServiceOptions{
			Store:   store,
			Config:  cfg.Reaper,
			TTL:     cfg.Downloads.TTL,
			Logger:  logger,
			Metrics: sink,
		})
		if err != nil {
			return ServiceContainer{}, err
		}
		container.Reaper = reaper
	}

	return container, nil
}

// buildResolver constructs the Spotify resolver, or nil when credentials are
// absent. A missing resolver is not fatal: the HTTP surface degrades to a
// configuration warning.
func buildResolver(cfg *config.AppConfig, logger *slog.Logger) (core.TrackResolver, error) {
	if !cfg.Spotify.Configured() {
		logger.Warn("spotify credentials not configured, track resolution disabled")
		return nil, nil
	}

	client, err := spotify.NewClient(spotify.ClientOptions{Config: cfg.Spotify})
	if err != nil {
		return nil, err
	}
	return client, nil
}
