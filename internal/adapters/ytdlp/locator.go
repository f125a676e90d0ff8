package ytdlp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spotdown/spotdown/config"
	"github.com/spotdown/spotdown/internal/core"
)

// Locator implements core.MediaLocator by running a yt-dlp flat-playlist
// search and taking the first match.
type Locator struct {
	cfg    config.MediaConfig
	logger *slog.Logger
	runner CommandRunner
	sleep  func(time.Duration)
}

// LocatorOptions holds the dependencies for creating a Locator.
type LocatorOptions struct {
	Config config.MediaConfig
	Logger *slog.Logger

	// Optional dependency injection for testing/decoupling
	Runner CommandRunner
	Sleep  func(time.Duration)
}

// NewLocator creates a new media locator.
func NewLocator(opts LocatorOptions) *Locator {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Runner == nil {
		opts.Runner = ExecRunner{}
	}
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}
	return &Locator{
		cfg:    opts.Config,
		logger: opts.Logger.With("component", "media_locator"),
		runner: opts.Runner,
		sleep:  opts.Sleep,
	}
}

// searchEnvelope is the flat-playlist JSON emitted by a ytsearch extraction.
type searchEnvelope struct {
	Entries []searchEntry `json:"entries"`
}

type searchEntry struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Title string `json:"title"`
}

// Locate searches for "{track} {artist} official audio" and returns the URL
// of the first match. Empty result sets and transport failures both get
// retried with a fixed backoff.
func (l *Locator) Locate(ctx context.Context, trackName, artistName string) core.LocateResult {
	query := fmt.Sprintf("%s %s official audio", trackName, artistName)
	l.logger.InfoContext(ctx, "searching for media", "query", query)

	var (
		lastErr  error
		sawEmpty bool
	)

	for attempt := 1; attempt <= l.cfg.SearchAttempts; attempt++ {
		mediaURL, err := l.search(ctx, query)
		switch {
		case err == nil && mediaURL != "":
			l.logger.InfoContext(ctx, "found media url", "url", mediaURL, "attempt", attempt)
			return core.LocateResult{Outcome: core.LocateFound, URL: mediaURL}
		case err == nil:
			sawEmpty = true
			l.logger.WarnContext(ctx, "search returned no results", "attempt", attempt)
		default:
			lastErr = err
			l.logger.ErrorContext(ctx, "search attempt failed", "attempt", attempt, "error", err)
		}

		if attempt < l.cfg.SearchAttempts {
			if ctx.Err() != nil {
				return core.LocateResult{Outcome: core.LocateFailed, Cause: ctx.Err()}
			}
			l.sleep(l.cfg.SearchBackoff)
		}
	}

	if sawEmpty {
		return core.LocateResult{Outcome: core.LocateNotFound, Cause: lastErr}
	}
	return core.LocateResult{Outcome: core.LocateFailed, Cause: lastErr}
}

// search runs one yt-dlp search invocation and returns the first entry URL,
// or empty string when the platform returned zero matches.
func (l *Locator) search(ctx context.Context, query string) (string, error) {
	cctx, cancel := context.WithTimeout(ctx, l.cfg.SearchTimeout)
	defer cancel()

	args := append(commonArgs(l.cfg),
		"-J",
		"--skip-download",
		"--flat-playlist",
		"--no-playlist",
		"--playlist-items", "1",
		"ytsearch1:"+query,
	)

	stdout, stderr, err := l.runner.Run(cctx, l.cfg.YtDlpPath, args...)
	if err != nil {
		return "", fmt.Errorf("yt-dlp search: %w | %s", err, strings.TrimSpace(string(stderr)))
	}

	var envelope searchEnvelope
	if err := json.Unmarshal(stdout, &envelope); err != nil {
		return "", fmt.Errorf("parse search output: %w", err)
	}
	if len(envelope.Entries) == 0 {
		return "", nil
	}

	entry := envelope.Entries[0]
	if strings.HasPrefix(entry.URL, "http") {
		return entry.URL, nil
	}
	if entry.ID == "" {
		return "", nil
	}
	return "https://www.youtube.com/watch?v=" + entry.ID, nil
}
