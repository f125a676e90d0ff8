// Package core defines the ports between the download orchestrator and its
// adapters. The core owns these interfaces and the adapters implement them, so
// the service layer never imports adapter packages directly.
package core

import (
	"context"
	"time"

	"github.com/spotdown/spotdown/internal/domain/model"
)

// TrackResolver resolves a track ID into metadata via an external catalog API.
type TrackResolver interface {
	// Resolve fetches the track name and artists for the given track ID.
	Resolve(ctx context.Context, trackID string) (*model.TrackInfo, error)
}

// LocateOutcome classifies the result of a media platform search.
type LocateOutcome int

const (
	// LocateFound means a playable media URL was identified.
	LocateFound LocateOutcome = iota
	// LocateNotFound means the search completed but matched nothing.
	LocateNotFound
	// LocateFailed means every search attempt errored out.
	LocateFailed
)

// LocateResult is the outcome of a media search. URL is set only when Outcome
// is LocateFound; Cause carries the last error for the other outcomes.
type LocateResult struct {
	Outcome LocateOutcome
	URL     string
	Cause   error
}

// MediaLocator searches the media platform for a track and returns the URL of
// the best match.
type MediaLocator interface {
	Locate(ctx context.Context, trackName, artistName string) LocateResult
}

// FetchResult describes the audio file produced by a fetch.
type FetchResult struct {
	// Title is the media platform's title for the downloaded item.
	Title string
	// FilePath is the absolute path of the transcoded audio file.
	FilePath string
}

// MediaFetcher downloads a media URL and transcodes it to an audio file inside
// outputDir.
type MediaFetcher interface {
	Fetch(ctx context.Context, mediaURL, outputDir string) (*FetchResult, error)
}

// Tagger writes metadata tags into a finished audio file.
type Tagger interface {
	Tag(path, title, artist string) error
}

// TrackCache caches resolved track metadata. Get returns (nil, nil) on a
// cache miss.
type TrackCache interface {
	Get(ctx context.Context, trackID string) (*model.TrackInfo, error)
	Set(ctx context.Context, trackID string, info *model.TrackInfo, ttl time.Duration) error
}
