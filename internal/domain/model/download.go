// Package model defines the core data types for the spotdown download service.
package model

import (
	"time"
)

// DownloadStatus represents the current status of a download job.
type DownloadStatus string

const (
	// StatusStarting indicates the job record exists but the worker has not begun.
	StatusStarting DownloadStatus = "starting"
	// StatusDownloading indicates the worker is fetching and transcoding media.
	StatusDownloading DownloadStatus = "downloading"
	// StatusCompleted indicates the audio file is ready for delivery.
	StatusCompleted DownloadStatus = "completed"
	// StatusError indicates the job failed; the Error field holds the cause.
	StatusError DownloadStatus = "error"
)

// Valid returns true if the DownloadStatus is valid.
func (s DownloadStatus) Valid() bool {
	return s == StatusStarting || s == StatusDownloading || s == StatusCompleted || s == StatusError
}

// Terminal returns true when no further transitions are possible.
func (s DownloadStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusError
}

// CanTransition reports whether moving from s to next is a legal lifecycle step.
// The lifecycle is starting -> downloading -> {completed | error}.
func (s DownloadStatus) CanTransition(next DownloadStatus) bool {
	switch s {
	case StatusStarting:
		return next == StatusDownloading
	case StatusDownloading:
		return next == StatusCompleted || next == StatusError
	default:
		return false
	}
}

// Download represents one end-to-end request to resolve, locate, fetch, and tag
// a single audio track. The registry is the sole owner of Download records;
// after creation only the job's worker goroutine mutates one.
type Download struct {
	ID        string         `json:"download_id"`
	Status    DownloadStatus `json:"status"`
	Track     TrackInfo      `json:"track_info"`
	CreatedAt time.Time      `json:"created_at"`

	// TempDir is the job-scoped artifact directory. Empty until the worker
	// creates it; cleanup must only reference it when non-empty.
	TempDir string `json:"-"`

	// FilePath and Filename are populated only when Status is StatusCompleted.
	FilePath string `json:"-"`
	Filename string `json:"filename,omitempty"`

	// Error is populated only when Status is StatusError.
	Error string `json:"error,omitempty"`
}

// Ready reports whether the download artifact can be delivered.
func (d *Download) Ready() bool {
	return d.Status == StatusCompleted && d.FilePath != ""
}
