package data

import "errors"

// Shared sentinel errors for data-layer stores.
var (
	// ErrDownloadNotFound is returned when a download record does not exist
	// or has already been evicted.
	ErrDownloadNotFound = errors.New("download not found")
)
