package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDownloadStatus_Valid(t *testing.T) {
	for _, s := range []DownloadStatus{StatusStarting, StatusDownloading, StatusCompleted, StatusError} {
		assert.True(t, s.Valid(), "expected %q to be valid", s)
	}

	assert.False(t, DownloadStatus("queued").Valid())
	assert.False(t, DownloadStatus("").Valid())
}

func TestDownloadStatus_Terminal(t *testing.T) {
	assert.False(t, StatusStarting.Terminal())
	assert.False(t, StatusDownloading.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusError.Terminal())
}

func TestDownloadStatus_CanTransition(t *testing.T) {
	tests := []struct {
		from, to DownloadStatus
		ok       bool
	}{
		{StatusStarting, StatusDownloading, true},
		{StatusStarting, StatusCompleted, false},
		{StatusStarting, StatusError, false},
		{StatusDownloading, StatusCompleted, true},
		{StatusDownloading, StatusError, true},
		{StatusDownloading, StatusStarting, false},
		{StatusCompleted, StatusDownloading, false},
		{StatusCompleted, StatusError, false},
		{StatusError, StatusDownloading, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.ok, tt.from.CanTransition(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestDownload_Ready(t *testing.T) {
	d := &Download{Status: StatusCompleted, FilePath: "/tmp/x/file.mp3"}
	assert.True(t, d.Ready())

	assert.False(t, (&Download{Status: StatusCompleted}).Ready())
	assert.False(t, (&Download{Status: StatusDownloading, FilePath: "/tmp/x/file.mp3"}).Ready())
	assert.False(t, (&Download{Status: StatusError}).Ready())
}
