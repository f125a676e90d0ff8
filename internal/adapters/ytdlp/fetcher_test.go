package ytdlp

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spotdown/spotdown/internal/errors"
)

func newTestFetcher(runner *stubRunner) *Fetcher {
	return NewFetcher(FetcherOptions{
		Config: testMediaConfig(),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Runner: runner,
	})
}

func TestFetcher_Fetch(t *testing.T) {
	dir := t.TempDir()
	audioPath := filepath.Join(dir, "Some Title.mp3")
	require.NoError(t, os.WriteFile(audioPath, []byte("mp3 bytes"), 0o600))

	runner := &stubRunner{results: []stubResult{
		{stdout: audioPath + "\n"},
	}}
	fetcher := newTestFetcher(runner)

	result, err := fetcher.Fetch(context.Background(), "https://www.youtube.com/watch?v=abc", dir)
	require.NoError(t, err)

	assert.Equal(t, audioPath, result.FilePath)
	assert.Equal(t, "Some Title", result.Title)

	require.Len(t, runner.args, 1)
	args := runner.args[0]
	assert.Contains(t, args, "--extract-audio")
	assert.Contains(t, args, "mp3")
	assert.Contains(t, args, "320K")
	assert.Contains(t, args, "--no-playlist")
	assert.Equal(t, "https://www.youtube.com/watch?v=abc", args[len(args)-1])
}

func TestFetcher_Fetch_CommandFails(t *testing.T) {
	runner := &stubRunner{results: []stubResult{
		{err: errors.New("exit status 1"), stderr: "ERROR: file too large"},
	}}
	fetcher := newTestFetcher(runner)

	_, err := fetcher.Fetch(context.Background(), "https://www.youtube.com/watch?v=abc", t.TempDir())
	require.Error(t, err)
	assert.True(t, apperrors.IsFetch(err))
	assert.Contains(t, err.Error(), "file too large")
}

func TestFetcher_Fetch_NoOutputFileReported(t *testing.T) {
	runner := &stubRunner{results: []stubResult{
		{stdout: "\n"},
	}}
	fetcher := newTestFetcher(runner)

	_, err := fetcher.Fetch(context.Background(), "https://www.youtube.com/watch?v=abc", t.TempDir())
	require.Error(t, err)
	assert.True(t, apperrors.IsFetch(err))
}

func TestFetcher_Fetch_ReportedFileMissing(t *testing.T) {
	dir := t.TempDir()
	runner := &stubRunner{results: []stubResult{
		{stdout: filepath.Join(dir, "gone.mp3") + "\n"},
	}}
	fetcher := newTestFetcher(runner)

	_, err := fetcher.Fetch(context.Background(), "https://www.youtube.com/watch?v=abc", dir)
	require.Error(t, err)
	assert.True(t, apperrors.IsFetch(err))
	assert.Contains(t, err.Error(), "not found")
}
