package ytdlp

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spotdown/spotdown/config"
	"github.com/spotdown/spotdown/internal/core"
	apperrors "github.com/spotdown/spotdown/internal/errors"
)

// Fetcher implements core.MediaFetcher by running yt-dlp with the ffmpeg
// extract-audio postprocessor to produce an MP3 in the output directory.
type Fetcher struct {
	cfg    config.MediaConfig
	logger *slog.Logger
	runner CommandRunner
}

// FetcherOptions holds the dependencies for creating a Fetcher.
type FetcherOptions struct {
	Config config.MediaConfig
	Logger *slog.Logger

	// Optional dependency injection for testing/decoupling
	Runner CommandRunner
}

// NewFetcher creates a new media fetcher.
func NewFetcher(opts FetcherOptions) *Fetcher {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Runner == nil {
		opts.Runner = ExecRunner{}
	}
	return &Fetcher{
		cfg:    opts.Config,
		logger: opts.Logger.With("component", "media_fetcher"),
		runner: opts.Runner,
	}
}

// Fetch downloads the best audio stream behind mediaURL, transcodes it to
// MP3, and writes it into outputDir. The final file path is read back from
// yt-dlp's after_move print so postprocessor renames are accounted for.
func (f *Fetcher) Fetch(ctx context.Context, mediaURL, outputDir string) (*core.FetchResult, error) {
	cctx, cancel := context.WithTimeout(ctx, f.cfg.FetchTimeout)
	defer cancel()

	args := append(commonArgs(f.cfg),
		"-f", "bestaudio/best",
		"--extract-audio",
		"--audio-format", "mp3",
		"--audio-quality", strconv.Itoa(f.cfg.Bitrate)+"K",
		"--no-playlist",
		"--playlist-items", "1",
		"--max-downloads", "1",
		"--max-filesize", strconv.FormatInt(f.cfg.MaxFilesize, 10),
		"--fragment-retries", "10",
		"--file-access-retries", "10",
		"--retry-sleep", "fragment:"+strconv.Itoa(fragmentRetrySleep),
		"--http-chunk-size", "10M",
		"--no-progress",
		"--no-simulate",
		"--print", "after_move:filepath",
		"-o", filepath.Join(outputDir, "%(title)s.%(ext)s"),
		mediaURL,
	)

	f.logger.InfoContext(ctx, "fetching media", "url", mediaURL)

	stdout, stderr, err := f.runner.Run(cctx, f.cfg.YtDlpPath, args...)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrCodeFetch,
			"yt-dlp fetch failed: %s", strings.TrimSpace(string(stderr)))
	}

	filePath := lastLine(stdout)
	if filePath == "" {
		return nil, apperrors.Fetch("yt-dlp did not report an output file")
	}
	if _, statErr := os.Stat(filePath); statErr != nil {
		return nil, apperrors.Wrap(statErr, apperrors.ErrCodeFetch, "audio file not found after download")
	}

	title := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	f.logger.InfoContext(ctx, "fetched media", "file", filePath)

	return &core.FetchResult{Title: title, FilePath: filePath}, nil
}

// lastLine returns the last non-empty line of output. yt-dlp prints the
// after_move filepath as the final line even when earlier hooks also print.
func lastLine(out []byte) string {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
