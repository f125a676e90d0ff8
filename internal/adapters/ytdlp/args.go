package ytdlp

import (
	"strconv"

	"github.com/spotdown/spotdown/config"
)

// browserUserAgent is sent on every request. Some media endpoints throttle or
// reject the default yt-dlp agent string.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Retry pacing in seconds. Throttled and forbidden responses get a longer
// sleep than generic failures.
const (
	httpRetrySleep      = 10
	fragmentRetrySleep  = 10
	extractorRetrySleep = 5
)

// commonArgs returns the yt-dlp flags shared by search and fetch invocations:
// browser-like headers, socket timeout, and retry pacing.
func commonArgs(cfg config.MediaConfig) []string {
	return []string{
		"--no-warnings",
		"--user-agent", browserUserAgent,
		"--add-headers", "Accept:*/*",
		"--add-headers", "Accept-Language:en-US,en;q=0.9",
		"--add-headers", "Origin:https://www.youtube.com",
		"--add-headers", "Referer:https://www.youtube.com/",
		"--socket-timeout", strconv.Itoa(int(cfg.SocketTimeout.Seconds())),
		"--retries", "10",
		"--extractor-retries", "10",
		"--retry-sleep", "http:" + strconv.Itoa(httpRetrySleep),
		"--retry-sleep", "extractor:" + strconv.Itoa(extractorRetrySleep),
	}
}
