package config

import "time"

// MediaConfig contains media locator and fetcher configuration.
type MediaConfig struct {
	// YtDlpPath is the yt-dlp binary to invoke.
	YtDlpPath string `env:"MEDIA_YTDLP_PATH" envDefault:"yt-dlp"`

	// Bitrate is the target MP3 bitrate in kbit/s.
	Bitrate int `env:"MEDIA_BITRATE" envDefault:"320"`

	// MaxFilesize caps the fetched media size in bytes.
	MaxFilesize int64 `env:"MEDIA_MAX_FILESIZE" envDefault:"100000000"`

	// SearchAttempts is the number of media search attempts before giving up.
	SearchAttempts int `env:"MEDIA_SEARCH_ATTEMPTS" envDefault:"3"`

	// SearchBackoff is the fixed sleep between failed search attempts.
	SearchBackoff time.Duration `env:"MEDIA_SEARCH_BACKOFF" envDefault:"2s"`

	// SocketTimeout is the per-request socket/read timeout.
	SocketTimeout time.Duration `env:"MEDIA_SOCKET_TIMEOUT" envDefault:"30s"`

	// SearchTimeout bounds a single search invocation.
	SearchTimeout time.Duration `env:"MEDIA_SEARCH_TIMEOUT" envDefault:"45s"`

	// FetchTimeout bounds a whole fetch+transcode invocation.
	FetchTimeout time.Duration `env:"MEDIA_FETCH_TIMEOUT" envDefault:"10m"`
}

// Sanitize applies guardrails to media configuration values.
func (m *MediaConfig) Sanitize() {
	if m.YtDlpPath == "" {
		m.YtDlpPath = "yt-dlp"
	}
	if m.Bitrate < 64 {
		m.Bitrate = 64
	}
	if m.Bitrate > 320 {
		m.Bitrate = 320
	}
	if m.MaxFilesize < 1<<20 {
		m.MaxFilesize = 1 << 20
	}
	if m.SearchAttempts < 1 {
		m.SearchAttempts = 1
	}
	if m.SearchBackoff < 0 {
		m.SearchBackoff = 0
	}
	if m.SocketTimeout < time.Second {
		m.SocketTimeout = time.Second
	}
	if m.SearchTimeout < 5*time.Second {
		m.SearchTimeout = 5 * time.Second
	}
	if m.FetchTimeout < time.Minute {
		m.FetchTimeout = time.Minute
	}
}
