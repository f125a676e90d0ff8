package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestParseServices(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    map[ServiceMode]bool
		expectError bool
	}{
		{
			name:  "single service - http",
			input: "http",
			expected: map[ServiceMode]bool{
				ServiceModeHTTP: true,
			},
			expectError: false,
		},
		{
			name:  "single service - reaper",
			input: "reaper",
			expected: map[ServiceMode]bool{
				ServiceModeReaper: true,
			},
			expectError: false,
		},
		{
			name:  "multiple services",
			input: "http,reaper",
			expected: map[ServiceMode]bool{
				ServiceModeHTTP:   true,
				ServiceModeReaper: true,
			},
			expectError: false,
		},
		{
			name:  "services with spaces",
			input: " http , reaper ",
			expected: map[ServiceMode]bool{
				ServiceModeHTTP:   true,
				ServiceModeReaper: true,
			},
			expectError: false,
		},
		{
			name:  "duplicate services",
			input: "http,http,reaper",
			expected: map[ServiceMode]bool{
				ServiceModeHTTP:   true,
				ServiceModeReaper: true,
			},
			expectError: false,
		},
		{
			name:        "empty string",
			input:       "",
			expected:    nil,
			expectError: true,
		},
		{
			name:        "only spaces and commas",
			input:       " , , ",
			expected:    nil,
			expectError: true,
		},
		{
			name:        "invalid service name",
			input:       "http,invalid-service",
			expected:    nil,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseServices(tt.input)

			if tt.expectError {
				if err == nil {
					t.Errorf("expected error but got none")
				}
				return
			}

			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}

			if len(result) != len(tt.expected) {
				t.Errorf("expected %d services, got %d", len(tt.expected), len(result))
				return
			}

			for service, expected := range tt.expected {
				if result[service] != expected {
					t.Errorf("expected service %s to be %v, got %v", service, expected, result[service])
				}
			}
		})
	}
}

func TestConfig_ServiceEnabledMethods(t *testing.T) {
	tests := []struct {
		name           string
		services       string
		expectedHTTP   bool
		expectedReaper bool
	}{
		{
			name:           "default - http only",
			services:       "http",
			expectedHTTP:   true,
			expectedReaper: false,
		},
		{
			name:           "http and reaper",
			services:       "http,reaper",
			expectedHTTP:   true,
			expectedReaper: true,
		},
		{
			name:           "reaper only",
			services:       "reaper",
			expectedHTTP:   false,
			expectedReaper: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := AppConfig{Services: tt.services}

			if cfg.IsHTTPServerEnabled() != tt.expectedHTTP {
				t.Errorf("IsHTTPServerEnabled(): expected %v, got %v", tt.expectedHTTP, cfg.IsHTTPServerEnabled())
			}

			if cfg.IsReaperEnabled() != tt.expectedReaper {
				t.Errorf("IsReaperEnabled(): expected %v, got %v", tt.expectedReaper, cfg.IsReaperEnabled())
			}
		})
	}
}

func TestConfig_ServiceEnabledMethodsWithInvalidConfig(t *testing.T) {
	cfg := AppConfig{Services: "invalid-service"}

	// All methods should return false when configuration is invalid
	if cfg.IsHTTPServerEnabled() != false {
		t.Errorf("IsHTTPServerEnabled() with invalid config: expected false, got true")
	}

	if cfg.IsReaperEnabled() != false {
		t.Errorf("IsReaperEnabled() with invalid config: expected false, got true")
	}
}

func TestAppConfig_ParseEnvDefaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("expected default HTTP addr :8080, got %q", cfg.HTTP.Addr)
	}
	if cfg.Downloads.TTL != time.Hour {
		t.Errorf("expected default download TTL 1h, got %v", cfg.Downloads.TTL)
	}
	if cfg.Media.Bitrate != 320 {
		t.Errorf("expected default bitrate 320, got %d", cfg.Media.Bitrate)
	}
	if cfg.Media.SearchAttempts != 3 {
		t.Errorf("expected default search attempts 3, got %d", cfg.Media.SearchAttempts)
	}
	if cfg.Spotify.Configured() {
		t.Error("expected spotify credentials to be absent by default")
	}
	if cfg.Redis.Enabled() {
		t.Error("expected redis cache to be disabled by default")
	}
}

func TestAppConfig_ParseSpotifyEnv(t *testing.T) {
	t.Setenv("SPOTIFY_CLIENT_ID", "app-client")
	t.Setenv("SPOTIFY_CLIENT_SECRET", "super-secret")
	t.Setenv("SPOTIFY_API_BASE", "https://api.spotify.example/ ")
	t.Setenv("SPOTIFY_MARKET", "US")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if !cfg.Spotify.Configured() {
		t.Fatal("expected spotify to be configured")
	}
	if cfg.Spotify.APIBase != "https://api.spotify.example" {
		t.Errorf("expected API base trimmed of trailing slash, got %q", cfg.Spotify.APIBase)
	}
	if cfg.Spotify.Market != "US" {
		t.Errorf("expected market US, got %q", cfg.Spotify.Market)
	}
}

func TestMediaConfig_Sanitize(t *testing.T) {
	cfg := MediaConfig{
		YtDlpPath:      "",
		Bitrate:        999,
		MaxFilesize:    1,
		SearchAttempts: 0,
		SearchBackoff:  -time.Second,
		SocketTimeout:  0,
	}

	cfg.Sanitize()

	if cfg.YtDlpPath != "yt-dlp" {
		t.Errorf("expected yt-dlp path default, got %q", cfg.YtDlpPath)
	}
	if cfg.Bitrate != 320 {
		t.Errorf("expected bitrate clamped to 320, got %d", cfg.Bitrate)
	}
	if cfg.MaxFilesize < 1<<20 {
		t.Errorf("expected max filesize clamped, got %d", cfg.MaxFilesize)
	}
	if cfg.SearchAttempts != 1 {
		t.Errorf("expected search attempts clamped to 1, got %d", cfg.SearchAttempts)
	}
	if cfg.SearchBackoff != 0 {
		t.Errorf("expected search backoff clamped to 0, got %v", cfg.SearchBackoff)
	}
	if cfg.SocketTimeout < time.Second {
		t.Errorf("expected socket timeout clamped, got %v", cfg.SocketTimeout)
	}
}

func TestObservabilityMetricsConfig_Sanitize(t *testing.T) {
	cfg := ObservabilityMetricsConfig{
		Enabled:       true,
		StatsdAddress: " ",
	}

	cfg.Sanitize()

	if cfg.Enabled {
		t.Fatalf("expected enabled to be false when address is empty")
	}

	cfg = ObservabilityMetricsConfig{
		Enabled:       true,
		StatsdAddress: " statsd:1234 ",
	}

	cfg.Sanitize()

	if !cfg.IsEnabled() {
		t.Fatalf("expected metrics to remain enabled")
	}
	if cfg.StatsdAddress != "statsd:1234" {
		t.Fatalf("expected address to be trimmed, got %q", cfg.StatsdAddress)
	}
}
