package config

import "strings"

// SpotifyConfig contains the Spotify Web API client configuration.
// When ClientID or ClientSecret is absent the metadata resolver is disabled:
// the index page degrades to a configuration warning and downloads are
// rejected.
type SpotifyConfig struct {
	// ClientID is the Spotify application client ID.
	ClientID string `env:"SPOTIFY_CLIENT_ID" envDefault:""`

	// ClientSecret is the Spotify application client secret.
	ClientSecret string `env:"SPOTIFY_CLIENT_SECRET" envDefault:""`

	// APIBase is the Spotify Web API base URL.
	APIBase string `env:"SPOTIFY_API_BASE" envDefault:"https://api.spotify.com"`

	// TokenURL is the OAuth2 client-credentials token endpoint.
	TokenURL string `env:"SPOTIFY_TOKEN_URL" envDefault:"https://accounts.spotify.com/api/token"`

	// Market is an optional market code forwarded on track lookups.
	Market string `env:"SPOTIFY_MARKET" envDefault:""`
}

// Sanitize applies guardrails to Spotify configuration values.
func (s *SpotifyConfig) Sanitize() {
	s.APIBase = strings.TrimSuffix(strings.TrimSpace(s.APIBase), "/")
	s.TokenURL = strings.TrimSpace(s.TokenURL)
}

// Configured returns true when API credentials are present.
func (s *SpotifyConfig) Configured() bool {
	return s.ClientID != "" && s.ClientSecret != ""
}
