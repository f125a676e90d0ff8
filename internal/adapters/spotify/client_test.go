package spotify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spotdown/spotdown/config"
	apperrors "github.com/spotdown/spotdown/internal/errors"
)

// newTestClient spins up a stub token endpoint plus API server and returns a
// client pointed at them.
func newTestClient(t *testing.T, apiHandler http.HandlerFunc) *Client {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"test-token","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/v1/tracks/", apiHandler)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client, err := NewClient(ClientOptions{
		Config: config.SpotifyConfig{
			ClientID:     "id",
			ClientSecret: "secret",
			APIBase:      srv.URL,
			TokenURL:     srv.URL + "/token",
		},
		HTTPClient: srv.Client(),
	})
	require.NoError(t, err)
	return client
}

func TestClient_Resolve(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"name": "Song Title",
			"artists": [{"name": "First Artist"}, {"name": "Second Artist"}]
		}`))
	})

	info, err := client.Resolve(context.Background(), "abc123")
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "Song Title", info.Name)
	require.Len(t, info.Artists, 2)
	assert.Equal(t, "First Artist", info.Artists[0].Name)
	assert.Equal(t, "First Artist", info.PrimaryArtist())
}

func TestClient_Resolve_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"status":404,"message":"non existing id"}}`))
	})

	_, err := client.Resolve(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestClient_Resolve_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":{"status":502,"message":"upstream broke"}}`))
	})

	_, err := client.Resolve(context.Background(), "abc123")
	require.Error(t, err)
	assert.True(t, apperrors.IsResolution(err))
	assert.Contains(t, err.Error(), "upstream broke")
}

func TestClient_Resolve_EmptyName(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"","artists":[]}`))
	})

	_, err := client.Resolve(context.Background(), "abc123")
	require.Error(t, err)
	assert.True(t, apperrors.IsResolution(err))
}

func TestNewClient_RequiresCredentials(t *testing.T) {
	_, err := NewClient(ClientOptions{Config: config.SpotifyConfig{
		APIBase:  "https://api.spotify.com",
		TokenURL: "https://accounts.spotify.com/api/token",
	}})
	require.Error(t, err)
}
