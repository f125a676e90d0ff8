// Package spotify resolves track metadata through the Spotify Web API.
package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/spotdown/spotdown/config"
	"github.com/spotdown/spotdown/internal/domain/model"
	apperrors "github.com/spotdown/spotdown/internal/errors"
)

// Client implements core.TrackResolver against the Spotify Web API using the
// client-credentials grant. The oauth2 transport caches and refreshes the
// bearer token across calls.
type Client struct {
	apiBase    string
	market     string
	httpClient *http.Client
}

// ClientOptions holds the dependencies for creating a Client.
type ClientOptions struct {
	Config config.SpotifyConfig

	// HTTPClient is the base client used for token and API requests.
	// Optional, defaults to a client with a 30s timeout.
	HTTPClient *http.Client
}

// NewClient creates a new Spotify API client.
func NewClient(opts ClientOptions) (*Client, error) {
	if !opts.Config.Configured() {
		return nil, errors.New("spotify client ID and secret are required")
	}
	if opts.Config.APIBase == "" {
		return nil, errors.New("spotify API base URL is required")
	}
	if opts.Config.TokenURL == "" {
		return nil, errors.New("spotify token URL is required")
	}

	base := opts.HTTPClient
	if base == nil {
		base = &http.Client{Timeout: 30 * time.Second}
	}

	cc := &clientcredentials.Config{
		ClientID:     opts.Config.ClientID,
		ClientSecret: opts.Config.ClientSecret,
		TokenURL:     opts.Config.TokenURL,
	}

	// clientcredentials reads the base client from the context so the token
	// endpoint shares timeouts with API calls.
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)

	return &Client{
		apiBase:    opts.Config.APIBase,
		market:     opts.Config.Market,
		httpClient: cc.Client(ctx),
	}, nil
}

// trackResponse is the subset of the Spotify track object we consume.
type trackResponse struct {
	Name    string `json:"name"`
	Artists []struct {
		Name string `json:"name"`
	} `json:"artists"`
}

// apiErrorResponse is the Spotify error envelope.
type apiErrorResponse struct {
	Error struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// Resolve fetches track metadata for the given Spotify track ID.
func (c *Client) Resolve(ctx context.Context, trackID string) (*model.TrackInfo, error) {
	endpoint := fmt.Sprintf("%s/v1/tracks/%s", c.apiBase, url.PathEscape(trackID))
	if c.market != "" {
		endpoint += "?market=" + url.QueryEscape(c.market)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "build track request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeResolution, "fetch track metadata")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeResolution, "read track response")
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperrors.NotFoundf("track %s not found", trackID)
	default:
		return nil, apperrors.Resolutionf("spotify API returned %d: %s", resp.StatusCode, apiErrorMessage(body))
	}

	var track trackResponse
	if err := json.Unmarshal(body, &track); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeResolution, "decode track response")
	}
	if track.Name == "" {
		return nil, apperrors.Resolutionf("track %s has no name in API response", trackID)
	}

	info := &model.TrackInfo{Name: track.Name}
	for _, a := range track.Artists {
		if a.Name == "" {
			continue
		}
		info.Artists = append(info.Artists, model.Artist{Name: a.Name})
	}
	return info, nil
}

// apiErrorMessage extracts the error message from a Spotify error payload,
// falling back to a generic label for unparseable bodies.
func apiErrorMessage(body []byte) string {
	var e apiErrorResponse
	if err := json.Unmarshal(body, &e); err != nil || e.Error.Message == "" {
		return "unrecognized error payload"
	}
	return e.Error.Message
}
