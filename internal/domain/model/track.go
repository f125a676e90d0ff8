package model

import (
	"strings"

	apperrors "github.com/spotdown/spotdown/internal/errors"
)

// trackURLMarker identifies a Spotify track link. Requests without it are
// rejected before any external call is made.
const trackURLMarker = "spotify.com/track/"

// Artist holds the display name of a single artist.
type Artist struct {
	Name string `json:"name"`
}

// TrackInfo is the immutable snapshot of resolved track metadata captured at
// job creation.
type TrackInfo struct {
	Name    string   `json:"name"`
	Artists []Artist `json:"artists"`
}

// PrimaryArtist returns the first artist's name, or empty when none resolved.
func (t TrackInfo) PrimaryArtist() string {
	if len(t.Artists) == 0 {
		return ""
	}
	return t.Artists[0].Name
}

// ParseTrackID extracts the track identifier from a Spotify track URL.
// The identifier is the final path segment, with any query string stripped.
func ParseTrackID(trackURL string) (string, error) {
	if trackURL == "" {
		return "", apperrors.ValidationField("trackUrl", "missing trackUrl in request")
	}
	if !strings.Contains(trackURL, trackURLMarker) {
		return "", apperrors.ValidationField("trackUrl", "invalid Spotify track URL")
	}

	id := trackURL[strings.LastIndex(trackURL, "/")+1:]
	if i := strings.IndexByte(id, '?'); i >= 0 {
		id = id[:i]
	}
	if id == "" {
		return "", apperrors.ValidationField("trackUrl", "invalid Spotify track URL")
	}
	return id, nil
}

// SafeFilename builds the delivery filename "{track} - {artist}.mp3" with path
// separator characters replaced so the result is a single path segment.
func SafeFilename(track, artist string) string {
	name := track + " - " + artist + ".mp3"
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	return name
}
