// Package id3tag writes ID3v2 metadata frames into MP3 files.
package id3tag

import (
	"github.com/bogem/id3v2/v2"

	apperrors "github.com/spotdown/spotdown/internal/errors"
)

// Tagger implements core.Tagger using ID3v2 frames. Tag failures are
// reported to the caller, which treats them as non-fatal: an untagged file
// is still deliverable.
type Tagger struct{}

// NewTagger creates a new ID3 tagger.
func NewTagger() *Tagger {
	return &Tagger{}
}

// Tag writes the title and artist frames into the file at path.
func (t *Tagger) Tag(path, title, artist string) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "open file for tagging")
	}
	defer func() { _ = tag.Close() }()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetTitle(title)
	tag.SetArtist(artist)

	if err := tag.Save(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "save tags")
	}
	return nil
}
