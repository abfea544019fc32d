package lister

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dhowden/tag"
	"github.com/go-audio/aiff"
	"github.com/go-audio/wav"

	"github.com/wavedeck/wavedeck/internal/domain"
)

// probe builds a Track for path, reading what metadata it can.
// Every failure falls back to what is known from the filename alone;
// a track with no tags is still playable.
func (l *Lister) probe(path string) domain.Track {
	track := domain.Track{Path: path}

	if title := probeTitle(path); title != "" {
		track.Title = title
	}
	track.Duration = probeDuration(path)

	return track
}

// probeTitle reads the embedded title tag, if the container carries one.
func probeTitle(path string) string {
	file, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer file.Close()

	metadata, err := tag.ReadFrom(file)
	if err != nil || metadata == nil {
		return ""
	}
	return strings.TrimSpace(metadata.Title())
}

// probeDuration decodes just enough of the container header to learn
// the clip length. Unknown containers report zero.
func probeDuration(path string) time.Duration {
	file, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		d, err := wav.NewDecoder(file).Duration()
		if err != nil {
			return 0
		}
		return d
	case ".aiff":
		d, err := aiff.NewDecoder(file).Duration()
		if err != nil {
			return 0
		}
		return d
	default:
		return 0
	}
}
