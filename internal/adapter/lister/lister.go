// Package lister provides the filesystem implementation of the
// FileLister port.
package lister

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/wavedeck/wavedeck/internal/domain"
	"github.com/wavedeck/wavedeck/internal/format"
	"github.com/wavedeck/wavedeck/internal/ports"
)

// Lister enumerates playable files in a directory.
//
// Listing is non-recursive: only the immediate children of the
// directory are considered, and only those with a supported audio
// extension. Entries come back in the name order the OS reports,
// which os.ReadDir guarantees to be sorted, so the playlist order is
// deterministic for a given directory.
type Lister struct {
	logger *slog.Logger
}

// NewLister creates a new filesystem lister.
func NewLister() *Lister {
	return &Lister{}
}

// SetLogger sets the logger for this lister.
func (l *Lister) SetLogger(logger *slog.Logger) {
	l.logger = logger
}

// ListAudioFiles returns the playable tracks directly inside dir.
// A missing or unreadable directory yields an empty slice and the
// error; the caller decides how to surface it.
func (l *Lister) ListAudioFiles(dir string) ([]domain.Track, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	tracks := make([]domain.Track, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !format.IsSupported(name) {
			continue
		}

		path := filepath.Join(dir, name)
		if abs, absErr := filepath.Abs(path); absErr == nil {
			path = abs
		}

		tracks = append(tracks, l.probe(path))
	}

	if l.logger != nil {
		l.logger.Debug("listed directory",
			slog.String("dir", dir),
			slog.Int("entries", len(entries)),
			slog.Int("tracks", len(tracks)))
	}
	return tracks, nil
}

// Verify that Lister implements the FileLister interface
var _ ports.FileLister = (*Lister)(nil)
