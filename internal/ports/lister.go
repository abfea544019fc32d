package ports

import (
	"github.com/wavedeck/wavedeck/internal/domain"
)

// FileLister enumerates the playable audio files in a directory.
//
// Listing is non-recursive (immediate children only) and filtered by
// the supported container extensions. A missing or unreadable
// directory yields an empty slice together with the error; callers
// treat that as "no files found" rather than a fatal condition.
type FileLister interface {
	ListAudioFiles(dir string) ([]domain.Track, error)
}
