// Package ports defines interfaces for dependency inversion.
// The playback engine depends only on these; adapters provide them.
package ports

import (
	"github.com/wavedeck/wavedeck/internal/domain"
)

// AudioDevice is the capability boundary around platform audio output.
// The engine never touches hardware directly; it drives one of these.
//
// Lifecycle of a clip: Open acquires the resource, Start begins or
// resumes streaming, Stop pauses with the position retained, and Close
// fully releases it. Close and Stop must tolerate handles that were
// never opened, already closed, or have finished playing on their own:
// those calls are no-ops, not errors.
//
// Implementations must be thread-safe.
type AudioDevice interface {
	// Open loads an audio file and returns a handle to the clip.
	// Format and container negotiation happens here; an unreadable
	// file, unsupported encoding, or busy device yields an error.
	Open(path string) (domain.ClipHandle, error)

	// Start begins or resumes streaming the clip.
	Start(handle domain.ClipHandle) error

	// Stop pauses streaming. The playback position is retained and
	// streaming can resume with Start. Stopping an unknown or
	// finished clip is a no-op.
	Stop(handle domain.ClipHandle) error

	// SeekToStart rewinds the clip to its beginning.
	SeekToStart(handle domain.ClipHandle) error

	// Close releases the clip resource. Closing an unknown or
	// already-closed handle is a no-op.
	Close(handle domain.ClipHandle) error

	// Shutdown releases the device and every clip still open.
	Shutdown() error
}
