// Package domain contains core playback models with no external dependencies.
package domain

import (
	"time"
)

// Track is one playable audio file in the playlist.
// Identity is the file path; Title and Duration are presentation
// extras filled in by the file lister when the container carries them.
type Track struct {
	// Path is the absolute path to the audio file.
	Path string

	// Title is the display name (tag title or filename stem).
	Title string

	// Duration is the total track length, zero if unknown.
	Duration time.Duration
}

// ClipHandle is an opaque reference to a clip opened on the audio device.
type ClipHandle int64

const (
	// InvalidClipHandle marks the absence of an open clip.
	InvalidClipHandle ClipHandle = 0
)

// PlayerState is a read-only snapshot of the playback engine state.
// Front ends render from snapshots and never mutate them; every
// snapshot reflects a fully completed transition.
type PlayerState struct {
	// Tracks is the current playlist in directory listing order.
	Tracks []Track

	// CurrentIndex is the playlist cursor. It is only meaningful
	// while Tracks is non-empty, in which case it is always in
	// [0, len(Tracks)).
	CurrentIndex int

	// IsPlaying is true iff a clip is open and actively streaming.
	IsPlaying bool

	// CurrentSong is the display name of the track at the cursor,
	// empty when nothing has been opened yet.
	CurrentSong string

	// Status is a human-readable summary of the last transition.
	Status string
}

// Current returns the track under the cursor and true, or a zero
// Track and false when the playlist is empty.
func (s PlayerState) Current() (Track, bool) {
	if len(s.Tracks) == 0 || s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Tracks) {
		return Track{}, false
	}
	return s.Tracks[s.CurrentIndex], true
}
