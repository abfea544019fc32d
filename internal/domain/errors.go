// Package domain defines domain-specific errors.
// Nothing here is fatal: every failure degrades to an unchanged
// playback state plus a status message, recoverable at the next command.
package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrPlaylistEmpty is returned when a transition requires a non-empty playlist.
	ErrPlaylistEmpty = errors.New("playlist is empty")

	// ErrIndexOutOfRange is returned by PlayAt with an index outside the playlist.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrUnknownCommand is returned when a front end submits a command
	// value outside the fixed set.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrUnsupportedFormat is returned when a file's container format
	// cannot be decoded by the audio device.
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrInvalidClipHandle is returned when a device call references a
	// handle that was never opened.
	ErrInvalidClipHandle = errors.New("invalid clip handle")

	// ErrDeviceClosed is returned when the audio device has been shut down.
	ErrDeviceClosed = errors.New("audio device closed")

	// ErrNoClipOpen is returned when playback is attempted with no clip open.
	ErrNoClipOpen = errors.New("no clip open")
)

// DeviceError wraps a failure from the audio device with the operation
// and file it concerns.
type DeviceError struct {
	Op   string // operation that failed ("open", "start", "seek", ...)
	Path string // file path, if applicable
	Err  error
}

// Error implements the error interface.
func (e *DeviceError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("audio device %s failed for %q: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("audio device %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *DeviceError) Unwrap() error {
	return e.Err
}

// NewDeviceError creates a new DeviceError.
func NewDeviceError(op, path string, err error) *DeviceError {
	return &DeviceError{Op: op, Path: path, Err: err}
}
