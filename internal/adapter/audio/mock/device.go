// Package mock provides an in-memory AudioDevice for tests and
// hardware-free runs. It simulates clip lifecycle without producing sound.
package mock

import (
	"log/slog"
	"sync"

	"github.com/wavedeck/wavedeck/internal/domain"
	"github.com/wavedeck/wavedeck/internal/ports"
)

// clipState tracks the simulated lifecycle of one opened clip.
type clipState int

const (
	clipOpened clipState = iota
	clipStreaming
	clipPaused
)

type clip struct {
	path     string
	state    clipState
	atStart  bool
	rewinds  int
	startups int
}

// Device is a mock implementation of the AudioDevice interface.
//
// Besides simulating the clip lifecycle it records per-path open and
// close counts so tests can assert resource accounting, and can be
// configured to fail Open or Start for error-path tests.
type Device struct {
	logger *slog.Logger

	mu       sync.Mutex
	shutdown bool
	clips    map[domain.ClipHandle]*clip
	next     domain.ClipHandle

	opens  map[string]int
	closes map[string]int

	failOpen  bool
	failStart bool
}

// NewDevice creates a new mock audio device.
func NewDevice() *Device {
	return &Device{
		clips:  make(map[domain.ClipHandle]*clip),
		next:   1,
		opens:  make(map[string]int),
		closes: make(map[string]int),
	}
}

// SetLogger sets the logger for this device.
func (d *Device) SetLogger(logger *slog.Logger) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.logger = logger
}

// SetFailOpen configures the device to fail Open calls.
func (d *Device) SetFailOpen(fail bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failOpen = fail
}

// SetFailStart configures the device to fail Start calls.
func (d *Device) SetFailStart(fail bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failStart = fail
}

// Open loads a simulated clip and returns its handle.
func (d *Device) Open(path string) (domain.ClipHandle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.shutdown {
		return domain.InvalidClipHandle, domain.ErrDeviceClosed
	}
	if d.failOpen {
		return domain.InvalidClipHandle, domain.NewDeviceError("open", path, domain.ErrUnsupportedFormat)
	}
	if path == "" {
		return domain.InvalidClipHandle, domain.NewDeviceError("open", path, domain.ErrUnsupportedFormat)
	}

	handle := d.next
	d.next++
	d.clips[handle] = &clip{path: path, state: clipOpened, atStart: true}
	d.opens[path]++

	return handle, nil
}

// Start begins or resumes streaming the clip.
func (d *Device) Start(handle domain.ClipHandle) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.shutdown {
		return domain.ErrDeviceClosed
	}
	if d.failStart {
		return domain.NewDeviceError("start", "", domain.ErrNoClipOpen)
	}

	c, ok := d.clips[handle]
	if !ok {
		return domain.ErrInvalidClipHandle
	}

	c.state = clipStreaming
	c.atStart = false
	c.startups++
	return nil
}

// Stop pauses the clip. Unknown handles are tolerated as no-ops,
// matching a clip that finished and released itself.
func (d *Device) Stop(handle domain.ClipHandle) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	c, ok := d.clips[handle]
	if !ok {
		return nil
	}
	if c.state == clipStreaming {
		c.state = clipPaused
	}
	return nil
}

// SeekToStart rewinds the clip.
func (d *Device) SeekToStart(handle domain.ClipHandle) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	c, ok := d.clips[handle]
	if !ok {
		return domain.ErrInvalidClipHandle
	}
	c.atStart = true
	c.rewinds++
	return nil
}

// Close releases the clip. Unknown or already-closed handles are no-ops.
func (d *Device) Close(handle domain.ClipHandle) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	c, ok := d.clips[handle]
	if !ok {
		return nil
	}
	d.closes[c.path]++
	delete(d.clips, handle)
	return nil
}

// Shutdown releases every open clip and refuses further use.
func (d *Device) Shutdown() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for handle, c := range d.clips {
		d.closes[c.path]++
		delete(d.clips, handle)
	}
	d.shutdown = true
	return nil
}

// Test inspection helpers.

// OpenClips returns the number of clips currently open.
func (d *Device) OpenClips() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.clips)
}

// OpenCount returns how many times the given path was opened.
func (d *Device) OpenCount(path string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.opens[path]
}

// CloseCount returns how many times a clip for the given path was closed.
func (d *Device) CloseCount(path string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closes[path]
}

// IsStreaming reports whether the clip is actively streaming.
func (d *Device) IsStreaming(handle domain.ClipHandle) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	c, ok := d.clips[handle]
	return ok && c.state == clipStreaming
}

// PathOf returns the path the handle was opened for, or "".
func (d *Device) PathOf(handle domain.ClipHandle) string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if c, ok := d.clips[handle]; ok {
		return c.path
	}
	return ""
}

// FinishNaturally simulates the hardware draining the clip on its own:
// the clip releases itself without the engine calling Close.
func (d *Device) FinishNaturally(handle domain.ClipHandle) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if c, ok := d.clips[handle]; ok {
		d.closes[c.path]++
		delete(d.clips, handle)
	}
}

// Verify that Device implements the AudioDevice interface
var _ ports.AudioDevice = (*Device)(nil)
