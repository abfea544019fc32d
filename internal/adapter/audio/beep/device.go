// Package beep implements the AudioDevice port on the beep mixer and
// its speaker backend. It decodes WAV natively and AIFF through a PCM
// bridge; AU files are recognized by the playlist but the device
// cannot decode their encoding yet, so opening one fails cleanly.
package beep

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	beepv2 "github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
	beepwav "github.com/gopxl/beep/v2/wav"

	"github.com/wavedeck/wavedeck/internal/domain"
	"github.com/wavedeck/wavedeck/internal/ports"
)

const resampleQuality = 4

// clip is one opened stream registered with the speaker.
type clip struct {
	path     string
	streamer beepv2.StreamSeeker
	closer   func() error
	format   beepv2.Format

	// ctrl exists once the clip has been handed to the speaker.
	// Pausing toggles ctrl.Paused; closing detaches ctrl.Streamer so
	// the mixer drops the clip on its next pull.
	ctrl *beepv2.Ctrl
}

// Device drives the platform audio output through the beep speaker.
//
// The speaker is initialized lazily on the first Open, at that clip's
// sample rate; clips at other rates are resampled. Stop and Close
// tolerate handles that already drained, matching the engine's
// stop-then-close discipline.
type Device struct {
	logger *slog.Logger

	mu          sync.Mutex
	shutdown    bool
	clips       map[domain.ClipHandle]*clip
	next        domain.ClipHandle
	speakerRate beepv2.SampleRate
}

// NewDevice creates the beep-backed audio device.
func NewDevice() *Device {
	return &Device{
		clips: make(map[domain.ClipHandle]*clip),
		next:  1,
	}
}

// SetLogger sets the logger for this device.
func (d *Device) SetLogger(logger *slog.Logger) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.logger = logger
}

// Open decodes the file at path and returns a handle to the prepared
// clip. The clip does not produce sound until Start.
func (d *Device) Open(path string) (domain.ClipHandle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.shutdown {
		return domain.InvalidClipHandle, domain.ErrDeviceClosed
	}

	c, err := decode(path)
	if err != nil {
		return domain.InvalidClipHandle, err
	}

	if d.speakerRate == 0 {
		if err := speaker.Init(c.format.SampleRate, c.format.SampleRate.N(time.Second/10)); err != nil {
			_ = c.closer()
			return domain.InvalidClipHandle, domain.NewDeviceError("open", path, err)
		}
		d.speakerRate = c.format.SampleRate
	}

	handle := d.next
	d.next++
	d.clips[handle] = c

	if d.logger != nil {
		d.logger.Debug("clip opened",
			slog.String("path", path),
			slog.Int("sample_rate", int(c.format.SampleRate)))
	}
	return handle, nil
}

// Start begins streaming a fresh clip, or resumes a paused one at its
// retained position.
func (d *Device) Start(handle domain.ClipHandle) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.shutdown {
		return domain.ErrDeviceClosed
	}
	c, ok := d.clips[handle]
	if !ok {
		return domain.ErrInvalidClipHandle
	}

	if c.ctrl != nil {
		speaker.Lock()
		c.ctrl.Paused = false
		speaker.Unlock()
		return nil
	}

	var stream beepv2.Streamer = c.streamer
	if c.format.SampleRate != d.speakerRate {
		stream = beepv2.Resample(resampleQuality, c.format.SampleRate, d.speakerRate, stream)
	}

	c.ctrl = &beepv2.Ctrl{Streamer: stream}
	speaker.Play(c.ctrl)
	return nil
}

// Stop pauses the clip, keeping its position. Handles the mixer
// already drained are tolerated as no-ops.
func (d *Device) Stop(handle domain.ClipHandle) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	c, ok := d.clips[handle]
	if !ok || c.ctrl == nil {
		return nil
	}

	speaker.Lock()
	c.ctrl.Paused = true
	speaker.Unlock()
	return nil
}

// SeekToStart rewinds the clip to its first frame.
func (d *Device) SeekToStart(handle domain.ClipHandle) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	c, ok := d.clips[handle]
	if !ok {
		return domain.ErrInvalidClipHandle
	}

	speaker.Lock()
	err := c.streamer.Seek(0)
	speaker.Unlock()
	if err != nil {
		return domain.NewDeviceError("seek", c.path, err)
	}
	return nil
}

// Close detaches the clip from the mixer and releases its resources.
// Unknown or already-closed handles are no-ops.
func (d *Device) Close(handle domain.ClipHandle) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	c, ok := d.clips[handle]
	if !ok {
		return nil
	}
	d.release(c)
	delete(d.clips, handle)
	return nil
}

// Shutdown releases every open clip and refuses further use.
func (d *Device) Shutdown() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for handle, c := range d.clips {
		d.release(c)
		delete(d.clips, handle)
	}
	if d.speakerRate != 0 {
		speaker.Clear()
	}
	d.shutdown = true

	if d.logger != nil {
		d.logger.Info("audio device shut down")
	}
	return nil
}

// release detaches the clip from the speaker and closes its source.
// Caller must hold d.mu.
func (d *Device) release(c *clip) {
	if c.ctrl != nil {
		speaker.Lock()
		c.ctrl.Streamer = nil
		speaker.Unlock()
		c.ctrl = nil
	}
	if err := c.closer(); err != nil && d.logger != nil {
		d.logger.Warn("clip close failed", slog.String("path", c.path), slog.Any("error", err))
	}
}

// decode opens path with the decoder for its container.
func decode(path string) (*clip, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return decodeWAV(path)
	case ".aiff":
		return decodeAIFF(path)
	default:
		return nil, domain.NewDeviceError("open", path, domain.ErrUnsupportedFormat)
	}
}

func decodeWAV(path string) (*clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domain.NewDeviceError("open", path, err)
	}

	streamer, format, err := beepwav.Decode(f)
	if err != nil {
		_ = f.Close()
		return nil, domain.NewDeviceError("open", path, err)
	}

	return &clip{
		path:     path,
		streamer: streamer,
		closer: func() error {
			err := streamer.Close()
			_ = f.Close()
			return err
		},
		format: format,
	}, nil
}

// Verify that Device implements the AudioDevice interface
var _ ports.AudioDevice = (*Device)(nil)
