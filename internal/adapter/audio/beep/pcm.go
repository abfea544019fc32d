package beep

import (
	"fmt"
	"os"

	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"
	beepv2 "github.com/gopxl/beep/v2"

	"github.com/wavedeck/wavedeck/internal/domain"
)

// decodeAIFF loads the whole AIFF file into memory and exposes it as a
// seekable stream. AIFF files on a local disk are short enough that
// full decode keeps the device simple and seeking exact.
func decodeAIFF(path string) (*clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domain.NewDeviceError("open", path, err)
	}
	defer f.Close()

	buf, err := aiff.NewDecoder(f).FullPCMBuffer()
	if err != nil {
		return nil, domain.NewDeviceError("open", path, err)
	}
	if buf.Format == nil || buf.Format.NumChannels < 1 || buf.Format.SampleRate < 1 {
		return nil, domain.NewDeviceError("open", path, fmt.Errorf("aiff: malformed format chunk"))
	}

	streamer, err := newPCMStreamer(buf)
	if err != nil {
		return nil, domain.NewDeviceError("open", path, err)
	}

	format := beepv2.Format{
		SampleRate:  beepv2.SampleRate(buf.Format.SampleRate),
		NumChannels: buf.Format.NumChannels,
		Precision:   streamer.bitDepth / 8,
	}

	return &clip{
		path:     path,
		streamer: streamer,
		closer:   func() error { return nil },
		format:   format,
	}, nil
}

// pcmStreamer plays a decoded integer PCM buffer as normalized
// float64 samples. It implements beep.StreamSeeker over in-memory
// data, so Close is a no-op handled by the clip.
type pcmStreamer struct {
	data     []int
	channels int
	bitDepth int
	scale    float64
	pos      int // frame cursor
}

func newPCMStreamer(buf *audio.IntBuffer) (*pcmStreamer, error) {
	bitDepth := buf.SourceBitDepth
	if bitDepth <= 0 || bitDepth > 32 {
		bitDepth = 16
	}
	channels := buf.Format.NumChannels
	if len(buf.Data)%channels != 0 {
		return nil, fmt.Errorf("aiff: %d samples do not divide into %d channels", len(buf.Data), channels)
	}

	return &pcmStreamer{
		data:     buf.Data,
		channels: channels,
		bitDepth: bitDepth,
		scale:    float64(int64(1) << (bitDepth - 1)),
	}, nil
}

func (s *pcmStreamer) Stream(samples [][2]float64) (int, bool) {
	if s.pos >= s.Len() {
		return 0, false
	}

	n := 0
	for n < len(samples) && s.pos < s.Len() {
		base := s.pos * s.channels
		left := float64(s.data[base]) / s.scale
		right := left
		if s.channels > 1 {
			right = float64(s.data[base+1]) / s.scale
		}
		samples[n][0] = left
		samples[n][1] = right
		n++
		s.pos++
	}
	return n, true
}

func (s *pcmStreamer) Err() error { return nil }

func (s *pcmStreamer) Len() int { return len(s.data) / s.channels }

func (s *pcmStreamer) Position() int { return s.pos }

func (s *pcmStreamer) Seek(p int) error {
	if p < 0 || p > s.Len() {
		return fmt.Errorf("aiff: seek position %d out of range [0, %d]", p, s.Len())
	}
	s.pos = p
	return nil
}

var _ beepv2.StreamSeeker = (*pcmStreamer)(nil)
