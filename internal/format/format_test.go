package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSupported(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     bool
	}{
		{"wav", "song.wav", true},
		{"au", "song.au", true},
		{"aiff", "song.aiff", true},
		{"uppercase", "SONG.WAV", true},
		{"mixed case", "Song.AiFf", true},
		{"multiple dots", "my.favorite.song.wav", true},
		{"mp3", "song.mp3", false},
		{"aif variant", "song.aif", false},
		{"no extension", "song", false},
		{"dotfile", ".wav", false},
		{"hidden with extension", ".hidden.wav", true},
		{"trailing dot", "song.", false},
		{"empty", "", false},
		{"extension embedded in name", "wav.txt", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSupported(tt.filename))
		})
	}
}

func TestExtensions(t *testing.T) {
	exts := Extensions()
	assert.ElementsMatch(t, []string{".wav", ".au", ".aiff"}, exts)
	for _, ext := range exts {
		assert.True(t, IsSupported("x"+ext))
	}
}
