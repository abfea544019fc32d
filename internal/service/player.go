// Package service contains the playback engine.
//
// The Player owns the single mutable playlist record. Every transition
// is applied under one mutex held for the full duration of the
// transition, so no two commands ever interleave their reads and
// writes of the state, and the "close the previous clip before opening
// the next" discipline holds even when front ends race.
package service

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/wavedeck/wavedeck/internal/domain"
	"github.com/wavedeck/wavedeck/internal/ports"
)

// Player is the playback state machine shared by all front ends.
//
// It holds at most one open device clip at any time: transitions that
// open a new clip always close the previous one first. Failures from
// the device or the lister never propagate as fatal errors; they
// degrade to an unchanged playback state plus a status message, and
// the same error is returned so front ends can report it.
type Player struct {
	logger *slog.Logger
	device ports.AudioDevice
	lister ports.FileLister
	bus    ports.EventBus

	mu           sync.Mutex
	tracks       []domain.Track
	currentIndex int
	isPlaying    bool
	handle       domain.ClipHandle
	currentSong  string
	status       string
}

// NewPlayer creates the playback engine with its collaborators injected.
func NewPlayer(
	logger *slog.Logger,
	device ports.AudioDevice,
	lister ports.FileLister,
	bus ports.EventBus,
) *Player {
	return &Player{
		logger: logger,
		device: device,
		lister: lister,
		bus:    bus,
		handle: domain.InvalidClipHandle,
		status: "no playlist loaded",
	}
}

// Apply dispatches one command to its transition. The command set is
// closed; anything outside it is rejected with ErrUnknownCommand and
// leaves the state untouched.
func (p *Player) Apply(cmd domain.Command) error {
	switch c := cmd.(type) {
	case domain.LoadDirectory:
		return p.LoadDirectory(c.Path)
	case domain.PlayPause:
		return p.PlayPause()
	case domain.Stop:
		return p.Stop()
	case domain.Next:
		return p.Next()
	case domain.Previous:
		return p.Previous()
	case domain.PlayAt:
		return p.PlayAt(c.Index)
	default:
		p.mu.Lock()
		defer p.mu.Unlock()
		p.status = "unknown command"
		p.logger.Warn("rejected command", slog.Any("command", cmd))
		p.bus.Publish(domain.NewPlaybackErrorEvent("apply", "", domain.ErrUnknownCommand))
		p.publishState()
		return domain.ErrUnknownCommand
	}
}

// LoadDirectory replaces the playlist wholesale with the audio files in
// dir and resets the cursor. It deliberately does not close an open
// clip: loading a new playlist while a track plays leaves that track
// playing until the next transition claims the device.
func (p *Player) LoadDirectory(dir string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	tracks, err := p.lister.ListAudioFiles(dir)

	p.tracks = tracks
	p.currentIndex = 0
	p.isPlaying = false

	if err != nil {
		p.logger.Warn("directory listing failed", slog.String("dir", dir), slog.Any("error", err))
		p.status = "no files found"
		p.bus.Publish(domain.NewPlaybackErrorEvent("load", dir, err))
		p.publishState()
		return nil
	}

	if len(tracks) == 0 {
		p.status = "no files found"
	} else {
		p.status = fmt.Sprintf("Loaded %d tracks from %s", len(tracks), dir)
	}

	p.logger.Info("playlist loaded", slog.String("dir", dir), slog.Int("tracks", len(tracks)))
	p.publishState()
	return nil
}

// PlayPause toggles playback. With a clip streaming it pauses (the clip
// stays open); with a paused clip it resumes; with nothing open it
// opens the track under the cursor and starts from the beginning.
func (p *Player) PlayPause() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.tracks) == 0 {
		p.status = "please load a playlist first"
		p.publishState()
		return domain.ErrPlaylistEmpty
	}

	if p.isPlaying {
		if err := p.device.Stop(p.handle); err != nil {
			p.logger.Warn("pause failed", slog.Any("error", err))
		}
		p.isPlaying = false
		p.status = "Paused"
		p.publishState()
		return nil
	}

	if p.handle != domain.InvalidClipHandle {
		if err := p.device.Start(p.handle); err != nil {
			p.status = fmt.Sprintf("cannot resume %s: %v", p.currentSong, err)
			p.bus.Publish(domain.NewPlaybackErrorEvent("start", "", err))
			p.publishState()
			return err
		}
		p.isPlaying = true
		p.status = p.playingStatus()
		p.publishState()
		return nil
	}

	return p.openAndPlay(p.currentIndex, false)
}

// Stop halts playback and fully releases the clip, unlike PlayPause
// which only pauses. Stopping with nothing open is a no-op that still
// refreshes the status.
func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.releaseClip()
	p.isPlaying = false
	p.status = "Stopped"
	p.publishState()
	return nil
}

// Next advances the cursor by one, wrapping past the end of the playlist.
func (p *Player) Next() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.tracks) == 0 {
		p.status = "please load a playlist first"
		p.publishState()
		return domain.ErrPlaylistEmpty
	}

	return p.openAndPlay((p.currentIndex+1)%len(p.tracks), true)
}

// Previous moves the cursor back by one, wrapping past the start.
func (p *Player) Previous() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.tracks) == 0 {
		p.status = "please load a playlist first"
		p.publishState()
		return domain.ErrPlaylistEmpty
	}

	n := len(p.tracks)
	return p.openAndPlay((p.currentIndex-1+n)%n, true)
}

// PlayAt jumps directly to the track at index, the transition behind
// selecting a playlist row. Out-of-range indexes change nothing.
func (p *Player) PlayAt(index int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.tracks) == 0 {
		p.status = "please load a playlist first"
		p.publishState()
		return domain.ErrPlaylistEmpty
	}

	if index < 0 || index >= len(p.tracks) {
		p.status = "index out of range"
		p.bus.Publish(domain.NewPlaybackErrorEvent("play-at", "", domain.ErrIndexOutOfRange))
		p.publishState()
		return domain.ErrIndexOutOfRange
	}

	return p.openAndPlay(index, true)
}

// Snapshot returns a copy of the current state. The copy always
// reflects a fully completed transition.
func (p *Player) Snapshot() domain.PlayerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot()
}

// Shutdown force-closes any open clip. Called once at process exit.
func (p *Player) Shutdown() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.releaseClip()
	p.isPlaying = false
	p.logger.Info("player shut down")
	return nil
}

// openAndPlay closes whatever clip is open when replace is set, then
// opens the track at index, rewinds it and starts streaming. On open
// or start failure the cursor is left where it was and only the status
// text changes. Caller must hold p.mu.
func (p *Player) openAndPlay(index int, replace bool) error {
	if replace {
		p.releaseClip()
		p.isPlaying = false
	}

	track := p.tracks[index]
	name := displayName(track)

	handle, err := p.device.Open(track.Path)
	if err != nil {
		p.logger.Warn("open failed", slog.String("path", track.Path), slog.Any("error", err))
		p.status = fmt.Sprintf("cannot open %s: %v", name, err)
		p.bus.Publish(domain.NewPlaybackErrorEvent("open", track.Path, err))
		p.publishState()
		return err
	}

	if err := p.device.SeekToStart(handle); err != nil {
		p.logger.Warn("rewind failed", slog.String("path", track.Path), slog.Any("error", err))
	}

	if err := p.device.Start(handle); err != nil {
		_ = p.device.Close(handle)
		p.status = fmt.Sprintf("cannot open %s: %v", name, err)
		p.bus.Publish(domain.NewPlaybackErrorEvent("start", track.Path, err))
		p.publishState()
		return err
	}

	p.handle = handle
	p.currentIndex = index
	p.isPlaying = true
	p.currentSong = name
	p.status = p.playingStatus()

	p.logger.Info("playing",
		slog.String("track", name),
		slog.Int("index", index),
		slog.Int("of", len(p.tracks)))
	p.publishState()
	return nil
}

// releaseClip stops and closes the open clip if there is one.
// Both device calls tolerate clips that already finished on their own.
// Caller must hold p.mu.
func (p *Player) releaseClip() {
	if p.handle == domain.InvalidClipHandle {
		return
	}
	if err := p.device.Stop(p.handle); err != nil {
		p.logger.Warn("stop failed", slog.Any("error", err))
	}
	if err := p.device.Close(p.handle); err != nil {
		p.logger.Warn("close failed", slog.Any("error", err))
	}
	p.handle = domain.InvalidClipHandle
}

func (p *Player) playingStatus() string {
	return fmt.Sprintf("Playing: %s (%d/%d)", p.currentSong, p.currentIndex+1, len(p.tracks))
}

func (p *Player) snapshot() domain.PlayerState {
	tracks := make([]domain.Track, len(p.tracks))
	copy(tracks, p.tracks)
	return domain.PlayerState{
		Tracks:       tracks,
		CurrentIndex: p.currentIndex,
		IsPlaying:    p.isPlaying,
		CurrentSong:  p.currentSong,
		Status:       p.status,
	}
}

func (p *Player) publishState() {
	p.bus.Publish(domain.NewStateChangedEvent(p.snapshot()))
}

func displayName(track domain.Track) string {
	if track.Title != "" {
		return track.Title
	}
	return filepath.Base(track.Path)
}
