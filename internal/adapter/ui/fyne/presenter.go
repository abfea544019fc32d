// Package fyne is the windowed front end. It renders engine state
// snapshots and forwards user interactions to the playback engine;
// all playback decisions stay in the engine.
package fyne

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/wavedeck/wavedeck/internal/domain"
	"github.com/wavedeck/wavedeck/internal/ports"
	"github.com/wavedeck/wavedeck/internal/service"
)

// UIView is what the presenter needs from the window. MainWindow
// implements it; tests can substitute a recording fake.
type UIView interface {
	SetPlayState(playing bool)
	SetStatus(text string)
	SetNowPlaying(name string)
	SetPlaylist(items []string)
	SelectTrack(index int)
	ShowNotification(title, message string)
}

// Presenter connects the engine to the view. It subscribes to state
// and error events and re-renders from the snapshot each event
// carries; it never keeps playback state of its own.
type Presenter struct {
	logger *slog.Logger
	player *service.Player
	bus    ports.EventBus
	view   UIView

	subscriptions []domain.SubscriptionID
	shutdownOnce  sync.Once
}

// NewPresenter creates the presenter and brings the view in sync with
// the current engine state.
func NewPresenter(
	logger *slog.Logger,
	player *service.Player,
	bus ports.EventBus,
	view UIView,
) *Presenter {
	p := &Presenter{
		logger: logger,
		player: player,
		bus:    bus,
		view:   view,
	}

	p.subscriptions = append(p.subscriptions,
		bus.Subscribe(domain.EventStateChanged, p.onStateChanged),
		bus.Subscribe(domain.EventPlaybackError, p.onPlaybackError),
	)

	p.render(player.Snapshot())
	return p
}

// onStateChanged re-renders the view from the snapshot in the event.
func (p *Presenter) onStateChanged(e domain.Event) {
	event, ok := e.(domain.StateChangedEvent)
	if !ok {
		return
	}
	p.render(event.State)
}

// onPlaybackError surfaces device failures as a notification. The
// status label already carries the message via the state event.
func (p *Presenter) onPlaybackError(e domain.Event) {
	event, ok := e.(domain.PlaybackErrorEvent)
	if !ok {
		return
	}

	p.logger.Warn("playback error",
		slog.String("op", event.Op),
		slog.String("path", event.Path),
		slog.Any("error", event.Err))

	if event.Path != "" {
		p.view.ShowNotification("Playback error", filepath.Base(event.Path)+": "+event.Err.Error())
	}
}

// render pushes one snapshot into the view.
func (p *Presenter) render(state domain.PlayerState) {
	p.view.SetPlayState(state.IsPlaying)
	p.view.SetStatus(state.Status)
	p.view.SetNowPlaying(state.CurrentSong)

	items := make([]string, len(state.Tracks))
	for i, track := range state.Tracks {
		name := track.Title
		if name == "" {
			name = filepath.Base(track.Path)
		}
		items[i] = name
	}
	p.view.SetPlaylist(items)

	if len(state.Tracks) > 0 {
		p.view.SelectTrack(state.CurrentIndex)
	}
}

// UI event handlers. Engine errors are deliberately dropped here: the
// engine reflects every failure in the status text, which the state
// event has already pushed to the view by the time Apply returns.

// OnPlayClicked toggles play/pause.
func (p *Presenter) OnPlayClicked() {
	_ = p.player.PlayPause()
}

// OnStopClicked stops playback.
func (p *Presenter) OnStopClicked() {
	_ = p.player.Stop()
}

// OnNextClicked skips to the next track.
func (p *Presenter) OnNextClicked() {
	_ = p.player.Next()
}

// OnPreviousClicked skips to the previous track.
func (p *Presenter) OnPreviousClicked() {
	_ = p.player.Previous()
}

// OnTrackSelected plays the playlist row the user activated.
func (p *Presenter) OnTrackSelected(index int) {
	_ = p.player.PlayAt(index)
}

// OnFolderOpened loads a new playlist from the chosen directory.
func (p *Presenter) OnFolderOpened(path string) {
	_ = p.player.LoadDirectory(path)
}

// Shutdown detaches the presenter from the event bus.
func (p *Presenter) Shutdown() {
	p.shutdownOnce.Do(func() {
		for _, id := range p.subscriptions {
			p.bus.Unsubscribe(id)
		}
	})
}
