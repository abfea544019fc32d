package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/wavedeck/wavedeck/internal/adapter/audio/mock"
	"github.com/wavedeck/wavedeck/internal/adapter/eventbus"
	"github.com/wavedeck/wavedeck/internal/domain"
	"github.com/wavedeck/wavedeck/internal/logger"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// stubLister serves a canned track list or a canned error.
type stubLister struct {
	tracks []domain.Track
	err    error
	calls  int
}

func (l *stubLister) ListAudioFiles(dir string) ([]domain.Track, error) {
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	return l.tracks, nil
}

func tracksFor(paths ...string) []domain.Track {
	tracks := make([]domain.Track, 0, len(paths))
	for _, p := range paths {
		tracks = append(tracks, domain.Track{Path: p})
	}
	return tracks
}

func newTestPlayer(lister *stubLister) (*Player, *mock.Device, *eventbus.SyncEventBus) {
	device := mock.NewDevice()
	bus := eventbus.NewSyncEventBus()
	player := NewPlayer(logger.NewTestLogger(), device, lister, bus)
	return player, device, bus
}

func loadedPlayer(t *testing.T, paths ...string) (*Player, *mock.Device) {
	t.Helper()
	player, device, _ := newTestPlayer(&stubLister{tracks: tracksFor(paths...)})
	require.NoError(t, player.LoadDirectory("/music"))
	return player, device
}

func TestPlayer_LoadDirectory(t *testing.T) {
	player, _ := loadedPlayer(t, "/music/a.wav", "/music/b.au", "/music/c.aiff")

	state := player.Snapshot()
	assert.Len(t, state.Tracks, 3)
	assert.Equal(t, 0, state.CurrentIndex)
	assert.False(t, state.IsPlaying)
	assert.Equal(t, "Loaded 3 tracks from /music", state.Status)
}

func TestPlayer_LoadDirectory_Empty(t *testing.T) {
	player, _, _ := newTestPlayer(&stubLister{})

	require.NoError(t, player.LoadDirectory("/empty"))

	state := player.Snapshot()
	assert.Empty(t, state.Tracks)
	assert.Equal(t, "no files found", state.Status)
}

func TestPlayer_LoadDirectory_ListerError(t *testing.T) {
	lister := &stubLister{err: errors.New("permission denied")}
	player, _, bus := newTestPlayer(lister)

	var errEvent domain.PlaybackErrorEvent
	bus.Subscribe(domain.EventPlaybackError, func(e domain.Event) {
		errEvent = e.(domain.PlaybackErrorEvent)
	})

	// A bad directory degrades to "no files found", never a failure.
	require.NoError(t, player.LoadDirectory("/missing"))

	state := player.Snapshot()
	assert.Empty(t, state.Tracks)
	assert.Equal(t, "no files found", state.Status)
	assert.Equal(t, "load", errEvent.Op)
}

func TestPlayer_LoadDirectory_DoesNotClosePlayingClip(t *testing.T) {
	lister := &stubLister{tracks: tracksFor("/music/a.wav")}
	player, device, _ := newTestPlayer(lister)

	require.NoError(t, player.LoadDirectory("/music"))
	require.NoError(t, player.PlayPause())
	require.Equal(t, 1, device.OpenClips())

	// Reload with an empty directory while a.wav streams.
	lister.tracks = nil
	require.NoError(t, player.LoadDirectory("/other"))

	state := player.Snapshot()
	assert.Empty(t, state.Tracks)
	assert.Equal(t, "no files found", state.Status)
	assert.False(t, state.IsPlaying)

	// The clip is still open; only Stop/Next/Previous/PlayAt claim it.
	assert.Equal(t, 1, device.OpenClips())
	assert.Equal(t, 0, device.CloseCount("/music/a.wav"))
}

func TestPlayer_PlayPause_EmptyPlaylist(t *testing.T) {
	player, device, _ := newTestPlayer(&stubLister{})

	err := player.PlayPause()
	assert.ErrorIs(t, err, domain.ErrPlaylistEmpty)

	state := player.Snapshot()
	assert.Equal(t, "please load a playlist first", state.Status)
	assert.False(t, state.IsPlaying)
	assert.Equal(t, 0, device.OpenClips())
}

func TestPlayer_PlayPause_OpensCurrentTrack(t *testing.T) {
	player, device := loadedPlayer(t, "/music/a.wav", "/music/b.au")

	require.NoError(t, player.PlayPause())

	state := player.Snapshot()
	assert.True(t, state.IsPlaying)
	assert.Equal(t, 0, state.CurrentIndex)
	assert.Equal(t, "a.wav", state.CurrentSong)
	assert.Equal(t, "Playing: a.wav (1/2)", state.Status)
	assert.Equal(t, 1, device.OpenCount("/music/a.wav"))
}

func TestPlayer_PlayPause_TogglesWithoutMovingCursor(t *testing.T) {
	player, device := loadedPlayer(t, "/music/a.wav", "/music/b.au")

	require.NoError(t, player.PlayPause())
	before := player.Snapshot()

	// Pause: the clip stays open, only streaming stops.
	require.NoError(t, player.PlayPause())
	paused := player.Snapshot()
	assert.False(t, paused.IsPlaying)
	assert.Equal(t, before.CurrentIndex, paused.CurrentIndex)
	assert.Equal(t, before.CurrentSong, paused.CurrentSong)
	assert.Equal(t, "Paused", paused.Status)
	assert.Equal(t, 1, device.OpenClips())
	assert.Equal(t, 0, device.CloseCount("/music/a.wav"))

	// Resume: same clip, same position, no reopen.
	require.NoError(t, player.PlayPause())
	resumed := player.Snapshot()
	assert.True(t, resumed.IsPlaying)
	assert.Equal(t, before.CurrentIndex, resumed.CurrentIndex)
	assert.Equal(t, 1, device.OpenCount("/music/a.wav"))
}

func TestPlayer_PlayPause_OpenFailureLeavesStateUnchanged(t *testing.T) {
	player, device := loadedPlayer(t, "/music/a.wav")
	device.SetFailOpen(true)

	err := player.PlayPause()
	assert.Error(t, err)

	state := player.Snapshot()
	assert.False(t, state.IsPlaying)
	assert.Equal(t, 0, state.CurrentIndex)
	assert.Contains(t, state.Status, "cannot open a.wav")
	assert.Equal(t, 0, device.OpenClips())
}

func TestPlayer_Stop_Idempotent(t *testing.T) {
	player, device := loadedPlayer(t, "/music/a.wav")

	require.NoError(t, player.PlayPause())
	require.NoError(t, player.Stop())

	once := player.Snapshot()
	assert.False(t, once.IsPlaying)
	assert.Equal(t, "Stopped", once.Status)
	assert.Equal(t, 0, device.OpenClips())
	assert.Equal(t, 1, device.CloseCount("/music/a.wav"))

	// A second Stop changes nothing and closes nothing.
	require.NoError(t, player.Stop())
	twice := player.Snapshot()
	assert.Equal(t, once, twice)
	assert.Equal(t, 1, device.CloseCount("/music/a.wav"))
}

func TestPlayer_Stop_WithNothingOpenStillSetsStatus(t *testing.T) {
	player, _ := loadedPlayer(t, "/music/a.wav")

	require.NoError(t, player.Stop())
	assert.Equal(t, "Stopped", player.Snapshot().Status)
}

func TestPlayer_NextPrevious_RoundTrip(t *testing.T) {
	for _, start := range []int{0, 1, 2} {
		player, _ := loadedPlayer(t, "/music/a.wav", "/music/b.au", "/music/c.aiff")
		require.NoError(t, player.PlayAt(start))

		require.NoError(t, player.Next())
		require.NoError(t, player.Previous())
		assert.Equal(t, start, player.Snapshot().CurrentIndex)

		require.NoError(t, player.Previous())
		require.NoError(t, player.Next())
		assert.Equal(t, start, player.Snapshot().CurrentIndex)
	}
}

func TestPlayer_Next_NTimesReturnsToStart(t *testing.T) {
	paths := []string{"/music/a.wav", "/music/b.au", "/music/c.aiff", "/music/d.wav"}
	player, _ := loadedPlayer(t, paths...)

	for i := 0; i < len(paths); i++ {
		require.NoError(t, player.Next())
	}
	assert.Equal(t, 0, player.Snapshot().CurrentIndex)
}

func TestPlayer_Next_WrapScenario(t *testing.T) {
	player, device := loadedPlayer(t, "/music/a.wav", "/music/b.au", "/music/c.aiff")
	require.NoError(t, player.PlayPause()) // opens a.wav at index 0

	require.NoError(t, player.Next())
	state := player.Snapshot()
	assert.Equal(t, 1, state.CurrentIndex)
	assert.Equal(t, 1, device.OpenCount("/music/b.au"))
	assert.Equal(t, 1, device.CloseCount("/music/a.wav"))

	require.NoError(t, player.Next())
	assert.Equal(t, 2, player.Snapshot().CurrentIndex)

	require.NoError(t, player.Next())
	state = player.Snapshot()
	assert.Equal(t, 0, state.CurrentIndex)
	assert.True(t, state.IsPlaying)

	// a.wav was reopened, and every replaced clip was closed exactly once.
	assert.Equal(t, 2, device.OpenCount("/music/a.wav"))
	assert.Equal(t, 1, device.CloseCount("/music/a.wav"))
	assert.Equal(t, 1, device.CloseCount("/music/b.au"))
	assert.Equal(t, 1, device.CloseCount("/music/c.aiff"))
	assert.Equal(t, 1, device.OpenClips())
}

func TestPlayer_Previous_WrapsFromStart(t *testing.T) {
	player, device := loadedPlayer(t, "/music/a.wav", "/music/b.au", "/music/c.aiff")

	require.NoError(t, player.Previous())
	state := player.Snapshot()
	assert.Equal(t, 2, state.CurrentIndex)
	assert.True(t, state.IsPlaying)
	assert.Equal(t, 1, device.OpenCount("/music/c.aiff"))
}

func TestPlayer_Next_EmptyPlaylist(t *testing.T) {
	player, _, _ := newTestPlayer(&stubLister{})

	assert.ErrorIs(t, player.Next(), domain.ErrPlaylistEmpty)
	assert.ErrorIs(t, player.Previous(), domain.ErrPlaylistEmpty)
}

func TestPlayer_Next_StartsEvenWhenNothingWasPlaying(t *testing.T) {
	player, device := loadedPlayer(t, "/music/a.wav", "/music/b.au")

	// No clip open yet; Next must still open and start b.au.
	require.NoError(t, player.Next())

	state := player.Snapshot()
	assert.Equal(t, 1, state.CurrentIndex)
	assert.True(t, state.IsPlaying)
	assert.Equal(t, 1, device.OpenCount("/music/b.au"))
}

func TestPlayer_PlayAt(t *testing.T) {
	player, device := loadedPlayer(t, "/music/a.wav", "/music/b.au", "/music/c.aiff")

	require.NoError(t, player.PlayAt(2))

	state := player.Snapshot()
	assert.Equal(t, 2, state.CurrentIndex)
	assert.True(t, state.IsPlaying)
	assert.Equal(t, "Playing: c.aiff (3/3)", state.Status)
	assert.Equal(t, 1, device.OpenCount("/music/c.aiff"))
}

func TestPlayer_PlayAt_OutOfRange(t *testing.T) {
	player, device := loadedPlayer(t, "/music/a.wav", "/music/b.au")
	require.NoError(t, player.PlayAt(1))
	before := player.Snapshot()

	for _, index := range []int{-1, 2, 100} {
		err := player.PlayAt(index)
		assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)

		state := player.Snapshot()
		assert.Equal(t, before.CurrentIndex, state.CurrentIndex)
		assert.Equal(t, before.IsPlaying, state.IsPlaying)
		assert.Equal(t, "index out of range", state.Status)
	}

	// The playing clip was never disturbed.
	assert.Equal(t, 1, device.OpenClips())
	assert.Equal(t, 0, device.CloseCount("/music/b.au"))
}

func TestPlayer_PlayAt_OpenFailureKeepsCursor(t *testing.T) {
	player, device := loadedPlayer(t, "/music/a.wav", "/music/b.au")
	require.NoError(t, player.PlayPause())
	device.SetFailOpen(true)

	err := player.PlayAt(1)
	assert.Error(t, err)

	state := player.Snapshot()
	assert.Equal(t, 0, state.CurrentIndex)
	assert.False(t, state.IsPlaying)
	assert.Contains(t, state.Status, "cannot open b.au")

	// The previous clip was already released by the replace step.
	assert.Equal(t, 1, device.CloseCount("/music/a.wav"))
	assert.Equal(t, 0, device.OpenClips())
}

func TestPlayer_StopAfterNaturalCompletion(t *testing.T) {
	player, device := loadedPlayer(t, "/music/a.wav")
	require.NoError(t, player.PlayPause())

	// Hardware drains the clip on its own.
	state := player.Snapshot()
	require.True(t, state.IsPlaying)
	device.FinishNaturally(domain.ClipHandle(1))

	// Stop must tolerate the already-released clip.
	require.NoError(t, player.Stop())
	assert.Equal(t, "Stopped", player.Snapshot().Status)
	assert.Equal(t, 1, device.CloseCount("/music/a.wav"))
}

func TestPlayer_Apply_DispatchesAllCommands(t *testing.T) {
	lister := &stubLister{tracks: tracksFor("/music/a.wav", "/music/b.au")}
	player, _, _ := newTestPlayer(lister)

	require.NoError(t, player.Apply(domain.LoadDirectory{Path: "/music"}))
	require.NoError(t, player.Apply(domain.PlayPause{}))
	require.NoError(t, player.Apply(domain.Next{}))
	require.NoError(t, player.Apply(domain.Previous{}))
	require.NoError(t, player.Apply(domain.PlayAt{Index: 1}))
	require.NoError(t, player.Apply(domain.Stop{}))

	assert.Equal(t, 1, lister.calls)
}

type bogusCommand struct{}

func (bogusCommand) Name() string { return "bogus" }

func TestPlayer_Apply_UnknownCommand(t *testing.T) {
	player, _ := loadedPlayer(t, "/music/a.wav")
	before := player.Snapshot()

	err := player.Apply(bogusCommand{})
	assert.ErrorIs(t, err, domain.ErrUnknownCommand)

	state := player.Snapshot()
	assert.Equal(t, before.CurrentIndex, state.CurrentIndex)
	assert.Equal(t, before.IsPlaying, state.IsPlaying)
	assert.Equal(t, "unknown command", state.Status)
}

func TestPlayer_StateChangedEventPerTransition(t *testing.T) {
	lister := &stubLister{tracks: tracksFor("/music/a.wav")}
	player, _, bus := newTestPlayer(lister)

	var states []domain.PlayerState
	bus.Subscribe(domain.EventStateChanged, func(e domain.Event) {
		states = append(states, e.(domain.StateChangedEvent).State)
	})

	require.NoError(t, player.LoadDirectory("/music"))
	require.NoError(t, player.PlayPause())
	require.NoError(t, player.Stop())

	require.Len(t, states, 3)
	assert.Equal(t, "Loaded 1 tracks from /music", states[0].Status)
	assert.True(t, states[1].IsPlaying)
	assert.Equal(t, "Stopped", states[2].Status)
}

func TestPlayer_SnapshotIsACopy(t *testing.T) {
	player, _ := loadedPlayer(t, "/music/a.wav", "/music/b.au")

	state := player.Snapshot()
	state.Tracks[0].Path = "/mutated"

	assert.Equal(t, "/music/a.wav", player.Snapshot().Tracks[0].Path)
}

func TestPlayer_DisplayNamePrefersTitle(t *testing.T) {
	lister := &stubLister{tracks: []domain.Track{{Path: "/music/a.wav", Title: "Morning Song"}}}
	player, _, _ := newTestPlayer(lister)
	require.NoError(t, player.LoadDirectory("/music"))

	require.NoError(t, player.PlayPause())
	state := player.Snapshot()
	assert.Equal(t, "Morning Song", state.CurrentSong)
	assert.Equal(t, "Playing: Morning Song (1/1)", state.Status)
}

func TestPlayer_Shutdown_ReleasesClip(t *testing.T) {
	player, device := loadedPlayer(t, "/music/a.wav")
	require.NoError(t, player.PlayPause())

	require.NoError(t, player.Shutdown())
	assert.Equal(t, 0, device.OpenClips())
	assert.Equal(t, 1, device.CloseCount("/music/a.wav"))

	// Shutdown with nothing open is harmless.
	require.NoError(t, player.Shutdown())
}
