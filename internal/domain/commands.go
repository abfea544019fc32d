package domain

// Command is one of the fixed set of playback transitions.
// The set is closed: the engine type-switches over the concrete
// types below and rejects anything else with ErrUnknownCommand.
type Command interface {
	// Name returns the command identifier used in logs and status text.
	Name() string
}

// LoadDirectory replaces the playlist with the audio files found in Path.
type LoadDirectory struct {
	Path string
}

// PlayPause toggles playback: pause when playing, resume when paused,
// open and start the track under the cursor when nothing is open.
type PlayPause struct{}

// Stop halts playback and fully releases the open clip.
type Stop struct{}

// Next advances the cursor by one, wrapping past the end.
type Next struct{}

// Previous moves the cursor back by one, wrapping past the start.
type Previous struct{}

// PlayAt jumps the cursor to Index and starts playback there.
type PlayAt struct {
	Index int
}

func (LoadDirectory) Name() string { return "load" }
func (PlayPause) Name() string     { return "play-pause" }
func (Stop) Name() string          { return "stop" }
func (Next) Name() string          { return "next" }
func (Previous) Name() string      { return "previous" }
func (PlayAt) Name() string        { return "play-at" }
