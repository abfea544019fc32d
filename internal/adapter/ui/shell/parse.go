// Package shell is the line-oriented front end: a readline loop that
// translates typed commands into engine transitions and renders the
// resulting state as text.
package shell

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wavedeck/wavedeck/internal/domain"
)

// Kind classifies a parsed input line.
type Kind int

const (
	// KindEmpty is a blank line; the loop just re-prompts.
	KindEmpty Kind = iota
	// KindEngine carries a playback command for the engine.
	KindEngine
	// KindList asks for the playlist rendering.
	KindList
	// KindStatus asks for the status line.
	KindStatus
	// KindHelp asks for the command summary.
	KindHelp
	// KindQuit ends the session.
	KindQuit
)

// Request is one parsed input line.
type Request struct {
	Kind    Kind
	Command domain.Command
}

// Parse turns one input line into a Request. Track numbers on the
// command line are 1-based, matching the playlist rendering; they are
// converted here so the engine only ever sees 0-based indexes.
func Parse(line string) (Request, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Request{Kind: KindEmpty}, nil
	}

	verb := strings.ToLower(fields[0])
	switch verb {
	case "load":
		dir := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))
		if dir == "" {
			return Request{}, fmt.Errorf("load requires a directory")
		}
		return Request{Kind: KindEngine, Command: domain.LoadDirectory{Path: dir}}, nil

	case "play", "pause", "p":
		return Request{Kind: KindEngine, Command: domain.PlayPause{}}, nil

	case "stop":
		return Request{Kind: KindEngine, Command: domain.Stop{}}, nil

	case "next", "n":
		return Request{Kind: KindEngine, Command: domain.Next{}}, nil

	case "prev", "previous":
		return Request{Kind: KindEngine, Command: domain.Previous{}}, nil

	case "goto":
		if len(fields) != 2 {
			return Request{}, fmt.Errorf("goto requires a track number")
		}
		num, err := strconv.Atoi(fields[1])
		if err != nil {
			return Request{}, fmt.Errorf("goto: %q is not a track number", fields[1])
		}
		return Request{Kind: KindEngine, Command: domain.PlayAt{Index: num - 1}}, nil

	case "list", "ls":
		return Request{Kind: KindList}, nil

	case "status":
		return Request{Kind: KindStatus}, nil

	case "help", "?":
		return Request{Kind: KindHelp}, nil

	case "quit", "exit", "q":
		return Request{Kind: KindQuit}, nil

	default:
		return Request{}, fmt.Errorf("%w: %s", domain.ErrUnknownCommand, verb)
	}
}
