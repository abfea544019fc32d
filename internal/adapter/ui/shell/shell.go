package shell

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/wavedeck/wavedeck/internal/domain"
)

// Controller is the slice of the playback engine the shell drives.
type Controller interface {
	Apply(cmd domain.Command) error
	Snapshot() domain.PlayerState
}

// Shell runs the interactive command loop.
type Shell struct {
	player Controller
	logger *slog.Logger
	out    io.Writer
}

// New creates a shell over the given engine, writing to out.
func New(player Controller, out io.Writer) *Shell {
	return &Shell{player: player, out: out}
}

// SetLogger sets the logger for this shell.
func (s *Shell) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// Run reads commands until quit or EOF. Ctrl-C clears the current
// line; a second Ctrl-C on an empty line ends the session.
func (s *Shell) Run() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "wavedeck> ",
		HistoryFile:     filepath.Join(os.TempDir(), ".wavedeck_history"),
		AutoComplete:    completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return fmt.Errorf("shell: %w", err)
	}
	defer rl.Close()

	fmt.Fprintln(s.out, "wavedeck - type 'help' for commands")

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("shell: %w", err)
		}

		if s.HandleLine(line) {
			return nil
		}
	}
}

// HandleLine executes one input line and reports whether the session
// should end.
func (s *Shell) HandleLine(line string) bool {
	req, err := Parse(line)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownCommand) {
			fmt.Fprintln(s.out, "unknown command, type 'help' for commands")
		} else {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
		return false
	}

	switch req.Kind {
	case KindEmpty:
		return false
	case KindQuit:
		return true
	case KindHelp:
		s.printHelp()
		return false
	case KindList:
		s.printList()
		return false
	case KindStatus:
		s.printStatus()
		return false
	case KindEngine:
		// Failures surface through the status text; the returned
		// error is already reflected there.
		_ = s.player.Apply(req.Command)
		s.printStatus()
		return false
	default:
		return false
	}
}

func (s *Shell) printStatus() {
	fmt.Fprintln(s.out, s.player.Snapshot().Status)
}

func (s *Shell) printList() {
	state := s.player.Snapshot()
	if len(state.Tracks) == 0 {
		fmt.Fprintln(s.out, "playlist is empty")
		return
	}

	for i, track := range state.Tracks {
		marker := "  "
		if i == state.CurrentIndex {
			marker = "> "
		}
		name := track.Title
		if name == "" {
			name = filepath.Base(track.Path)
		}
		fmt.Fprintf(s.out, "%s%3d. %s\n", marker, i+1, name)
	}
}

func (s *Shell) printHelp() {
	help := strings.TrimLeft(`
  load <dir>   load all audio files from a directory
  play         toggle play / pause
  stop         stop playback and rewind
  next         jump to the next track (wraps around)
  prev         jump to the previous track (wraps around)
  goto <n>     play track number n from the list
  list         show the playlist
  status       show the current status
  help         show this text
  quit         exit
`, "\n")
	fmt.Fprint(s.out, help)
}

func completer() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("load",
			readline.PcItemDynamic(listDirs),
		),
		readline.PcItem("play"),
		readline.PcItem("stop"),
		readline.PcItem("next"),
		readline.PcItem("prev"),
		readline.PcItem("goto"),
		readline.PcItem("list"),
		readline.PcItem("status"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}

// listDirs offers directory names for the load argument.
func listDirs(line string) []string {
	arg := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "load"))
	base := arg
	if base == "" {
		base = "."
	} else if !strings.HasSuffix(base, string(os.PathSeparator)) {
		base = filepath.Dir(base)
	}

	entries, err := os.ReadDir(base)
	if err != nil {
		return nil
	}

	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, filepath.Join(base, entry.Name())+string(os.PathSeparator))
		}
	}
	return dirs
}
