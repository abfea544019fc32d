// wavedeck is the command-line front end: with no arguments it starts
// an interactive shell; with a single audio file path it plays that
// file and waits for the user before exiting.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wavedeck/wavedeck/internal/adapter/ui/shell"
	"github.com/wavedeck/wavedeck/internal/app"
	"github.com/wavedeck/wavedeck/internal/format"
)

func main() {
	os.Exit(run())
}

func run() int {
	mock := flag.Bool("mock", false, "use the silent mock audio device instead of the speaker")
	flag.Usage = usage
	flag.Parse()

	cfg := app.DefaultConfig()
	cfg.UseMockDevice = *mock

	application, err := app.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "wavedeck: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	switch flag.NArg() {
	case 0:
		return runShell(application)
	case 1:
		return playFileOnce(application, flag.Arg(0))
	default:
		usage()
		return 2
	}
}

func runShell(application *app.Application) int {
	sh := shell.New(application.Player(), os.Stdout)
	sh.SetLogger(application.Logger())

	if err := sh.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "wavedeck: %v\n", err)
		return 1
	}
	return 0
}

// playFileOnce loads the file's directory as the playlist, starts the
// file, and blocks until the user acknowledges.
func playFileOnce(application *app.Application, path string) int {
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		fmt.Fprintf(os.Stderr, "wavedeck: %s is not a playable file\n", path)
		return 1
	}
	if !format.IsSupported(path) {
		fmt.Fprintf(os.Stderr, "wavedeck: unsupported format %s (supported: %v)\n",
			filepath.Ext(path), format.Extensions())
		return 1
	}

	player := application.Player()
	if err := player.LoadDirectory(filepath.Dir(path)); err != nil {
		fmt.Fprintf(os.Stderr, "wavedeck: %v\n", err)
		return 1
	}

	index := -1
	for i, track := range player.Snapshot().Tracks {
		if track.Path == path {
			index = i
			break
		}
	}
	if index < 0 {
		fmt.Fprintf(os.Stderr, "wavedeck: %s not found in its directory listing\n", path)
		return 1
	}

	if err := player.PlayAt(index); err != nil {
		fmt.Fprintln(os.Stderr, player.Snapshot().Status)
		return 1
	}

	fmt.Println(player.Snapshot().Status)
	fmt.Print("press Enter to exit: ")
	_, _ = bufio.NewReader(os.Stdin).ReadString('\n')
	return 0
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage: wavedeck [flags] [file]

With no file, starts the interactive shell.
With a single audio file (%v), plays it and waits for Enter.

flags:
`, format.Extensions())
	flag.PrintDefaults()
}
