// wavedeck-gui is the windowed front end.
package main

import (
	"flag"
	"fmt"
	"os"

	fyneapp "fyne.io/fyne/v2/app"

	fyneui "github.com/wavedeck/wavedeck/internal/adapter/ui/fyne"
	"github.com/wavedeck/wavedeck/internal/app"
)

func main() {
	mock := flag.Bool("mock", false, "use the silent mock audio device instead of the speaker")
	flag.Parse()

	cfg := app.DefaultConfig()
	cfg.UseMockDevice = *mock

	application, err := app.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "wavedeck-gui: %v\n", err)
		os.Exit(1)
	}
	defer application.Shutdown()

	gui := fyneapp.NewWithID(cfg.AppID)
	window := fyneui.NewMainWindow(gui, cfg.AppName)

	presenter := fyneui.NewPresenter(
		application.Logger(),
		application.Player(),
		application.EventBus(),
		window,
	)
	defer presenter.Shutdown()

	window.SetPresenter(presenter)
	window.ShowAndRun()
}
