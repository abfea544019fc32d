package fyne

import (
	"sync"

	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const (
	windowWidth  = 480
	windowHeight = 600
)

// MainWindow is the player window. It is a dumb view: it renders what
// the presenter pushes and forwards every interaction back to it.
type MainWindow struct {
	app    fyneapp.App
	window fyneapp.Window

	prevButton *widget.Button
	playButton *widget.Button
	stopButton *widget.Button
	nextButton *widget.Button
	nowPlaying *widget.Label
	statusBar  *widget.Label
	playlist   *widget.List

	mu    sync.Mutex
	items []string

	// Set while SelectTrack moves the cursor, so the selection
	// callback can tell user clicks from programmatic echoes.
	syncingSelection bool

	closeOnce sync.Once

	// Set after construction via SetPresenter.
	presenter *Presenter
}

// NewMainWindow creates the main window with an empty playlist.
func NewMainWindow(app fyneapp.App, title string) *MainWindow {
	w := &MainWindow{app: app}

	w.window = app.NewWindow(title)
	w.buildUI()
	w.window.Resize(fyneapp.NewSize(windowWidth, windowHeight))

	return w
}

// SetPresenter connects the presenter. Must be called before the
// window is shown.
func (w *MainWindow) SetPresenter(presenter *Presenter) {
	w.presenter = presenter
	w.wirePresenterHandlers()
}

func (w *MainWindow) buildUI() {
	w.prevButton = widget.NewButtonWithIcon("", theme.MediaSkipPreviousIcon(), nil)
	w.playButton = widget.NewButtonWithIcon("", theme.MediaPlayIcon(), nil)
	w.stopButton = widget.NewButtonWithIcon("", theme.MediaStopIcon(), nil)
	w.nextButton = widget.NewButtonWithIcon("", theme.MediaSkipNextIcon(), nil)

	w.nowPlaying = widget.NewLabel("")
	w.nowPlaying.Truncation = fyneapp.TextTruncateEllipsis
	w.nowPlaying.TextStyle = fyneapp.TextStyle{Bold: true}

	w.statusBar = widget.NewLabel("no playlist loaded")
	w.statusBar.Truncation = fyneapp.TextTruncateEllipsis

	w.playlist = widget.NewList(
		func() int {
			w.mu.Lock()
			defer w.mu.Unlock()
			return len(w.items)
		},
		func() fyneapp.CanvasObject {
			label := widget.NewLabel("")
			label.Truncation = fyneapp.TextTruncateEllipsis
			return label
		},
		func(id widget.ListItemID, obj fyneapp.CanvasObject) {
			w.mu.Lock()
			defer w.mu.Unlock()
			if id < 0 || id >= len(w.items) {
				return
			}
			obj.(*widget.Label).SetText(w.items[id])
		},
	)

	buttons := container.NewHBox(
		w.prevButton, w.playButton, w.stopButton, w.nextButton,
	)
	top := container.NewVBox(
		container.NewCenter(buttons),
		w.nowPlaying,
	)

	w.window.SetContent(container.NewBorder(top, w.statusBar, nil, nil, w.playlist))
	w.window.SetMainMenu(fyneapp.NewMainMenu(w.createMenu()...))
}

func (w *MainWindow) wirePresenterHandlers() {
	if w.presenter == nil {
		return
	}

	w.playButton.OnTapped = w.presenter.OnPlayClicked
	w.stopButton.OnTapped = w.presenter.OnStopClicked
	w.nextButton.OnTapped = w.presenter.OnNextClicked
	w.prevButton.OnTapped = w.presenter.OnPreviousClicked

	w.playlist.OnSelected = func(id widget.ListItemID) {
		w.mu.Lock()
		syncing := w.syncingSelection
		w.mu.Unlock()
		if syncing {
			return
		}
		w.presenter.OnTrackSelected(id)
	}
}

func (w *MainWindow) createMenu() []*fyneapp.Menu {
	openFolder := fyneapp.NewMenuItem("Open Folder", w.handleOpenFolder)
	exitItem := fyneapp.NewMenuItem("Exit", func() {
		w.window.Close()
	})

	fileMenu := fyneapp.NewMenu("File",
		openFolder,
		fyneapp.NewMenuItemSeparator(),
		exitItem,
	)
	return []*fyneapp.Menu{fileMenu}
}

func (w *MainWindow) handleOpenFolder() {
	if w.presenter == nil {
		return
	}

	d := NewFolderDialog(w.window, func(path string) {
		w.presenter.OnFolderOpened(path)
	})
	d.Show()
}

// ShowAndRun shows the window and enters the event loop. Blocks until
// the window closes.
func (w *MainWindow) ShowAndRun() {
	w.window.ShowAndRun()
}

// Close closes the window. Safe to call multiple times.
func (w *MainWindow) Close() {
	w.closeOnce.Do(func() {
		w.window.Close()
	})
}

// UIView implementation.

// SetPlayState flips the play button between play and pause icons.
func (w *MainWindow) SetPlayState(playing bool) {
	if playing {
		w.playButton.SetIcon(theme.MediaPauseIcon())
	} else {
		w.playButton.SetIcon(theme.MediaPlayIcon())
	}
}

// SetStatus updates the status bar text.
func (w *MainWindow) SetStatus(text string) {
	w.statusBar.SetText(text)
}

// SetNowPlaying updates the track name label.
func (w *MainWindow) SetNowPlaying(name string) {
	w.nowPlaying.SetText(name)
}

// SetPlaylist replaces the playlist rows.
func (w *MainWindow) SetPlaylist(items []string) {
	w.mu.Lock()
	w.items = items
	w.mu.Unlock()
	w.playlist.Refresh()
}

// SelectTrack highlights the row under the playback cursor without
// triggering another playback request.
func (w *MainWindow) SelectTrack(index int) {
	w.mu.Lock()
	w.syncingSelection = true
	w.mu.Unlock()

	w.playlist.Select(index)

	w.mu.Lock()
	w.syncingSelection = false
	w.mu.Unlock()
}

// ShowNotification sends a system notification.
func (w *MainWindow) ShowNotification(title, message string) {
	w.app.SendNotification(fyneapp.NewNotification(title, message))
}

// Verify UIView implementation
var _ UIView = (*MainWindow)(nil)
