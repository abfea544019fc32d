package fyne

import (
	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
)

// FolderDialog asks the user for a directory to load.
type FolderDialog struct {
	window   fyneapp.Window
	callback func(string)
}

// NewFolderDialog creates a new folder dialog.
func NewFolderDialog(window fyneapp.Window, callback func(string)) *FolderDialog {
	return &FolderDialog{
		window:   window,
		callback: callback,
	}
}

// Show displays the folder dialog. Cancelling is a no-op.
func (d *FolderDialog) Show() {
	dialog.ShowFolderOpen(func(uri fyneapp.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		if d.callback != nil {
			d.callback(uri.Path())
		}
	}, d.window)
}
