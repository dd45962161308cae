package tui

import (
	"github.com/micoverlay/micoverlay/internal/catalog"
	"github.com/micoverlay/micoverlay/internal/models"
	"github.com/micoverlay/micoverlay/internal/supervisor"
)

// StateLoadedMsg carries a fresh read of the shared documents.
type StateLoadedMsg struct {
	Entries  []catalog.Entry
	Settings *models.Settings
	Overlay  supervisor.State
	PID      int
}

// OverlayStateMsg carries the result of a liveness probe.
type OverlayStateMsg struct {
	State supervisor.State
	PID   int
}

// SavedMsg signals an edit was persisted.
type SavedMsg struct {
	Text string
}

// BindingSavedMsg signals the add/edit form was saved.
type BindingSavedMsg struct {
	Name string
}

// RecordedMsg carries a combo captured from the keyboard hook.
type RecordedMsg struct {
	Keys []string
	Err  error
}

// FilesChangedMsg signals a document changed on disk.
type FilesChangedMsg struct{}

// ErrorMsg carries an error to display.
type ErrorMsg struct {
	Err error
}

// TickMsg is a periodic tick for polling.
type TickMsg struct{}

// ClearErrorMsg clears the error display.
type ClearErrorMsg struct{}

// ClearSavedMsg clears the "Saved" indicator.
type ClearSavedMsg struct{}
