package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/micoverlay/micoverlay/internal/app"
	"github.com/micoverlay/micoverlay/internal/catalog"
	"github.com/micoverlay/micoverlay/internal/daemon/keyhook"
	"github.com/micoverlay/micoverlay/internal/daemon/watcher"
	"github.com/micoverlay/micoverlay/internal/models"
	"github.com/micoverlay/micoverlay/internal/supervisor"
)

// recordTimeout bounds how long the form waits for a combo.
const recordTimeout = 15 * time.Second

func loadStateCmd(a *app.App) tea.Cmd {
	return func() tea.Msg {
		entries, err := a.Catalog.Entries()
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to load bindings: %w", err)}
		}
		settings, err := a.Catalog.Settings()
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to load settings: %w", err)}
		}
		st, pid := overlayState(a)
		return StateLoadedMsg{Entries: entries, Settings: settings, Overlay: st, PID: pid}
	}
}

func overlayState(a *app.App) (supervisor.State, int) {
	st := a.Supervisor.State()
	pid := 0
	if st == supervisor.Running {
		pid, _ = a.Supervisor.PID()
	}
	return st, pid
}

func probeOverlayCmd(a *app.App) tea.Cmd {
	return func() tea.Msg {
		st, pid := overlayState(a)
		return OverlayStateMsg{State: st, PID: pid}
	}
}

func toggleCmd(a *app.App, name string) tea.Cmd {
	return func() tea.Msg {
		if _, err := a.Catalog.Toggle(name); err != nil {
			return ErrorMsg{Err: err}
		}
		return SavedMsg{}
	}
}

func addBindingCmd(a *app.App, name string, combo []string, image string) tea.Cmd {
	return func() tea.Msg {
		if err := a.Catalog.Add(name, combo, image); err != nil {
			return ErrorMsg{Err: err}
		}
		return BindingSavedMsg{Name: name}
	}
}

func editBindingCmd(a *app.App, oldName string, ch catalog.Change) tea.Cmd {
	return func() tea.Msg {
		if err := a.Catalog.Edit(oldName, ch); err != nil {
			return ErrorMsg{Err: err}
		}
		name := ch.Name
		if name == "" {
			name = oldName
		}
		return BindingSavedMsg{Name: name}
	}
}

func deleteBindingCmd(a *app.App, name string) tea.Cmd {
	return func() tea.Msg {
		if err := a.Catalog.Delete(name); err != nil {
			return ErrorMsg{Err: err}
		}
		return SavedMsg{Text: fmt.Sprintf("Deleted %q", name)}
	}
}

func startStopCmd(a *app.App) tea.Cmd {
	return func() tea.Msg {
		running, err := a.Supervisor.IsRunning()
		if err != nil {
			return ErrorMsg{Err: err}
		}
		if running {
			err = a.Supervisor.Stop()
		} else {
			err = a.Supervisor.Start()
		}
		if err != nil {
			return ErrorMsg{Err: err}
		}
		st, pid := overlayState(a)
		return OverlayStateMsg{State: st, PID: pid}
	}
}

func setLocationCmd(a *app.App, loc models.Location) tea.Cmd {
	return func() tea.Msg {
		if err := a.Catalog.SetLocation(loc); err != nil {
			return ErrorMsg{Err: err}
		}
		return SavedMsg{Text: "Location: " + string(loc)}
	}
}

func setIconSizeCmd(a *app.App, size int) tea.Cmd {
	return func() tea.Msg {
		if err := a.Catalog.SetIconSize(size); err != nil {
			return ErrorMsg{Err: err}
		}
		return SavedMsg{Text: fmt.Sprintf("Icon size: %dpx", size)}
	}
}

func recordComboCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		keys, err := keyhook.Record(ctx)
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("no hotkey pressed within %s", recordTimeout)
		}
		return RecordedMsg{Keys: keys, Err: err}
	}
}

// watchFiles forwards document changes to the program until ctx is done.
func watchFiles(ctx context.Context, dataDir string, program *programRef) error {
	w, err := watcher.New(dataDir)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		w.Stop()
		return err
	}
	go func() {
		defer w.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-w.Events():
				if !ok {
					return
				}
				program.Send(FilesChangedMsg{})
			}
		}
	}()
	return nil
}

func pollOverlayTick() tea.Cmd {
	return tea.Tick(2*time.Second, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

func clearErrorAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return ClearErrorMsg{}
	})
}

func clearSavedAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return ClearSavedMsg{}
	})
}
