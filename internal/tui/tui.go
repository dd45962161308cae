// Package tui implements the interactive TUI for micoverlay.
package tui

import (
	"context"
	"log"
	"path/filepath"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/micoverlay/micoverlay/internal/app"
	"github.com/micoverlay/micoverlay/internal/config"
)

// programRef is a shared reference to the tea.Program for goroutine sends.
// It's set after tea.NewProgram but before p.Run().
type programRef struct {
	mu sync.Mutex
	p  *tea.Program
}

func (r *programRef) Set(p *tea.Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = p
}

func (r *programRef) Send(msg tea.Msg) {
	r.mu.Lock()
	p := r.p
	r.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// Clear nils out the program reference, preventing post-exit sends.
func (r *programRef) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = nil
}

// Run launches the TUI over the given application state.
func Run(a *app.App) error {
	f, err := tea.LogToFile(filepath.Join(a.Store.LogsDir(), config.ConfigLogFileName), "[tui] ")
	if err != nil {
		return err
	}
	defer f.Close()

	ref := &programRef{}
	model := NewModel(a, ref)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	// Store program reference for goroutine sends
	ref.Set(p)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := watchFiles(ctx, a.Store.Dir(), ref); err != nil {
		log.Printf("File watching disabled: %v", err)
	}

	_, err = p.Run()
	ref.Clear()
	return err
}
