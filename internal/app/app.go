// Package app assembles the configuration process state shared by the CLI
// and the TUI.
package app

import (
	"fmt"

	"github.com/micoverlay/micoverlay/internal/catalog"
	"github.com/micoverlay/micoverlay/internal/config"
	"github.com/micoverlay/micoverlay/internal/supervisor"
	"github.com/micoverlay/micoverlay/internal/toggle"
)

// App is the configuration process: the shared documents, the editing
// operations on them and the renderer it supervises.
type App struct {
	Store      *config.Store
	Machine    *toggle.Machine
	Supervisor *supervisor.Supervisor
	Catalog    *catalog.Catalog
}

// New opens the data directory and wires the renderer launcher.
// An empty dataDir selects config.DefaultDataDir.
func New(dataDir string) (*App, error) {
	dir, err := ResolveDataDir(dataDir)
	if err != nil {
		return nil, err
	}
	return NewWith(dir, supervisor.NewRendererLauncher(dir), supervisor.ProcessProber{}, supervisor.DefaultOptions())
}

// NewWith builds the application over explicit process primitives.
func NewWith(dir string, launcher supervisor.Launcher, prober supervisor.Prober, opts supervisor.Options) (*App, error) {
	if err := config.EnsureDataDir(dir); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	store := config.NewStore(dir)
	machine := toggle.NewMachine(store)
	sup := supervisor.New(store, launcher, prober, opts)
	return &App{
		Store:      store,
		Machine:    machine,
		Supervisor: sup,
		Catalog:    catalog.New(store, machine, sup),
	}, nil
}

// ResolveDataDir returns dir, or the default data directory when empty.
func ResolveDataDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	return config.DefaultDataDir()
}
