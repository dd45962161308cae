package overlay

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/micoverlay/micoverlay/internal/config"
	"github.com/micoverlay/micoverlay/internal/daemon/watcher"
	"github.com/micoverlay/micoverlay/internal/hotkey"
	"github.com/micoverlay/micoverlay/internal/models"
	"github.com/micoverlay/micoverlay/internal/toggle"
)

// App is the renderer's state: the layout read at startup, the hotkey
// matcher and the renderer that paints frames.
//
// Settings, the binding set and combos are read once by Load. Afterwards
// only enabled flags are taken from the bindings document; structural
// changes take effect when the supervisor restarts the process.
type App struct {
	store    *config.Store
	machine  *toggle.Machine
	matcher  *hotkey.Matcher
	renderer Renderer
	screen   Screen

	mu       sync.Mutex
	settings models.Settings
	bindings models.Bindings
	layout   Layout
	stale    bool // the document no longer matches the loaded layout
}

// NewApp creates the renderer state. Call Load before using it.
func NewApp(store *config.Store, renderer Renderer, screen Screen) *App {
	return &App{
		store:    store,
		machine:  toggle.NewMachine(store),
		matcher:  hotkey.NewMatcher(),
		renderer: renderer,
		screen:   screen,
	}
}

// Matcher returns the hotkey matcher fed by the key listener.
func (a *App) Matcher() *hotkey.Matcher {
	return a.matcher
}

// Layout returns the layout computed by Load.
func (a *App) Layout() Layout {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.layout
}

// Settings returns the settings loaded at startup.
func (a *App) Settings() models.Settings {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.settings
}

// Bindings returns the binding set loaded at startup.
func (a *App) Bindings() models.Bindings {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.bindings.Clone()
}

// Load reads settings and bindings, computes the layout, registers every
// combo and renders the first frame.
func (a *App) Load() error {
	settings, err := a.store.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	bindings, err := a.store.LoadHotkeys()
	if err != nil {
		return fmt.Errorf("failed to load hotkeys: %w", err)
	}
	layout, err := NewLayout(a.screen, *settings, bindings, a.store.IconsDir())
	if err != nil {
		return fmt.Errorf("failed to resolve icons: %w", err)
	}

	for _, name := range a.matcher.Names() {
		a.matcher.Unregister(name)
	}
	for _, b := range bindings {
		if err := a.matcher.Register(b.Name, b.Combo, a.onCombo); err != nil {
			log.Printf("[overlay] Skipping %q: %v", b.Name, err)
			continue
		}
		log.Printf("[overlay] Registered %q: %s", b.Name, hotkey.FormatCombo(b.Combo))
	}

	a.mu.Lock()
	a.settings = *settings
	a.bindings = bindings.Clone()
	a.layout = layout
	a.stale = false
	a.mu.Unlock()

	log.Printf("[overlay] Loaded %d bindings at %s, icon size %d", len(bindings), settings.Location, settings.IconSize)
	a.render(toggle.Compute(bindings))
	return nil
}

func (a *App) onCombo(name string) {
	log.Printf("[overlay] Hotkey fired: %s", name)
	if err := a.Toggle(name); err != nil {
		log.Printf("[overlay] Failed to toggle %q: %v", name, err)
	}
}

// Toggle flips a binding through the shared toggle machine and repaints.
func (a *App) Toggle(name string) error {
	view, err := a.machine.Transition(name)
	if err != nil {
		return err
	}
	a.render(view)
	return nil
}

// Reload re-reads the bindings document and repaints its enabled flags.
func (a *App) Reload() error {
	bindings, err := a.store.LoadHotkeys()
	if err != nil {
		return err
	}

	a.mu.Lock()
	structural := !a.bindings.SameLayout(bindings)
	report := structural && !a.stale
	a.stale = structural
	a.mu.Unlock()

	if report {
		log.Printf("[overlay] Binding set changed on disk; it applies after a restart")
	}
	a.render(toggle.Compute(bindings))
	return nil
}

func (a *App) render(v toggle.View) {
	a.mu.Lock()
	frame := a.layout.Frame(v)
	a.mu.Unlock()
	a.renderer.Render(frame)
}

// Watch applies watcher events until ctx is done or the channel closes.
func (a *App) Watch(ctx context.Context, events <-chan watcher.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev.Type {
			case watcher.EventHotkeysChanged:
				if err := a.Reload(); err != nil {
					log.Printf("[overlay] Failed to reload hotkeys: %v", err)
				}
			case watcher.EventSettingsChanged, watcher.EventIconsChanged:
				log.Printf("[overlay] %s changed on disk; it applies after a restart", ev.Type)
			}
		}
	}
}
