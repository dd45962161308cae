// Package watcher handles file system watching for the overlay.
package watcher

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/micoverlay/micoverlay/internal/config"
)

// EventType represents the type of file system event.
type EventType int

// Event types for file system changes.
const (
	EventHotkeysChanged EventType = iota
	EventSettingsChanged
	EventIconsChanged
)

func (t EventType) String() string {
	switch t {
	case EventHotkeysChanged:
		return "hotkeys"
	case EventSettingsChanged:
		return "settings"
	case EventIconsChanged:
		return "icons"
	default:
		return "unknown"
	}
}

// DefaultDebounce is how long a path must be quiet before its event fires.
const DefaultDebounce = 100 * time.Millisecond

// Event represents a file system change event.
type Event struct {
	Type EventType
	Path string
}

// Watcher watches the data directory for changes to the state documents
// and icon assets.
type Watcher struct {
	fsWatcher  *fsnotify.Watcher
	dataDir    string
	eventsChan chan Event
	done       chan struct{}
	stopOnce   sync.Once
	delay      time.Duration
	debounce   map[string]*time.Timer
	debounceMu sync.Mutex
}

// New creates a new file system watcher for dataDir.
func New(dataDir string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsWatcher:  fsWatcher,
		dataDir:    filepath.Clean(dataDir),
		eventsChan: make(chan Event, 100),
		done:       make(chan struct{}),
		delay:      DefaultDebounce,
		debounce:   make(map[string]*time.Timer),
	}

	return w, nil
}

// SetDebounce changes the debounce delay. Call before Start.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.delay = d
}

// Events returns the channel for receiving events.
func (w *Watcher) Events() <-chan Event {
	return w.eventsChan
}

// Start starts the watcher. The directories are watched rather than the
// files because every save replaces the file through a rename.
func (w *Watcher) Start() error {
	if err := w.fsWatcher.Add(w.dataDir); err != nil {
		return err
	}
	iconsDir := config.IconsDir(w.dataDir)
	if err := w.fsWatcher.Add(iconsDir); err != nil {
		// Icons dir might not exist yet, that's OK
		log.Printf("[watcher] Warning: failed to watch icons dir: %v", err)
	}
	log.Printf("[watcher] Watching %s (icons: %s)", w.dataDir, iconsDir)

	go w.processEvents()

	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.fsWatcher.Close()

		w.debounceMu.Lock()
		for path, timer := range w.debounce {
			timer.Stop()
			delete(w.debounce, path)
		}
		w.debounceMu.Unlock()
	})
}

// processEvents processes file system events.
func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("[watcher] error: %v", err)
		}
	}
}

// handleEvent processes a single file system event.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	// Saves land as a rename of a temp file onto the target.
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return
	}
	eventType, ok := w.classify(event.Name)
	if !ok {
		return
	}

	w.debounceEvent(event.Name, func() {
		select {
		case w.eventsChan <- Event{Type: eventType, Path: event.Name}:
		case <-w.done:
		}
	})
}

// classify maps a path to the event it produces.
func (w *Watcher) classify(path string) (EventType, bool) {
	filename := filepath.Base(path)
	dir := filepath.Dir(path)

	switch {
	case dir == w.dataDir && filename == config.HotkeysFileName:
		return EventHotkeysChanged, true
	case dir == w.dataDir && filename == config.SettingsFileName:
		return EventSettingsChanged, true
	case dir == config.IconsDir(w.dataDir) && filename[0] != '.':
		return EventIconsChanged, true
	}
	return 0, false
}

// debounceEvent debounces events for the same path.
func (w *Watcher) debounceEvent(path string, fn func()) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	select {
	case <-w.done:
		return
	default:
	}

	// Cancel existing timer
	if timer, ok := w.debounce[path]; ok {
		timer.Stop()
	}

	w.debounce[path] = time.AfterFunc(w.delay, func() {
		w.debounceMu.Lock()
		delete(w.debounce, path)
		w.debounceMu.Unlock()
		fn()
	})
}
