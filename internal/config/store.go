package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/micoverlay/micoverlay/internal/models"
)

// Store reads and writes the bindings and settings documents of one data
// directory. Every write replaces the whole document. Read-modify-write
// sequences within a process are serialized by the Update methods; across
// processes the last writer wins.
type Store struct {
	dir string
	mu  sync.Mutex
}

// NewStore creates a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the data directory.
func (s *Store) Dir() string { return s.dir }

// HotkeysPath returns the bindings document path.
func (s *Store) HotkeysPath() string { return HotkeysFile(s.dir) }

// SettingsPath returns the settings document path.
func (s *Store) SettingsPath() string { return SettingsFile(s.dir) }

// IconsDir returns the icon asset directory.
func (s *Store) IconsDir() string { return IconsDir(s.dir) }

// LogsDir returns the logs directory.
func (s *Store) LogsDir() string { return LogsDir(s.dir) }

// LoadHotkeys loads the binding set. A missing or empty document is seeded
// with the System Mute binding and persisted. A malformed document is an
// error wrapping ErrMalformed.
func (s *Store) LoadHotkeys() (models.Bindings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadHotkeysLocked()
}

// SaveHotkeys replaces the bindings document.
func (s *Store) SaveHotkeys(bindings models.Bindings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveHotkeysLocked(bindings)
}

// UpdateHotkeys loads the binding set, passes a copy to fn and saves what fn
// returns. Nothing is written when fn fails.
func (s *Store) UpdateHotkeys(fn func(models.Bindings) (models.Bindings, error)) (models.Bindings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.loadHotkeysLocked()
	if err != nil {
		return nil, err
	}
	next, err := fn(current.Clone())
	if err != nil {
		return nil, err
	}
	if err := s.saveHotkeysLocked(next); err != nil {
		return nil, err
	}
	return next, nil
}

func (s *Store) loadHotkeysLocked() (models.Bindings, error) {
	path := s.HotkeysPath()
	if !FileExists(path) {
		return s.seedHotkeysLocked()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	bindings, err := decodeHotkeys(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(bindings) == 0 {
		return s.seedHotkeysLocked()
	}

	if bindings.Index(models.SystemMute) < 0 {
		bindings = append(models.Bindings{models.NewSystemMuteBinding()}, bindings...)
		if err := s.saveHotkeysLocked(bindings); err != nil {
			return nil, err
		}
	}
	return bindings, nil
}

func (s *Store) seedHotkeysLocked() (models.Bindings, error) {
	bindings := models.NewBindings()
	if err := s.saveHotkeysLocked(bindings); err != nil {
		return nil, err
	}
	return bindings, nil
}

func (s *Store) saveHotkeysLocked(bindings models.Bindings) error {
	if err := validateBindings(bindings); err != nil {
		return err
	}
	return SaveJSON(s.HotkeysPath(), encodeHotkeys(bindings))
}

// LoadSettings loads the overlay settings. A missing document is seeded
// with defaults and persisted. Schema keys absent from the stored document
// are filled with their defaults in the returned value.
func (s *Store) LoadSettings() (*models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadSettingsLocked()
}

// SaveSettings replaces the settings document. Keys the current schema does
// not know about are carried over from the stored document.
func (s *Store) SaveSettings(settings *models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveSettingsLocked(settings)
}

// UpdateSettings loads the settings, lets fn mutate them and saves the
// result. Nothing is written when fn fails.
func (s *Store) UpdateSettings(fn func(*models.Settings) error) (*models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.loadSettingsLocked()
	if err != nil {
		return nil, err
	}
	if err := fn(settings); err != nil {
		return nil, err
	}
	if err := s.saveSettingsLocked(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *Store) loadSettingsLocked() (*models.Settings, error) {
	path := s.SettingsPath()
	if !FileExists(path) {
		settings := models.NewSettings()
		if err := s.saveSettingsLocked(settings); err != nil {
			return nil, err
		}
		return settings, nil
	}

	doc, err := s.readSettingsDocLocked()
	if err != nil {
		return nil, err
	}
	settings, err := mergeSettings(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return settings, nil
}

func (s *Store) readSettingsDocLocked() (*settingsDoc, error) {
	path := s.SettingsPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	doc, err := decodeSettingsDoc(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}

func (s *Store) saveSettingsLocked(settings *models.Settings) error {
	var base *settingsDoc
	if FileExists(s.SettingsPath()) {
		// An unreadable document is replaced wholesale.
		if existing, err := s.readSettingsDocLocked(); err == nil {
			base = existing
		}
	}
	if base == nil {
		base = orderedmap.New[string, json.RawMessage]()
	}
	if err := applySettings(base, settings); err != nil {
		return err
	}
	return SaveJSON(s.SettingsPath(), base)
}
