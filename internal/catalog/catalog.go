// Package catalog implements the configuration process's editing
// operations on bindings, icons and overlay settings. Every operation
// persists its change before restarting a running overlay, which only reads
// this configuration at startup.
package catalog

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/micoverlay/micoverlay/internal/assets"
	"github.com/micoverlay/micoverlay/internal/hotkey"
	"github.com/micoverlay/micoverlay/internal/models"
	"github.com/micoverlay/micoverlay/internal/toggle"
)

var (
	// ErrReservedBinding is returned when deleting or renaming System Mute.
	ErrReservedBinding = errors.New("binding is reserved")

	// ErrDuplicateName is returned when a name is already taken, ignoring
	// case, or would share an icon file with another binding.
	ErrDuplicateName = errors.New("binding name already exists")

	// ErrInvalidName is returned for names that are empty once trimmed or
	// contain no file-safe characters.
	ErrInvalidName = errors.New("invalid binding name")

	// ErrEmptyCombo is returned when a binding has no keys.
	ErrEmptyCombo = errors.New("combo has no keys")

	// ErrImageRequired is returned when adding a binding without an image.
	ErrImageRequired = errors.New("an image is required")

	// ErrInvalidLocation is returned for unknown overlay locations.
	ErrInvalidLocation = errors.New("invalid overlay location")

	// ErrInvalidIconSize is returned for icon sizes outside the allowed range.
	ErrInvalidIconSize = errors.New("invalid icon size")
)

// Store is the persistence the catalog edits.
type Store interface {
	toggle.HotkeyStore
	LoadSettings() (*models.Settings, error)
	UpdateSettings(fn func(*models.Settings) error) (*models.Settings, error)
	IconsDir() string
}

// Restarter restarts the overlay when it is running.
type Restarter interface {
	RestartIfRunning() (bool, error)
}

// Change describes an edit. Zero fields are left unchanged.
type Change struct {
	Name  string
	Combo []string
	Image string
}

// Entry is a binding with its derived icon state.
type Entry struct {
	models.Binding
	Image   string // resolved asset path, "" when missing
	Visible bool
}

// Catalog edits bindings and settings.
type Catalog struct {
	store     Store
	machine   *toggle.Machine
	restarter Restarter
}

// New creates a catalog. restarter may be nil when no overlay is supervised.
func New(store Store, machine *toggle.Machine, restarter Restarter) *Catalog {
	return &Catalog{store: store, machine: machine, restarter: restarter}
}

// Bindings returns the current binding set.
func (c *Catalog) Bindings() (models.Bindings, error) {
	return c.store.LoadHotkeys()
}

// Settings returns the current overlay settings.
func (c *Catalog) Settings() (*models.Settings, error) {
	return c.store.LoadSettings()
}

// Entries returns every binding with its icon and visibility.
func (c *Catalog) Entries() ([]Entry, error) {
	bindings, err := c.store.LoadHotkeys()
	if err != nil {
		return nil, err
	}
	view := toggle.Compute(bindings)

	entries := make([]Entry, 0, len(bindings))
	for _, b := range bindings {
		img, err := assets.Find(c.store.IconsDir(), b.Name)
		if err != nil {
			return nil, err
		}
		e := Entry{Binding: b, Image: img}
		if b.IsSystemMute() {
			e.Visible = view.MuteIndicator
		} else if ic, ok := view.Icon(b.Name); ok {
			e.Visible = ic.Visible
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Add creates an enabled binding with its icon image.
func (c *Catalog) Add(name string, combo []string, image string) error {
	name = strings.TrimSpace(name)
	keys, err := normalizeCombo(combo)
	if err != nil {
		return err
	}
	if image == "" {
		return ErrImageRequired
	}

	// Fail fast before copying the image; the check is repeated under the
	// store lock.
	current, err := c.store.LoadHotkeys()
	if err != nil {
		return err
	}
	if err := validateName(current, name, -1); err != nil {
		return err
	}

	staged, err := assets.Stage(c.store.IconsDir(), image)
	if err != nil {
		return err
	}

	_, err = c.store.UpdateHotkeys(func(bs models.Bindings) (models.Bindings, error) {
		if err := validateName(bs, name, -1); err != nil {
			return nil, err
		}
		return append(bs, models.Binding{Name: name, Combo: keys, Enabled: true}), nil
	})
	if err != nil {
		_ = assets.Discard(staged)
		return err
	}

	if _, err := assets.Commit(c.store.IconsDir(), staged, name); err != nil {
		return fmt.Errorf("binding %q saved but its image was not: %w", name, err)
	}
	log.Printf("[catalog] Added binding %q (%s)", name, hotkey.FormatCombo(keys))
	return c.restart()
}

// Edit renames a binding, changes its combo or replaces its image. The
// binding keeps its position and enabled state.
func (c *Catalog) Edit(oldName string, ch Change) error {
	current, err := c.store.LoadHotkeys()
	if err != nil {
		return err
	}
	b, ok := current.Get(oldName)
	if !ok {
		return fmt.Errorf("%w: %s", toggle.ErrUnknownBinding, oldName)
	}
	oldName = b.Name

	newName := strings.TrimSpace(ch.Name)
	if newName == "" {
		newName = oldName
	}
	if b.IsSystemMute() && newName != models.SystemMute {
		return fmt.Errorf("%w: %s cannot be renamed", ErrReservedBinding, models.SystemMute)
	}

	var keys []string
	if ch.Combo != nil {
		if keys, err = normalizeCombo(ch.Combo); err != nil {
			return err
		}
	}

	var staged string
	if ch.Image != "" {
		if staged, err = assets.Stage(c.store.IconsDir(), ch.Image); err != nil {
			return err
		}
	}

	_, err = c.store.UpdateHotkeys(func(bs models.Bindings) (models.Bindings, error) {
		i := bs.Index(oldName)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", toggle.ErrUnknownBinding, oldName)
		}
		if err := validateName(bs, newName, i); err != nil {
			return nil, err
		}
		bs[i].Name = newName
		if keys != nil {
			bs[i].Combo = keys
		}
		return bs, nil
	})
	if err != nil {
		_ = assets.Discard(staged)
		return err
	}

	dir := c.store.IconsDir()
	renamed := assets.Sanitize(oldName) != assets.Sanitize(newName)
	switch {
	case staged != "":
		if renamed {
			if err := assets.Remove(dir, oldName); err != nil {
				return fmt.Errorf("binding %q saved but its old image was not removed: %w", newName, err)
			}
		}
		if _, err := assets.Commit(dir, staged, newName); err != nil {
			return fmt.Errorf("binding %q saved but its image was not: %w", newName, err)
		}
	case renamed:
		if _, err := assets.Rename(dir, oldName, newName); err != nil {
			return fmt.Errorf("binding %q saved but its image was not renamed: %w", newName, err)
		}
	}

	log.Printf("[catalog] Edited binding %q -> %q", oldName, newName)
	return c.restart()
}

// Delete removes a binding and its image.
func (c *Catalog) Delete(name string) error {
	var removed string
	_, err := c.store.UpdateHotkeys(func(bs models.Bindings) (models.Bindings, error) {
		i := bs.Index(name)
		if i < 0 {
			i = bs.IndexFold(name)
		}
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", toggle.ErrUnknownBinding, name)
		}
		if bs[i].IsSystemMute() {
			return nil, fmt.Errorf("%w: %s cannot be deleted", ErrReservedBinding, models.SystemMute)
		}
		removed = bs[i].Name
		return append(bs[:i], bs[i+1:]...), nil
	})
	if err != nil {
		return err
	}

	if err := assets.Remove(c.store.IconsDir(), removed); err != nil {
		return fmt.Errorf("binding %q deleted but its image was not: %w", removed, err)
	}
	log.Printf("[catalog] Deleted binding %q", removed)
	return c.restart()
}

// Toggle flips a binding's enabled flag. A running overlay picks the change
// up from the bindings document without a restart.
func (c *Catalog) Toggle(name string) (toggle.View, error) {
	return c.machine.Transition(name)
}

// SetLocation moves the overlay to loc.
func (c *Catalog) SetLocation(loc models.Location) error {
	if !loc.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidLocation, loc)
	}
	return c.updateSettings(func(s *models.Settings) bool {
		if s.Location == loc {
			return false
		}
		s.Location = loc
		return true
	})
}

// SetIconSize changes the icon edge length in pixels.
func (c *Catalog) SetIconSize(size int) error {
	if size < models.MinIconSize || size > models.MaxIconSize {
		return fmt.Errorf("%w: %d (must be %d-%d)", ErrInvalidIconSize, size, models.MinIconSize, models.MaxIconSize)
	}
	return c.updateSettings(func(s *models.Settings) bool {
		if s.IconSize == size {
			return false
		}
		s.IconSize = size
		return true
	})
}

var errUnchanged = errors.New("unchanged")

func (c *Catalog) updateSettings(apply func(*models.Settings) bool) error {
	_, err := c.store.UpdateSettings(func(s *models.Settings) error {
		if !apply(s) {
			return errUnchanged
		}
		return nil
	})
	if errors.Is(err, errUnchanged) {
		return nil
	}
	if err != nil {
		return err
	}
	return c.restart()
}

func (c *Catalog) restart() error {
	if c.restarter == nil {
		return nil
	}
	restarted, err := c.restarter.RestartIfRunning()
	if err != nil {
		return fmt.Errorf("changes saved but the overlay failed to restart: %w", err)
	}
	if restarted {
		log.Printf("[catalog] Restarted overlay to apply changes")
	}
	return nil
}

// validateName checks name against every binding except the one at skip.
func validateName(bs models.Bindings, name string, skip int) error {
	if name == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidName)
	}
	if assets.Sanitize(name) == "" {
		return fmt.Errorf("%w: %q has no file-safe characters", ErrInvalidName, name)
	}
	for i, b := range bs {
		if i == skip {
			continue
		}
		if strings.EqualFold(b.Name, name) {
			return fmt.Errorf("%w: %q", ErrDuplicateName, b.Name)
		}
		if assets.SameAsset(b.Name, name) {
			return fmt.Errorf("%w: %q would share an icon file with %q", ErrDuplicateName, name, b.Name)
		}
	}
	return nil
}

// normalizeCombo capitalizes keys and drops duplicates, keeping order.
func normalizeCombo(combo []string) ([]string, error) {
	keys := hotkey.ParseCombo(hotkey.FormatCombo(combo))
	if len(keys) == 0 {
		return nil, ErrEmptyCombo
	}
	return keys, nil
}
