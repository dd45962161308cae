package toggle

import (
	"errors"
	"fmt"

	"github.com/micoverlay/micoverlay/internal/models"
)

// ErrUnknownBinding is returned when toggling a name that is not in the
// bindings document.
var ErrUnknownBinding = errors.New("unknown binding")

// HotkeyStore is the part of the config store the machine writes through.
type HotkeyStore interface {
	LoadHotkeys() (models.Bindings, error)
	UpdateHotkeys(fn func(models.Bindings) (models.Bindings, error)) (models.Bindings, error)
}

// Machine performs toggle transitions. Both processes use it, so a toggle
// from a hotkey and a toggle from the configuration UI persist the same
// result.
type Machine struct {
	store HotkeyStore
}

// NewMachine creates a machine backed by store.
func NewMachine(store HotkeyStore) *Machine {
	return &Machine{store: store}
}

// Transition flips the enabled flag of name, persists the document and
// returns the resulting view. The document is re-read under the store lock
// so concurrent transitions never lose an update.
func (m *Machine) Transition(name string) (View, error) {
	bindings, err := m.store.UpdateHotkeys(func(bs models.Bindings) (models.Bindings, error) {
		i := bs.Index(name)
		if i < 0 {
			i = bs.IndexFold(name)
		}
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrUnknownBinding, name)
		}
		bs[i].Enabled = !bs[i].Enabled
		return bs, nil
	})
	if err != nil {
		return View{}, err
	}
	return Compute(bindings), nil
}

// Current re-reads the document and returns its view.
func (m *Machine) Current() (View, models.Bindings, error) {
	bindings, err := m.store.LoadHotkeys()
	if err != nil {
		return View{}, nil, err
	}
	return Compute(bindings), bindings, nil
}
