package hotkey

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrEmptyCombo is returned when registering a combo with no keys.
	ErrEmptyCombo = errors.New("combo has no keys")
)

// Callback is invoked with the binding name when its combo fires.
type Callback func(name string)

// Event is one key transition from a global key listener.
type Event struct {
	Key  string
	Down bool
}

// combo is one registered binding. lastTerminal is the key whose press
// last fired it; empty when the combo is armed.
type combo struct {
	name         string
	keys         keySet
	callback     Callback
	lastTerminal string
}

// Matcher tracks the set of held keys and fires registered combos.
//
// A combo fires on the key-down that completes it, when that terminal key
// is part of the combo and differs from the terminal key of its previous
// firing. A key-down for a key that is already held is autorepeat and is
// ignored. Releasing a combo's last terminal key re-arms that combo, and
// releasing every key re-arms all of them.
//
// Combos that share keys are matched independently: every satisfied combo
// fires, in registration order.
type Matcher struct {
	mu     sync.Mutex
	combos []*combo
	held   keySet
}

// NewMatcher creates an empty matcher.
func NewMatcher() *Matcher {
	return &Matcher{held: make(keySet)}
}

// Register associates a combo with a name. Key order does not matter.
// Registering an existing name replaces its combo and callback in place.
func (m *Matcher) Register(name string, keys []string, cb Callback) error {
	set := newKeySet(keys)
	if len(set) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyCombo, name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.combos {
		if c.name == name {
			c.keys = set
			c.callback = cb
			c.lastTerminal = ""
			return nil
		}
	}
	m.combos = append(m.combos, &combo{name: name, keys: set, callback: cb})
	return nil
}

// Unregister removes a combo. Unknown names are ignored.
func (m *Matcher) Unregister(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, c := range m.combos {
		if c.name == name {
			m.combos = append(m.combos[:i], m.combos[i+1:]...)
			return
		}
	}
}

// Names returns registered combo names in registration order.
func (m *Matcher) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, len(m.combos))
	for i, c := range m.combos {
		names[i] = c.name
	}
	return names
}

// Held returns the currently held keys in normalized form, sorted.
func (m *Matcher) Held() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys := make([]string, 0, len(m.held))
	for k := range m.held {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Reset forgets held keys and re-arms every combo, e.g. after the listener
// was restarted and key-up events may have been lost.
func (m *Matcher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetLocked()
}

func (m *Matcher) resetLocked() {
	m.held = make(keySet)
	for _, c := range m.combos {
		c.lastTerminal = ""
	}
}

// Press records a key-down and returns the names of the combos it fired.
// Callbacks run after the matcher's lock is released, in the same order.
func (m *Matcher) Press(key string) []string {
	k := NormalizeKey(key)
	if k == "" {
		return nil
	}

	m.mu.Lock()
	if m.held.has(k) {
		m.mu.Unlock()
		return nil
	}
	m.held[k] = struct{}{}

	var fired []*combo
	for _, c := range m.combos {
		if !c.keys.has(k) || !c.keys.subsetOf(m.held) {
			continue
		}
		if c.lastTerminal == k {
			continue
		}
		c.lastTerminal = k
		fired = append(fired, c)
	}

	names := make([]string, 0, len(fired))
	callbacks := make([]Callback, 0, len(fired))
	for _, c := range fired {
		names = append(names, c.name)
		callbacks = append(callbacks, c.callback)
	}
	m.mu.Unlock()

	for i, cb := range callbacks {
		if cb != nil {
			cb(names[i])
		}
	}
	return names
}

// Release records a key-up.
func (m *Matcher) Release(key string) {
	k := NormalizeKey(key)
	if k == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.held, k)
	if len(m.held) == 0 {
		m.resetLocked()
		return
	}
	for _, c := range m.combos {
		if c.lastTerminal == k {
			c.lastTerminal = ""
		}
	}
}

// Handle dispatches one event to Press or Release.
func (m *Matcher) Handle(ev Event) []string {
	if ev.Down {
		return m.Press(ev.Key)
	}
	m.Release(ev.Key)
	return nil
}

// Run feeds events into the matcher until ctx is done or events is closed.
func (m *Matcher) Run(ctx context.Context, events <-chan Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			m.Handle(ev)
		}
	}
}
