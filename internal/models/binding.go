package models

import "strings"

// SystemMute is the reserved binding whose enabled flag is the global
// mute override. It always exists and can be neither deleted nor renamed.
const SystemMute = "System Mute"

// Binding associates a display name with a key combo and a persisted
// toggle state.
// Bindings are stored in <data>/hotkeys.json.
type Binding struct {
	Name    string   `json:"name" yaml:"name"`
	Combo   []string `json:"combo" yaml:"combo"`
	Enabled bool     `json:"enabled" yaml:"enabled"`
}

// IsSystemMute reports whether b is the reserved mute binding.
func (b Binding) IsSystemMute() bool {
	return b.Name == SystemMute
}

// Bindings is the ordered binding set. Order is insertion order and drives
// icon placement.
type Bindings []Binding

// NewSystemMuteBinding returns the default System Mute binding.
func NewSystemMuteBinding() Binding {
	return Binding{
		Name:    SystemMute,
		Combo:   []string{"Ctrl", "Shift", "A"},
		Enabled: false,
	}
}

// NewBindings returns the seed binding set written when no document exists.
func NewBindings() Bindings {
	return Bindings{NewSystemMuteBinding()}
}

// Index returns the position of the binding with exactly this name, or -1.
func (bs Bindings) Index(name string) int {
	for i := range bs {
		if bs[i].Name == name {
			return i
		}
	}
	return -1
}

// IndexFold returns the position of the binding whose name matches name
// case-insensitively, or -1.
func (bs Bindings) IndexFold(name string) int {
	for i := range bs {
		if strings.EqualFold(bs[i].Name, name) {
			return i
		}
	}
	return -1
}

// Get returns the binding with the given name. An exact match wins over a
// case-insensitive one.
func (bs Bindings) Get(name string) (Binding, bool) {
	i := bs.Index(name)
	if i < 0 {
		i = bs.IndexFold(name)
	}
	if i < 0 {
		return Binding{}, false
	}
	return bs[i], true
}

// Names returns binding names in order.
func (bs Bindings) Names() []string {
	names := make([]string, len(bs))
	for i, b := range bs {
		names[i] = b.Name
	}
	return names
}

// Clone returns a deep copy.
func (bs Bindings) Clone() Bindings {
	out := make(Bindings, len(bs))
	for i, b := range bs {
		out[i] = Binding{
			Name:    b.Name,
			Combo:   append([]string(nil), b.Combo...),
			Enabled: b.Enabled,
		}
	}
	return out
}

// SameLayout reports whether two binding sets have the same names and
// combos in the same order. Enabled flags are ignored: they are the only
// part of the document the renderer applies live.
func (bs Bindings) SameLayout(other Bindings) bool {
	if len(bs) != len(other) {
		return false
	}
	for i := range bs {
		if bs[i].Name != other[i].Name || len(bs[i].Combo) != len(other[i].Combo) {
			return false
		}
		for j := range bs[i].Combo {
			if bs[i].Combo[j] != other[i].Combo[j] {
				return false
			}
		}
	}
	return true
}
