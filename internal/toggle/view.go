// Package toggle maps fired combos and manual toggle actions to persisted
// binding state and computes which icons are visible.
package toggle

import "github.com/micoverlay/micoverlay/internal/models"

// IconState is the derived visibility of one non-mute binding.
type IconState struct {
	Name    string
	Active  bool // the binding's own persisted flag
	Visible bool // Active, unless the mute override hides it
}

// View is what a renderer paints for a binding set.
type View struct {
	MuteIndicator bool
	Icons         []IconState
}

// Compute derives the view from persisted bindings. The System Mute flag
// hides every other icon without touching their own flags.
func Compute(bindings models.Bindings) View {
	var v View
	if b, ok := bindings.Get(models.SystemMute); ok {
		v.MuteIndicator = b.Enabled
	}
	for _, b := range bindings {
		if b.IsSystemMute() {
			continue
		}
		v.Icons = append(v.Icons, IconState{
			Name:    b.Name,
			Active:  b.Enabled,
			Visible: b.Enabled && !v.MuteIndicator,
		})
	}
	return v
}

// Icon returns the state of the named icon.
func (v View) Icon(name string) (IconState, bool) {
	for _, ic := range v.Icons {
		if ic.Name == name {
			return ic, true
		}
	}
	return IconState{}, false
}

// VisibleNames returns the names of visible icons in order.
func (v View) VisibleNames() []string {
	var names []string
	for _, ic := range v.Icons {
		if ic.Visible {
			names = append(names, ic.Name)
		}
	}
	return names
}
