package overlay

import (
	"log"
	"strings"
	"sync"

	"github.com/micoverlay/micoverlay/internal/assets"
	"github.com/micoverlay/micoverlay/internal/models"
	"github.com/micoverlay/micoverlay/internal/toggle"
)

// Placement is one icon on screen.
type Placement struct {
	Name    string
	Image   string // "" when the binding has no asset
	Anchor  Point
	Size    int
	Active  bool
	Visible bool
}

// Frame is everything a renderer paints.
type Frame struct {
	Mute  Placement
	Icons []Placement
}

// Renderer paints frames. Implementations must be safe to call from any
// goroutine.
type Renderer interface {
	Render(Frame)
}

// Layout is the fixed part of the overlay, computed once at startup from
// settings, the binding set and the icon assets.
type Layout struct {
	Mute  Placement
	Icons []Placement
}

// NewLayout places the mute indicator at the first anchor and every other
// binding at consecutive anchors in binding order.
func NewLayout(screen Screen, settings models.Settings, bindings models.Bindings, iconsDir string) (Layout, error) {
	size := settings.IconSize
	if size < models.MinIconSize {
		size = models.DefaultIconSize
	}

	var others models.Bindings
	for _, b := range bindings {
		if !b.IsSystemMute() {
			others = append(others, b)
		}
	}
	anchors := Anchors(screen, settings, len(others))
	first, _ := origin(screen, settings.Location, size, len(others))

	muteImage, err := assets.Find(iconsDir, models.SystemMute)
	if err != nil {
		return Layout{}, err
	}
	l := Layout{
		Mute: Placement{Name: models.SystemMute, Image: muteImage, Anchor: first, Size: size},
	}
	for i, b := range others {
		img, err := assets.Find(iconsDir, b.Name)
		if err != nil {
			return Layout{}, err
		}
		if img == "" {
			log.Printf("[overlay] No icon image for %q", b.Name)
		}
		l.Icons = append(l.Icons, Placement{Name: b.Name, Image: img, Anchor: anchors[i], Size: size})
	}
	return l, nil
}

// Frame applies a toggle view to the layout.
func (l Layout) Frame(v toggle.View) Frame {
	f := Frame{Mute: l.Mute, Icons: make([]Placement, len(l.Icons))}
	f.Mute.Active = v.MuteIndicator
	f.Mute.Visible = v.MuteIndicator
	for i, p := range l.Icons {
		if ic, ok := v.Icon(p.Name); ok {
			p.Active = ic.Active
			p.Visible = ic.Visible
		}
		f.Icons[i] = p
	}
	return f
}

// VisibleNames returns the names of visible icons, the mute indicator first.
func (f Frame) VisibleNames() []string {
	var names []string
	if f.Mute.Visible {
		names = append(names, f.Mute.Name)
	}
	for _, p := range f.Icons {
		if p.Visible {
			names = append(names, p.Name)
		}
	}
	return names
}

// LogRenderer writes each frame to the log. It backs the headless renderer
// and tests.
type LogRenderer struct {
	mu     sync.Mutex
	last   Frame
	frames int
}

// Render logs the visible icons.
func (r *LogRenderer) Render(f Frame) {
	r.mu.Lock()
	r.last = f
	r.frames++
	r.mu.Unlock()

	visible := f.VisibleNames()
	if len(visible) == 0 {
		log.Printf("[overlay] Visible: (none)")
		return
	}
	log.Printf("[overlay] Visible: %s", strings.Join(visible, ", "))
}

// Last returns the most recent frame and the number of frames rendered.
func (r *LogRenderer) Last() (Frame, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last, r.frames
}
