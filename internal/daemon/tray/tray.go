package tray

import (
	"fmt"
	"log"
	"sync"

	"github.com/getlantern/systray"

	"github.com/micoverlay/micoverlay/internal/daemon/overlay"
	"github.com/micoverlay/micoverlay/internal/models"
)

const maxIconSlots = 16

var (
	state      OverlayState
	onStart    func()
	onExit     func()
	statusItem *systray.MenuItem
	muteItem   *systray.MenuItem

	// Pre-allocated icon menu slots
	iconSlots   [maxIconSlots]*systray.MenuItem
	noIconsItem *systray.MenuItem
	quitItem    *systray.MenuItem

	// Maps slot index → binding name for toggle actions
	slotMu    sync.RWMutex
	slotNames [maxIconSlots]string
	ready     bool
	pending   *overlay.Frame
	lastMuted *bool
)

// Renderer paints frames into the tray menu.
type Renderer struct{}

// Render implements overlay.Renderer. Frames that arrive before the tray is
// ready are applied once it is.
func (Renderer) Render(f overlay.Frame) {
	slotMu.Lock()
	if !ready {
		pending = &f
		slotMu.Unlock()
		return
	}
	slotMu.Unlock()
	UpdateFrame(f)
}

// Run starts the system tray. This blocks the calling goroutine (must be main).
// onStartFn is called when the tray is ready (load the overlay here).
// onExitFn is called when the tray exits (cleanup here).
func Run(s OverlayState, onStartFn, onExitFn func()) {
	state = s
	onStart = onStartFn
	onExit = onExitFn
	systray.Run(onReady, onQuit)
}

// Quit signals the tray to exit.
func Quit() {
	systray.Quit()
}

func onReady() {
	systray.SetIcon(iconIdle)
	systray.SetTooltip("micoverlay")

	// Header
	header := systray.AddMenuItem("micoverlay", "")
	header.Disable()

	// Location and size
	statusItem = systray.AddMenuItem("Starting...", "")
	statusItem.Disable()

	systray.AddSeparator()

	muteItem = systray.AddMenuItemCheckbox(models.SystemMute, "Hide every icon", false)

	systray.AddSeparator()

	// Pre-allocate icon slots (hidden by default)
	for i := 0; i < maxIconSlots; i++ {
		iconSlots[i] = systray.AddMenuItemCheckbox("", "", false)
		iconSlots[i].Hide()
	}

	// "No icons" placeholder
	noIconsItem = systray.AddMenuItem("No icons configured", "")
	noIconsItem.Disable()

	systray.AddSeparator()

	quitItem = systray.AddMenuItem("Quit", "Stop the overlay")

	// Load the overlay and start listening
	if onStart != nil {
		onStart()
	}

	if state != nil {
		s := state.Settings()
		statusItem.SetTitle(formatStatus(s))
	}

	slotMu.Lock()
	ready = true
	f := pending
	pending = nil
	slotMu.Unlock()
	if f != nil {
		UpdateFrame(*f)
	}

	// Handle click events
	go handleClicks()
}

func onQuit() {
	if onExit != nil {
		onExit()
	}
}

func handleClicks() {
	clicks := make(chan int)
	for i := 0; i < maxIconSlots; i++ {
		go func(i int) {
			for range iconSlots[i].ClickedCh {
				clicks <- i
			}
		}(i)
	}

	for {
		select {
		case <-muteItem.ClickedCh:
			toggleName(models.SystemMute)

		case <-quitItem.ClickedCh:
			if state != nil {
				state.RequestShutdown()
			}

		case slot := <-clicks:
			slotMu.RLock()
			name := slotNames[slot]
			slotMu.RUnlock()
			if name != "" {
				toggleName(name)
			}
		}
	}
}

func toggleName(name string) {
	if state == nil {
		return
	}
	log.Printf("[tray] Toggle %s", name)
	go func() {
		if err := state.Toggle(name); err != nil {
			log.Printf("[tray] Failed to toggle %s: %v", name, err)
		}
	}()
}

// UpdateFrame refreshes the menu, icon and tooltip from a frame.
func UpdateFrame(f overlay.Frame) {
	muted := f.Mute.Active

	// Update slot → binding name mapping
	slotMu.Lock()
	for i := 0; i < maxIconSlots; i++ {
		slotNames[i] = ""
	}
	for i, p := range f.Icons {
		if i >= maxIconSlots {
			break
		}
		slotNames[i] = p.Name
	}
	iconChanged := lastMuted == nil || *lastMuted != muted
	lastMuted = &muted
	slotMu.Unlock()

	if muted {
		muteItem.Check()
	} else {
		muteItem.Uncheck()
	}

	// Hide all slots first
	for i := 0; i < maxIconSlots; i++ {
		iconSlots[i].Hide()
	}

	if len(f.Icons) == 0 {
		noIconsItem.Show()
	} else {
		noIconsItem.Hide()
		for i, p := range f.Icons {
			if i >= maxIconSlots {
				log.Printf("[tray] %d icons do not fit the menu", len(f.Icons)-maxIconSlots)
				break
			}
			iconSlots[i].SetTitle(formatIconTitle(p, muted))
			if p.Active {
				iconSlots[i].Check()
			} else {
				iconSlots[i].Uncheck()
			}
			iconSlots[i].Show()
		}
	}

	if iconChanged {
		if muted {
			systray.SetIcon(iconMuted)
		} else {
			systray.SetIcon(iconIdle)
		}
	}
	systray.SetTooltip(formatTooltip(f))
}

func formatStatus(s models.Settings) string {
	return fmt.Sprintf("%s, %dpx icons", s.Location, s.IconSize)
}

func formatTooltip(f overlay.Frame) string {
	if f.Mute.Active {
		return "micoverlay: muted"
	}
	return fmt.Sprintf("micoverlay: %d of %d icons shown", len(f.VisibleNames()), len(f.Icons))
}

func formatIconTitle(p overlay.Placement, muted bool) string {
	switch {
	case p.Active && muted:
		return fmt.Sprintf("%s (hidden by mute)", p.Name)
	case p.Image == "":
		return fmt.Sprintf("%s (no image)", p.Name)
	default:
		return p.Name
	}
}
