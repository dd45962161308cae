// Package tray implements the system tray icon and menu for the overlay.
package tray

import "github.com/micoverlay/micoverlay/internal/models"

// OverlayState provides the tray with access to the running overlay.
type OverlayState interface {
	Settings() models.Settings
	Toggle(name string) error
	RequestShutdown()
}
