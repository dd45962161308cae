package models

// Location is one of the eight screen positions the overlay anchors to.
type Location string

// Overlay locations.
const (
	TopLeft      Location = "Top Left"
	TopMiddle    Location = "Top Middle"
	TopRight     Location = "Top Right"
	MiddleLeft   Location = "Middle Left"
	MiddleRight  Location = "Middle Right"
	BottomLeft   Location = "Bottom Left"
	BottomMiddle Location = "Bottom Middle"
	BottomRight  Location = "Bottom Right"
)

// Locations lists every location in grid order (row by row, skipping the
// centre cell).
var Locations = []Location{
	TopLeft, TopMiddle, TopRight,
	MiddleLeft, MiddleRight,
	BottomLeft, BottomMiddle, BottomRight,
}

// Valid reports whether l is one of the known locations.
func (l Location) Valid() bool {
	for _, known := range Locations {
		if l == known {
			return true
		}
	}
	return false
}

// Next returns the following location in grid order, wrapping around.
// Unknown locations restart at the first entry.
func (l Location) Next() Location {
	for i, known := range Locations {
		if l == known {
			return Locations[(i+1)%len(Locations)]
		}
	}
	return Locations[0]
}

// Icon size bounds accepted by the configuration surfaces.
const (
	MinIconSize     = 1
	MaxIconSize     = 1000
	DefaultIconSize = 44
)

// Settings represents overlay settings.
// This corresponds to <data>/overlay_settings.json.
type Settings struct {
	Location   Location `json:"overlay_location" yaml:"overlay_location"`
	IconSize   int      `json:"icon_size" yaml:"icon_size"`
	OverlayPID *int     `json:"overlay_pid" yaml:"overlay_pid"` // nil when no renderer is supervised
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Location:   TopRight,
		IconSize:   DefaultIconSize,
		OverlayPID: nil,
	}
}

// PID returns the supervised renderer PID, or 0 when none is recorded.
func (s *Settings) PID() int {
	if s == nil || s.OverlayPID == nil {
		return 0
	}
	return *s.OverlayPID
}
