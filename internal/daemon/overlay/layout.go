// Package overlay is the renderer runtime: it lays icons out, tracks toggle
// state from hotkeys and the bindings document, and hands frames to a
// Renderer.
package overlay

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/micoverlay/micoverlay/internal/models"
)

// Padding is the gap between the screen edge and the first icon.
const Padding = 3

// iconGap is added to the icon size to get the distance between anchors.
const iconGap = 5

// Screen is the size of the display the overlay covers.
type Screen struct {
	Width  int
	Height int
}

// DefaultScreen is used when the display size is not known.
var DefaultScreen = Screen{Width: 1920, Height: 1080}

// ParseScreen parses a "WIDTHxHEIGHT" size such as "2560x1440".
func ParseScreen(s string) (Screen, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return Screen{}, fmt.Errorf("invalid screen size %q: want WIDTHxHEIGHT", s)
	}
	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil || width <= 0 {
		return Screen{}, fmt.Errorf("invalid screen width in %q", s)
	}
	height, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil || height <= 0 {
		return Screen{}, fmt.Errorf("invalid screen height in %q", s)
	}
	return Screen{Width: width, Height: height}, nil
}

func (s Screen) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Point is a top-left icon anchor in screen pixels.
type Point struct {
	X int
	Y int
}

// origin returns the first anchor and the step direction for a location.
// Unknown locations fall back to Top Right.
func origin(screen Screen, loc models.Location, size, count int) (Point, Point) {
	total := count * (size + Padding)
	right := screen.Width - size - Padding
	bottom := screen.Height - size - Padding
	centreX := screen.Width/2 - total/2
	centreY := screen.Height/2 - total/2

	switch loc {
	case models.TopLeft:
		return Point{Padding, Padding}, Point{1, 0}
	case models.TopMiddle:
		return Point{centreX, Padding}, Point{1, 0}
	case models.BottomLeft:
		return Point{Padding, bottom}, Point{1, 0}
	case models.BottomMiddle:
		return Point{centreX, bottom}, Point{1, 0}
	case models.BottomRight:
		return Point{right, bottom}, Point{-1, 0}
	case models.MiddleLeft:
		return Point{Padding, centreY}, Point{0, 1}
	case models.MiddleRight:
		return Point{right, centreY}, Point{0, 1}
	default:
		return Point{right, Padding}, Point{-1, 0}
	}
}

// Anchors returns the positions of count icons for the given settings,
// in binding order.
func Anchors(screen Screen, settings models.Settings, count int) []Point {
	size := settings.IconSize
	if size < models.MinIconSize {
		size = models.DefaultIconSize
	}
	start, dir := origin(screen, settings.Location, size, count)
	step := size + iconGap

	points := make([]Point, count)
	for i := range points {
		points[i] = Point{
			X: start.X + dir.X*step*i,
			Y: start.Y + dir.Y*step*i,
		}
	}
	return points
}
