package tui

import (
	"fmt"
	"strings"

	"github.com/micoverlay/micoverlay/internal/catalog"
	"github.com/micoverlay/micoverlay/internal/daemon/overlay"
	"github.com/micoverlay/micoverlay/internal/models"
	"github.com/micoverlay/micoverlay/internal/toggle"
)

// Preview grid size in cells.
const (
	previewCols = 32
	previewRows = 9
)

// renderSettingsPanel shows the overlay settings and a scaled preview of
// where the icons land on a default screen.
func renderSettingsPanel(settings *models.Settings, entries []catalog.Entry, iconsDir string, width int) string {
	if settings == nil {
		return overlayDimStyle.Render("Loading...")
	}

	lines := []string{
		sectionHeaderStyle.Render("Overlay"),
		settingsLabelStyle.Render("Location") + settingsValueStyle.Render(string(settings.Location)),
		settingsLabelStyle.Render("Icon size") + settingsValueStyle.Render(fmt.Sprintf("%dpx", settings.IconSize)),
		settingsLabelStyle.Render("Screen") + settingsValueStyle.Render(overlay.DefaultScreen.String()),
		"",
		sectionHeaderStyle.Render("Preview"),
	}

	bindings := make(models.Bindings, 0, len(entries))
	for _, e := range entries {
		bindings = append(bindings, e.Binding)
	}
	layout, err := overlay.NewLayout(overlay.DefaultScreen, *settings, bindings, iconsDir)
	if err != nil {
		return strings.Join(append(lines, bindingHiddenStyle.Render(err.Error())), "\n")
	}
	frame := layout.Frame(toggle.Compute(bindings))

	cols := previewCols
	if width-2 < cols {
		cols = max(width-2, 4)
	}
	lines = append(lines, previewGrid(frame, overlay.DefaultScreen, cols, previewRows)...)
	lines = append(lines, "", overlayDimStyle.Render("l location  +/- size"))
	return strings.Join(lines, "\n")
}

// previewGrid draws frame scaled down to cols x rows cells inside a border.
func previewGrid(f overlay.Frame, screen overlay.Screen, cols, rows int) []string {
	grid := make([][]string, rows)
	for y := range grid {
		grid[y] = make([]string, cols)
		for x := range grid[y] {
			grid[y][x] = " "
		}
	}

	plot := func(p overlay.Placement, cell string) {
		x := p.Anchor.X * cols / screen.Width
		y := p.Anchor.Y * rows / screen.Height
		if x >= 0 && x < cols && y >= 0 && y < rows {
			grid[y][x] = cell
		}
	}

	for _, p := range f.Icons {
		if p.Visible {
			plot(p, previewIconStyle.Render("■"))
		} else {
			plot(p, previewFrameStyle.Render("·"))
		}
	}
	if f.Mute.Visible {
		plot(f.Mute, previewMuteStyle.Render("M"))
	}

	out := make([]string, 0, rows+2)
	out = append(out, previewFrameStyle.Render("┌"+strings.Repeat("─", cols)+"┐"))
	for _, row := range grid {
		out = append(out, previewFrameStyle.Render("│")+strings.Join(row, "")+previewFrameStyle.Render("│"))
	}
	out = append(out, previewFrameStyle.Render("└"+strings.Repeat("─", cols)+"┘"))
	return out
}
