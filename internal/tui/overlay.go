package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// overlayKind names the dialog drawn over the panels.
type overlayKind int

const (
	overlayNone overlayKind = iota
	overlayHelp
	overlayAddBinding
	overlayEditBinding
)

// renderOverlay dims base and draws dialog centered on it. The dialog is
// clipped to the screen; base rows missing below the content are padded so
// a tall dialog is never cut short.
func renderOverlay(base, dialog string, width, height int) string {
	rows := strings.Split(base, "\n")
	for len(rows) < height {
		rows = append(rows, "")
	}
	for i, row := range rows {
		rows[i] = overlayDimStyle.Render(row)
	}

	lines := strings.Split(dialog, "\n")
	if limit := height - 2; limit > 0 && len(lines) > limit {
		lines = lines[:limit]
	}
	dialogWidth := 0
	for i, l := range lines {
		if limit := width - 2; limit > 0 && lipgloss.Width(l) > limit {
			lines[i] = ansi.Truncate(l, limit, "")
		}
		dialogWidth = max(dialogWidth, lipgloss.Width(lines[i]))
	}

	top := max((height-len(lines))/2, 1)
	col := max((width-dialogWidth)/2, 1)
	for i, l := range lines {
		if r := top + i; r < len(rows) {
			rows[r] = spliceLine(rows[r], l, col)
		}
	}
	return strings.Join(rows, "\n")
}

// spliceLine writes fg over bg starting at cell col, keeping the bg cells on
// either side. bg shorter than col is padded with spaces.
func spliceLine(bg, fg string, col int) string {
	bgWidth := lipgloss.Width(bg)
	left := ansi.Truncate(bg, col, "")
	if pad := col - lipgloss.Width(left); pad > 0 {
		left += strings.Repeat(" ", pad)
	}
	right := ""
	if end := col + lipgloss.Width(fg); end < bgWidth {
		right = ansi.Cut(bg, end, bgWidth)
	}
	return left + "\033[0m" + fg + "\033[0m" + right
}
