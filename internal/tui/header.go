package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/micoverlay/micoverlay/internal/supervisor"
)

func renderHeader(dataDir string, state supervisor.State, pid int, width int) string {
	dot := lipgloss.NewStyle().Foreground(colorCyan).Render("●")
	name := lipgloss.NewStyle().Bold(true).Render("micoverlay")
	dir := lipgloss.NewStyle().Foreground(colorDim).Render(dataDir)

	left := fmt.Sprintf(" %s %s  %s", dot, name, dir)
	right := renderOverlayBadge(state, pid) + " "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return headerStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

func renderOverlayBadge(state supervisor.State, pid int) string {
	switch state {
	case supervisor.Running:
		return badgeRunningStyle.Render(fmt.Sprintf("● Overlay running (PID %d)", pid))
	case supervisor.Starting:
		return badgeBusyStyle.Render("● Overlay starting")
	case supervisor.Stopping:
		return badgeBusyStyle.Render("● Overlay stopping")
	default:
		return badgeStoppedStyle.Render("● Overlay stopped")
	}
}
