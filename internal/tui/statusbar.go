package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// confirmMode values.
const (
	confirmNone   = 0
	confirmDelete = 1
)

func renderStatusBar(m *Model, width int) string {
	// Handle confirm mode
	if m.confirmMode == confirmDelete {
		return renderConfirmBar(
			fmt.Sprintf("Delete %q and its image? (x/y to confirm, n to cancel)", m.confirmName),
			width,
		)
	}

	// Error display
	if m.err != nil {
		return renderErrorBar(m.err.Error(), width)
	}

	// Saved indicator
	if m.savedText != "" {
		return renderSavedBar(m.savedText, width)
	}

	// Context-sensitive key hints
	left := " " + getKeyHints(m)

	right := ""
	if m.muted() {
		right = lipgloss.NewStyle().Foreground(colorRed).Bold(true).Render("System Mute on") + " "
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return statusBarStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

func getKeyHints(m *Model) string {
	if m.activeOverlay == overlayHelp {
		return keyHint("Esc", "close")
	}
	if m.activeOverlay != overlayNone {
		return keyHint("Ctrl+s", "save") + "  " + keyHint("Ctrl+r", "record") + "  " + keyHint("Esc", "cancel")
	}

	return keyHint("q", "quit") + "  " + keyHint("?", "help") + "  " +
		keyHint("t", "toggle") + "  " + keyHint("a", "add") + "  " +
		keyHint("e", "edit") + "  " + keyHint("x", "delete") + "  " +
		keyHint("s", "overlay") + "  " + keyHint("l", "location") + "  " +
		keyHint("+/-", "size")
}

func keyHint(k, desc string) string {
	if k == "" {
		return hintStyle.Render(desc)
	}
	return keyStyle.Render(k) + " " + hintStyle.Render(desc)
}

func renderConfirmBar(msg string, width int) string {
	return statusBarStyle.
		Background(colorYellow).
		Foreground(lipgloss.AdaptiveColor{Light: "0", Dark: "0"}).
		Width(width).
		Render(" " + msg)
}

func renderErrorBar(msg string, width int) string {
	// Keep the bar on one line
	msg = strings.ReplaceAll(msg, "\n", " ")
	return statusBarStyle.
		Background(colorRed).
		Width(width).
		Render(" " + msg)
}

func renderSavedBar(text string, width int) string {
	return statusBarStyle.
		Width(width).
		Render(" " + lipgloss.NewStyle().Foreground(colorGreen).Render(text))
}
