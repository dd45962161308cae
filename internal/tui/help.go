package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type helpSection struct {
	title string
	keys  []helpKey
}

type helpKey struct {
	key  string
	desc string
}

var helpSections = []helpSection{
	{
		title: "Global",
		keys: []helpKey{
			{"q", "Quit"},
			{"?", "Toggle help"},
			{"r", "Reload from disk"},
		},
	},
	{
		title: "Bindings",
		keys: []helpKey{
			{"j/k ↑/↓", "Navigate bindings"},
			{"t / Space", "Toggle icon (or System Mute)"},
			{"a", "Add binding"},
			{"e / Enter", "Edit binding"},
			{"x", "Delete binding (press twice)"},
		},
	},
	{
		title: "Overlay",
		keys: []helpKey{
			{"s", "Start / stop the overlay"},
			{"l", "Cycle screen location"},
			{"+ / -", "Icon size by 5px"},
		},
	},
	{
		title: "Forms",
		keys: []helpKey{
			{"Ctrl+s", "Save"},
			{"Ctrl+r", "Record hotkey"},
			{"Esc", "Cancel / Close"},
			{"Tab", "Next field"},
		},
	},
}

// renderHelp renders the help overlay content.
func renderHelp(width int) string {
	maxWidth := 60
	if width-4 < maxWidth {
		maxWidth = width - 4
	}
	if maxWidth < 30 {
		maxWidth = 30
	}

	title := overlayTitleStyle.Render("Keyboard Shortcuts")
	sections := make([]string, 0, len(helpSections)*4+3)
	sections = append(sections, title)

	for _, sec := range helpSections {
		header := lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Render(sec.title)
		sections = append(sections, "", header)

		for _, k := range sec.keys {
			keyCol := lipgloss.NewStyle().
				Width(14).
				Foreground(colorWhite).
				Bold(true).
				Render(k.key)
			descCol := lipgloss.NewStyle().
				Foreground(colorDim).
				Render(k.desc)
			sections = append(sections, "  "+keyCol+descCol)
		}
	}

	sections = append(sections, "", lipgloss.NewStyle().Foreground(colorDim).Render("Press Esc or ? to close"))

	content := strings.Join(sections, "\n")
	return overlayStyle.Width(maxWidth).Render(content)
}
