package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// panelLayout holds computed dimensions for the two-panel layout.
type panelLayout struct {
	leftWidth     int
	rightWidth    int
	contentHeight int
}

func computeLayout(width, height int, splitRatio float64) panelLayout {
	// Reserve: 1 line header, 1 line status bar
	contentHeight := height - 2
	if contentHeight < 1 {
		contentHeight = 1
	}

	// Divider takes 1 char
	usable := width - 1
	leftWidth := int(float64(usable) * splitRatio)
	rightWidth := usable - leftWidth

	if leftWidth < 10 {
		leftWidth = 10
	}
	if rightWidth < 10 {
		rightWidth = 10
	}

	return panelLayout{
		leftWidth:     leftWidth,
		rightWidth:    rightWidth,
		contentHeight: contentHeight,
	}
}

// innerHeight is the content height inside a panel border.
func (l panelLayout) innerHeight() int {
	return max(l.contentHeight-2, 1)
}

func renderPanels(leftContent, rightContent string, layout panelLayout) string {
	// Inner dimensions (subtract 2 for border on each side)
	leftInner := max(layout.leftWidth-2, 1)
	rightInner := max(layout.rightWidth-2, 1)
	innerHeight := layout.innerHeight()

	// Render panels with fixed dimensions
	left := focusedBorderStyle.
		Width(leftInner).
		Height(innerHeight).
		Render(truncateContent(leftContent, leftInner, innerHeight))

	right := unfocusedBorderStyle.
		Width(rightInner).
		Height(innerHeight).
		Render(truncateContent(rightContent, rightInner, innerHeight))

	// Divider
	divider := lipgloss.NewStyle().
		Foreground(colorDim).
		Render(strings.Repeat("│\n", lipgloss.Height(left)))
	if divider != "" && divider[len(divider)-1] == '\n' {
		divider = divider[:len(divider)-1]
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, left, divider, right)
}

// truncateContent ensures content fits within the given dimensions.
func truncateContent(content string, width, height int) string {
	lines := strings.Split(content, "\n")

	// Limit to height
	if len(lines) > height {
		lines = lines[:height]
	}

	// Truncate long lines (ANSI-aware)
	for i, line := range lines {
		if lipgloss.Width(line) > width {
			lines[i] = ansi.Truncate(line, width, "")
		}
	}

	return strings.Join(lines, "\n")
}
