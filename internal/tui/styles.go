package tui

import "github.com/charmbracelet/lipgloss"

// Colors using AdaptiveColor for light/dark terminal support.
var (
	colorWhite  = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
	colorDim    = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorGreen  = lipgloss.AdaptiveColor{Light: "28", Dark: "40"}
	colorRed    = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	colorYellow = lipgloss.AdaptiveColor{Light: "136", Dark: "220"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "30", Dark: "45"}
)

// Layout styles.
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(lipgloss.AdaptiveColor{Light: "235", Dark: "236"})

	focusedBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorWhite)

	unfocusedBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim)
)

// Binding list styles.
var (
	bindingShownStyle  = lipgloss.NewStyle().Foreground(colorGreen)
	bindingHiddenStyle = lipgloss.NewStyle().Foreground(colorYellow)
	bindingOffStyle    = lipgloss.NewStyle().Foreground(colorDim)
	bindingMuteStyle   = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	comboStyle         = lipgloss.NewStyle().Foreground(colorCyan)

	sectionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorWhite)

	selectedItemStyle = lipgloss.NewStyle().
				Background(lipgloss.AdaptiveColor{Light: "254", Dark: "237"})
)

// Overlay process badge styles.
var (
	badgeStoppedStyle = lipgloss.NewStyle().Foreground(colorDim)
	badgeRunningStyle = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	badgeBusyStyle    = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
)

// Overlay styles.
var (
	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorWhite).
			Padding(1, 2)

	overlayTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorWhite).
				MarginBottom(1)

	overlayDimStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

// Key hint styles for status bar.
var (
	keyStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	hintStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// Settings panel styles.
var (
	settingsLabelStyle = lipgloss.NewStyle().
				Width(12).
				Foreground(colorDim)

	settingsValueStyle = lipgloss.NewStyle().
				Foreground(colorWhite)

	previewFrameStyle = lipgloss.NewStyle().
				Foreground(colorDim)

	previewIconStyle = lipgloss.NewStyle().
				Foreground(colorGreen).
				Bold(true)

	previewMuteStyle = lipgloss.NewStyle().
				Foreground(colorRed).
				Bold(true)
)
