// Package cmd holds small helpers shared by the renderer's command line.
package cmd

import (
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/lipgloss"

	"github.com/micoverlay/micoverlay/internal/buildinfo"
)

// Styles for renderer version output (matching CLI styles).
var (
	dStyleBrand   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "30", Dark: "45"})
	dStyleVersion = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "40"})
	dStyleLabel   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "242", Dark: "240"})
	dStyleValue   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "0", Dark: "15"})
)

// PrintVersion writes the build information for the named binary.
func PrintVersion(w io.Writer, name string) {
	fmt.Fprintf(w, "  %s %s\n", dStyleBrand.Render(name), dStyleVersion.Render(buildinfo.Version))
	rows := [][2]string{
		{"Commit ", buildinfo.CommitHash},
		{"Built  ", buildinfo.BuildDate},
		{"OS/Arch", runtime.GOOS + "/" + runtime.GOARCH},
		{"Go     ", runtime.Version()},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "    %s %s\n", dStyleLabel.Render(r[0]), dStyleValue.Render(r[1]))
	}
}
