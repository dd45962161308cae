package cli

import (
	"github.com/spf13/cobra"

	"github.com/micoverlay/micoverlay/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive editor",
	Long: `Open the full-screen editor for bindings and overlay settings.
Changes made by the overlay's hotkeys show up live.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	a, err := getApp()
	if err != nil {
		return err
	}
	return tui.Run(a)
}
