// Package cli implements the micoverlay CLI commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/micoverlay/micoverlay/internal/app"
	"github.com/micoverlay/micoverlay/internal/config"
)

var dataDirFlag string

var rootCmd = &cobra.Command{
	Use:   "micoverlay",
	Short: "Configure the hotkey status-icon overlay",
	Long: `micoverlay manages the on-screen status icons toggled by global hotkeys.
It edits the bindings and overlay settings and starts, stops and restarts
the overlay process. Run it without arguments in a terminal to open the TUI.`,
	SilenceUsage:      true,
	PersistentPreRunE: openLog,
	RunE: func(cmd *cobra.Command, args []string) error {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return runTUI(cmd, args)
		}
		return cmd.Help()
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "data directory (default $"+config.DataDirEnv+" or ~/"+config.DataDirName+")")

	// Add subcommands (alphabetical)
	rootCmd.AddCommand(bindingsCmd)
	rootCmd.AddCommand(overlayCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(versionCmd)
}

var logFile *os.File

// openLog sends the configuration process log to <data>/logs/config.log.
func openLog(cmd *cobra.Command, args []string) error {
	if logFile != nil {
		return nil
	}
	dir, err := app.ResolveDataDir(dataDirFlag)
	if err != nil {
		return fmt.Errorf("failed to resolve data directory: %w", err)
	}
	f, err := config.OpenLog(dir, config.ConfigLogFileName, "[micoverlay] ")
	if err != nil {
		return err
	}
	logFile = f
	return nil
}

var current *app.App

// getApp opens the data directory selected by --data-dir.
func getApp() (*app.App, error) {
	if current != nil {
		return current, nil
	}
	a, err := app.New(dataDirFlag)
	if err != nil {
		return nil, err
	}
	current = a
	return a, nil
}
