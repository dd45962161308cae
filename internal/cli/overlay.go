package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/micoverlay/micoverlay/internal/supervisor"
)

var overlayCmd = &cobra.Command{
	Use:   "overlay",
	Short: "Manage the overlay process",
	Long:  `Start, stop and restart the overlay process that draws the status icons.`,
}

var overlayStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show overlay status",
	RunE:  runOverlayStatus,
}

var overlayStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the overlay",
	RunE:  runOverlayStart,
}

var overlayStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the overlay",
	RunE:  runOverlayStop,
}

var overlayRestartCmd = &cobra.Command{
	Use:   "restart",
	Short: "Restart the overlay (starts it when stopped)",
	RunE:  runOverlayRestart,
}

func init() {
	overlayCmd.AddCommand(overlayRestartCmd)
	overlayCmd.AddCommand(overlayStartCmd)
	overlayCmd.AddCommand(overlayStatusCmd)
	overlayCmd.AddCommand(overlayStopCmd)
}

func runOverlayStart(cmd *cobra.Command, args []string) error {
	a, err := getApp()
	if err != nil {
		return err
	}

	fmt.Print("Starting overlay...")
	err = a.Supervisor.Start()
	if errors.Is(err, supervisor.ErrAlreadyRunning) {
		pid, _ := a.Supervisor.PID()
		fmt.Printf(" already running (PID %d).\n", pid)
		return nil
	}
	if err != nil {
		fmt.Println()
		return err
	}

	pid, _ := a.Supervisor.PID()
	fmt.Printf(" %s (PID %d).\n", styleSuccess.Render("started"), pid)
	return nil
}

func runOverlayStop(cmd *cobra.Command, args []string) error {
	a, err := getApp()
	if err != nil {
		return err
	}

	err = a.Supervisor.Stop()
	if errors.Is(err, supervisor.ErrNotRunning) {
		fmt.Println("Overlay is not running.")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Println("Overlay stopped.")
	return nil
}

func runOverlayRestart(cmd *cobra.Command, args []string) error {
	a, err := getApp()
	if err != nil {
		return err
	}

	fmt.Print("Restarting overlay...")
	if err := a.Supervisor.Restart(); err != nil {
		fmt.Println()
		return err
	}
	pid, _ := a.Supervisor.PID()
	fmt.Printf(" %s (PID %d).\n", styleSuccess.Render("done"), pid)
	return nil
}

func runOverlayStatus(cmd *cobra.Command, args []string) error {
	a, err := getApp()
	if err != nil {
		return err
	}

	running, err := a.Supervisor.IsRunning()
	if err != nil {
		return err
	}
	settings, err := a.Catalog.Settings()
	if err != nil {
		return err
	}

	if running {
		fmt.Printf("Overlay is %s.\n", styleSuccess.Render("running"))
		fmt.Printf("  %s %d\n", styleLabel.Render("PID:      "), settings.PID())
	} else {
		fmt.Println("Overlay is not running.")
	}
	fmt.Printf("  %s %s\n", styleLabel.Render("Location: "), styleValue.Render(string(settings.Location)))
	fmt.Printf("  %s %s\n", styleLabel.Render("Icon size:"), styleValue.Render(fmt.Sprintf("%dpx", settings.IconSize)))

	entries, err := a.Catalog.Entries()
	if err != nil {
		return err
	}
	var shown []string
	for _, e := range entries {
		if e.Visible {
			shown = append(shown, e.Name)
		}
	}
	if len(shown) == 0 {
		fmt.Println("\nNo icons shown.")
		return nil
	}
	fmt.Printf("\nShown icons (%d):\n", len(shown))
	for _, name := range shown {
		fmt.Printf("  %s\n", name)
	}
	return nil
}
