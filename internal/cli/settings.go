package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/micoverlay/micoverlay/internal/catalog"
	"github.com/micoverlay/micoverlay/internal/models"
)

var settingsOutput string

var settingsCmd = &cobra.Command{
	Use:     "settings",
	Aliases: []string{"config"},
	Short:   "Show or change overlay settings",
	Long: `Show or change where the overlay is drawn and how large its icons are.
A running overlay is restarted to apply a change.`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show overlay settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsLocationCmd = &cobra.Command{
	Use:   "location LOCATION",
	Short: "Set the overlay location",
	Long: `Set the screen position the overlay anchors to. One of:
  ` + strings.Join(locationNames(), ", ") + `
or "next" to cycle to the following one.`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsLocation,
}

var settingsIconSizeCmd = &cobra.Command{
	Use:   "icon-size PIXELS",
	Short: "Set the icon size",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsIconSize,
}

func init() {
	settingsShowCmd.Flags().StringVarP(&settingsOutput, "output", "o", formatTable, "output format: table, json or yaml")

	settingsCmd.AddCommand(settingsIconSizeCmd)
	settingsCmd.AddCommand(settingsLocationCmd)
	settingsCmd.AddCommand(settingsShowCmd)
}

func locationNames() []string {
	names := make([]string, len(models.Locations))
	for i, l := range models.Locations {
		names[i] = string(l)
	}
	return names
}

// parseLocation accepts a location in any case, with spaces, dashes or
// underscores between words.
func parseLocation(s string, current models.Location) (models.Location, error) {
	norm := strings.NewReplacer("-", " ", "_", " ").Replace(strings.TrimSpace(s))
	norm = strings.Join(strings.Fields(norm), " ")
	if strings.EqualFold(norm, "next") {
		return current.Next(), nil
	}
	for _, l := range models.Locations {
		if strings.EqualFold(norm, string(l)) {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q (want one of %s)", catalog.ErrInvalidLocation, s, strings.Join(locationNames(), ", "))
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	if err := checkFormat(settingsOutput, formatTable, formatJSON, formatYAML); err != nil {
		return err
	}
	a, err := getApp()
	if err != nil {
		return err
	}

	s, err := a.Catalog.Settings()
	if err != nil {
		return err
	}
	if settingsOutput != formatTable {
		return writeStructured(cmd.OutOrStdout(), settingsOutput, s)
	}

	fmt.Printf("%s %s\n", styleLabel.Render("Location: "), styleValue.Render(string(s.Location)))
	fmt.Printf("%s %s\n", styleLabel.Render("Icon size:"), styleValue.Render(fmt.Sprintf("%dpx", s.IconSize)))
	pid := "-"
	if s.PID() != 0 {
		pid = strconv.Itoa(s.PID())
	}
	fmt.Printf("%s %s\n", styleLabel.Render("PID:      "), styleValue.Render(pid))
	return nil
}

func runSettingsLocation(cmd *cobra.Command, args []string) error {
	a, err := getApp()
	if err != nil {
		return err
	}

	s, err := a.Catalog.Settings()
	if err != nil {
		return err
	}
	loc, err := parseLocation(args[0], s.Location)
	if err != nil {
		return err
	}
	if err := a.Catalog.SetLocation(loc); err != nil {
		return err
	}
	fmt.Printf("Overlay location set to %s.\n", loc)
	return nil
}

func runSettingsIconSize(cmd *cobra.Command, args []string) error {
	a, err := getApp()
	if err != nil {
		return err
	}

	size, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(args[0]), "px"))
	if err != nil {
		return fmt.Errorf("%w: %q is not a number", catalog.ErrInvalidIconSize, args[0])
	}
	if err := a.Catalog.SetIconSize(size); err != nil {
		return err
	}
	fmt.Printf("Icon size set to %dpx.\n", size)
	return nil
}
