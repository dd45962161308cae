package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/micoverlay/micoverlay/internal/catalog"
	"github.com/micoverlay/micoverlay/internal/daemon/keyhook"
	"github.com/micoverlay/micoverlay/internal/hotkey"
	"github.com/micoverlay/micoverlay/internal/models"
)

var (
	listOutput   string
	bindingName  string
	bindingCombo string
	bindingImage string
	recordWait   time.Duration
)

var bindingsCmd = &cobra.Command{
	Use:     "bindings",
	Aliases: []string{"binding", "b"},
	Short:   "Manage hotkey bindings",
	Long:    `Manage the hotkey bindings and the status icons they toggle.`,
}

var bindingsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List bindings",
	Args:    cobra.NoArgs,
	RunE:    runBindingsList,
}

var bindingsAddCmd = &cobra.Command{
	Use:   "add NAME --combo KEYS --image FILE",
	Short: "Add a binding",
	Args:  cobra.ExactArgs(1),
	RunE:  runBindingsAdd,
}

var bindingsEditCmd = &cobra.Command{
	Use:   "edit NAME [--name NEW] [--combo KEYS] [--image FILE]",
	Short: "Edit a binding",
	Args:  cobra.ExactArgs(1),
	RunE:  runBindingsEdit,
}

var bindingsDeleteCmd = &cobra.Command{
	Use:     "delete NAME",
	Aliases: []string{"rm"},
	Short:   "Delete a binding and its icon",
	Args:    cobra.ExactArgs(1),
	RunE:    runBindingsDelete,
}

var bindingsToggleCmd = &cobra.Command{
	Use:   "toggle NAME",
	Short: "Toggle a binding's icon",
	Args:  cobra.ExactArgs(1),
	RunE:  runBindingsToggle,
}

var bindingsRecordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a key combination",
	Long: `Press a key combination anywhere to print it in the form accepted by
--combo. Recording ends when every key is released.`,
	Args: cobra.NoArgs,
	RunE: runBindingsRecord,
}

func init() {
	bindingsListCmd.Flags().StringVarP(&listOutput, "output", "o", formatTable, "output format: table, json or yaml")

	bindingsAddCmd.Flags().StringVar(&bindingCombo, "combo", "", `key combination, e.g. "Ctrl + Shift + M"`)
	bindingsAddCmd.Flags().StringVar(&bindingImage, "image", "", "icon image file")
	_ = bindingsAddCmd.MarkFlagRequired("combo")
	_ = bindingsAddCmd.MarkFlagRequired("image")

	bindingsEditCmd.Flags().StringVar(&bindingName, "name", "", "new name")
	bindingsEditCmd.Flags().StringVar(&bindingCombo, "combo", "", "new key combination")
	bindingsEditCmd.Flags().StringVar(&bindingImage, "image", "", "new icon image file")

	bindingsRecordCmd.Flags().DurationVar(&recordWait, "timeout", 30*time.Second, "give up after this long")

	bindingsCmd.AddCommand(bindingsAddCmd)
	bindingsCmd.AddCommand(bindingsDeleteCmd)
	bindingsCmd.AddCommand(bindingsEditCmd)
	bindingsCmd.AddCommand(bindingsListCmd)
	bindingsCmd.AddCommand(bindingsRecordCmd)
	bindingsCmd.AddCommand(bindingsToggleCmd)
}

func runBindingsList(cmd *cobra.Command, args []string) error {
	if err := checkFormat(listOutput, formatTable, formatJSON, formatYAML); err != nil {
		return err
	}
	a, err := getApp()
	if err != nil {
		return err
	}

	entries, err := a.Catalog.Entries()
	if err != nil {
		return err
	}
	if listOutput != formatTable {
		return writeStructured(cmd.OutOrStdout(), listOutput, bindingRows(entries))
	}

	writeBindingsTable(cmd.OutOrStdout(), entries)
	if isMuted(entries) {
		fmt.Fprintln(cmd.OutOrStdout(), styleWarning.Render("\nSystem Mute is on: only the mute indicator is shown."))
	}
	return nil
}

func runBindingsAdd(cmd *cobra.Command, args []string) error {
	a, err := getApp()
	if err != nil {
		return err
	}

	name := args[0]
	keys := hotkey.ParseCombo(bindingCombo)
	if err := a.Catalog.Add(name, keys, bindingImage); err != nil {
		return err
	}

	fmt.Printf("Binding %q added (%s).\n", name, hotkey.FormatCombo(keys))
	return nil
}

func runBindingsEdit(cmd *cobra.Command, args []string) error {
	a, err := getApp()
	if err != nil {
		return err
	}

	ch := catalog.Change{Name: bindingName, Image: bindingImage}
	if cmd.Flags().Changed("combo") {
		ch.Combo = hotkey.ParseCombo(bindingCombo)
		if ch.Combo == nil {
			ch.Combo = []string{}
		}
	}
	if ch.Name == "" && ch.Combo == nil && ch.Image == "" {
		return fmt.Errorf("nothing to change: pass --name, --combo or --image")
	}

	if err := a.Catalog.Edit(args[0], ch); err != nil {
		return unknownBinding(a.Catalog, err, args[0])
	}
	fmt.Printf("Binding %q updated.\n", args[0])
	return nil
}

func runBindingsDelete(cmd *cobra.Command, args []string) error {
	a, err := getApp()
	if err != nil {
		return err
	}

	if err := a.Catalog.Delete(args[0]); err != nil {
		if errors.Is(err, catalog.ErrReservedBinding) {
			return fmt.Errorf("%w\n\n%s", err, styleHint.Render("Toggle it instead: micoverlay bindings toggle \""+models.SystemMute+"\""))
		}
		return unknownBinding(a.Catalog, err, args[0])
	}
	fmt.Printf("Binding %q deleted.\n", args[0])
	return nil
}

func runBindingsToggle(cmd *cobra.Command, args []string) error {
	a, err := getApp()
	if err != nil {
		return err
	}

	view, err := a.Catalog.Toggle(args[0])
	if err != nil {
		return unknownBinding(a.Catalog, err, args[0])
	}

	bs, err := a.Catalog.Bindings()
	if err != nil {
		return err
	}
	b, _ := bs.Get(args[0])
	if b.Name == "" {
		if i := bs.IndexFold(args[0]); i >= 0 {
			b = bs[i]
		}
	}

	switch {
	case b.IsSystemMute() && view.MuteIndicator:
		fmt.Println("System Mute on: all icons hidden.")
	case b.IsSystemMute():
		fmt.Println("System Mute off: icons restored.")
	default:
		ic, _ := view.Icon(b.Name)
		state := "off"
		if ic.Active && !ic.Visible {
			state = "on (hidden by System Mute)"
		} else if ic.Active {
			state = "on"
		}
		fmt.Printf("%s is %s.\n", b.Name, state)
	}
	return nil
}

func runBindingsRecord(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	ctx, cancelWait := context.WithTimeout(ctx, recordWait)
	defer cancelWait()

	fmt.Println("Press a key combination...")
	keys, err := keyhook.Record(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("no key combination recorded within %s", recordWait)
	}
	if err != nil {
		return err
	}
	fmt.Println(hotkey.FormatCombo(keys))
	return nil
}

// unknownBinding decorates unknown binding errors with close matches.
func unknownBinding(c *catalog.Catalog, err error, name string) error {
	bs, lerr := c.Bindings()
	if lerr != nil {
		return err
	}
	return withSuggestions(err, name, bs)
}
