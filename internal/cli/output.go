package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	"github.com/micoverlay/micoverlay/internal/catalog"
	"github.com/micoverlay/micoverlay/internal/hotkey"
)

// Output formats accepted by -o.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func checkFormat(format string, allowed ...string) error {
	for _, f := range allowed {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("unknown output format %q (want %s)", format, strings.Join(allowed, ", "))
}

// bindingRow is the machine-readable form of a binding.
type bindingRow struct {
	Name    string   `json:"name" yaml:"name"`
	Combo   []string `json:"combo" yaml:"combo"`
	Enabled bool     `json:"enabled" yaml:"enabled"`
	Visible bool     `json:"visible" yaml:"visible"`
	Image   string   `json:"image,omitempty" yaml:"image,omitempty"`
}

func bindingRows(entries []catalog.Entry) []bindingRow {
	rows := make([]bindingRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, bindingRow{
			Name:    e.Name,
			Combo:   e.Combo,
			Enabled: e.Enabled,
			Visible: e.Visible,
			Image:   e.Image,
		})
	}
	return rows
}

func writeStructured(w io.Writer, format string, v interface{}) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	}
	return checkFormat(format, formatJSON, formatYAML)
}

// stateLabel describes what the overlay shows for a binding.
func stateLabel(e catalog.Entry, muted bool) string {
	switch {
	case e.IsSystemMute() && e.Enabled:
		return "muted"
	case e.IsSystemMute():
		return "off"
	case e.Enabled && muted:
		return "hidden"
	case e.Enabled:
		return "shown"
	default:
		return "off"
	}
}

var badgeStyles = map[string]lipgloss.Style{
	"muted":  badgeMuted,
	"hidden": badgeHidden,
	"shown":  badgeShown,
	"off":    badgeOff,
}

func isMuted(entries []catalog.Entry) bool {
	for _, e := range entries {
		if e.IsSystemMute() {
			return e.Enabled
		}
	}
	return false
}

// writeBindingsTable prints entries as aligned columns. Widths are measured
// in terminal cells so wide names line up.
func writeBindingsTable(w io.Writer, entries []catalog.Entry) {
	muted := isMuted(entries)

	nameW, comboW := runewidth.StringWidth("NAME"), runewidth.StringWidth("HOTKEY")
	for _, e := range entries {
		nameW = max(nameW, runewidth.StringWidth(e.Name))
		comboW = max(comboW, runewidth.StringWidth(hotkey.FormatCombo(e.Combo)))
	}

	fmt.Fprintf(w, "%s  %s  %s  %s\n",
		styleHeader.Render(runewidth.FillRight("NAME", nameW)),
		styleHeader.Render(runewidth.FillRight("HOTKEY", comboW)),
		styleHeader.Render(runewidth.FillRight("STATE", 6)),
		styleHeader.Render("IMAGE"))
	for _, e := range entries {
		img := "-"
		if e.Image != "" {
			img = e.Image
		}
		label := stateLabel(e, muted)
		fmt.Fprintf(w, "%s  %s  %s%s  %s\n",
			runewidth.FillRight(e.Name, nameW),
			runewidth.FillRight(hotkey.FormatCombo(e.Combo), comboW),
			badgeStyles[label].Render(label), strings.Repeat(" ", 6-len(label)),
			styleHint.Render(img))
	}
}
