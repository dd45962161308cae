package cli

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/micoverlay/micoverlay/internal/catalog"
	"github.com/micoverlay/micoverlay/internal/models"
	"github.com/micoverlay/micoverlay/internal/toggle"
)

func TestSuggestNames(t *testing.T) {
	names := []string{models.SystemMute, "Mic", "Microphone", "Camera"}

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"subsequence", "mic", []string{"Mic", "Microphone"}},
		{"typo", "Mci", []string{"Mic"}},
		{"prefix of reserved", "system", []string{models.SystemMute}},
		{"nothing close", "Keyboard", nil},
		{"empty", "  ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := suggestNames(tt.input, names)
			if fmt.Sprint(got) != fmt.Sprint(tt.want) {
				t.Errorf("suggestNames(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestWithSuggestions(t *testing.T) {
	bs := models.Bindings{models.NewSystemMuteBinding(), {Name: "Mic"}}

	err := withSuggestions(fmt.Errorf("%w: %q", toggle.ErrUnknownBinding, "Mci"), "Mci", bs)
	if !errors.Is(err, toggle.ErrUnknownBinding) {
		t.Fatalf("wrapped error lost: %v", err)
	}
	if !strings.Contains(err.Error(), `Did you mean "Mic"?`) {
		t.Errorf("err = %v", err)
	}

	other := errors.New("disk full")
	if got := withSuggestions(other, "Mci", bs); got != other {
		t.Errorf("unrelated error rewritten: %v", got)
	}
}

func TestParseLocation(t *testing.T) {
	tests := []struct {
		input string
		want  models.Location
		err   bool
	}{
		{"Top Right", models.TopRight, false},
		{"top-right", models.TopRight, false},
		{"BOTTOM_LEFT", models.BottomLeft, false},
		{"  bottom   right ", models.BottomRight, false},
		{"next", models.TopRight.Next(), false},
		{"middle", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseLocation(tt.input, models.TopRight)
			if tt.err {
				if !errors.Is(err, catalog.ErrInvalidLocation) {
					t.Errorf("err = %v, want ErrInvalidLocation", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("parseLocation(%q) = %q, %v; want %q", tt.input, got, err, tt.want)
			}
		})
	}
}

func TestCheckFormat(t *testing.T) {
	if err := checkFormat(formatYAML, formatTable, formatJSON, formatYAML); err != nil {
		t.Errorf("yaml rejected: %v", err)
	}
	if err := checkFormat("xml", formatTable, formatJSON); err == nil {
		t.Error("xml accepted")
	}
}

func testEntries() []catalog.Entry {
	return []catalog.Entry{
		{Binding: models.Binding{Name: models.SystemMute, Combo: []string{"Ctrl", "Shift", "A"}, Enabled: true}, Visible: true},
		{Binding: models.Binding{Name: "Mic", Combo: []string{"Ctrl", "M"}, Enabled: true}, Image: "/data/icons/Mic.png"},
		{Binding: models.Binding{Name: "Cam", Combo: []string{"Ctrl", "C"}}},
	}
}

func TestWriteBindingsTable(t *testing.T) {
	var buf bytes.Buffer
	writeBindingsTable(&buf, testEntries())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	checks := []struct {
		line int
		want []string
	}{
		{0, []string{"NAME", "HOTKEY", "STATE", "IMAGE"}},
		{1, []string{models.SystemMute, "Ctrl + Shift + A", "muted"}},
		{2, []string{"Mic", "hidden", "/data/icons/Mic.png"}},
		{3, []string{"Cam", "off", "-"}},
	}
	for _, c := range checks {
		for _, w := range c.want {
			if !strings.Contains(lines[c.line], w) {
				t.Errorf("line %d %q missing %q", c.line, lines[c.line], w)
			}
		}
	}
	// Hotkey column starts at the same offset on every row.
	col := strings.Index(lines[0], "HOTKEY")
	if strings.Index(lines[3], "Ctrl + C") != col {
		t.Errorf("hotkey column misaligned:\n%s", buf.String())
	}
}

func TestWriteStructured(t *testing.T) {
	rows := bindingRows(testEntries())

	var js bytes.Buffer
	if err := writeStructured(&js, formatJSON, rows); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(js.String(), `"name": "Mic"`) || !strings.Contains(js.String(), `"visible": true`) {
		t.Errorf("json:\n%s", js.String())
	}
	if strings.Count(js.String(), `"image"`) != 1 {
		t.Errorf("empty images not omitted:\n%s", js.String())
	}

	var ym bytes.Buffer
	if err := writeStructured(&ym, formatYAML, rows); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(ym.String(), "- name: Mic") || !strings.Contains(ym.String(), "  combo:") {
		t.Errorf("yaml:\n%s", ym.String())
	}

	if err := writeStructured(&bytes.Buffer{}, "toml", rows); err == nil {
		t.Error("toml accepted")
	}
}

func TestStateLabel(t *testing.T) {
	es := testEntries()
	if got := stateLabel(es[1], false); got != "shown" {
		t.Errorf("unmuted enabled = %s", got)
	}
	if got := stateLabel(es[0], false); got != "muted" {
		t.Errorf("mute binding = %s", got)
	}
}
