package tui

import (
	"strings"
	"testing"

	"github.com/micoverlay/micoverlay/internal/catalog"
	"github.com/micoverlay/micoverlay/internal/models"
)

func entry(name string, enabled bool, combo ...string) catalog.Entry {
	return catalog.Entry{Binding: models.Binding{Name: name, Combo: combo, Enabled: enabled}}
}

func TestBindingListKeepsSelection(t *testing.T) {
	bl := NewBindingList()
	bl.SetEntries([]catalog.Entry{
		entry(models.SystemMute, false),
		entry("Mic", true),
		entry("Cam", true),
	})
	bl.MoveDown()
	bl.MoveDown()
	bl.MoveDown() // past the end
	if got := bl.Selected().Name; got != "Cam" {
		t.Fatalf("selected = %s, want Cam", got)
	}

	// Mic removed: the cursor follows Cam.
	bl.SetEntries([]catalog.Entry{entry(models.SystemMute, false), entry("Cam", true)})
	if got := bl.Selected().Name; got != "Cam" {
		t.Errorf("selected = %s after reload, want Cam", got)
	}

	// Cam removed: the cursor is clamped.
	bl.SetEntries([]catalog.Entry{entry(models.SystemMute, false)})
	if got := bl.Selected().Name; got != models.SystemMute {
		t.Errorf("selected = %s after shrink", got)
	}

	bl.SetEntries(nil)
	if bl.Selected() != nil {
		t.Error("selection in an empty list")
	}
}

func TestBindingListSelectIgnoresCase(t *testing.T) {
	bl := NewBindingList()
	bl.SetEntries([]catalog.Entry{entry(models.SystemMute, false), entry("Mic", true)})
	bl.Select("mic")
	if got := bl.Selected().Name; got != "Mic" {
		t.Errorf("selected = %s", got)
	}
}

func TestBindingListScrolls(t *testing.T) {
	var entries []catalog.Entry
	for _, n := range []string{"A", "B", "C", "D", "E", "F"} {
		entries = append(entries, entry(n, false))
	}
	bl := NewBindingList()
	bl.SetHeight(4) // header plus three rows
	bl.SetEntries(entries)
	for i := 0; i < 5; i++ {
		bl.MoveDown()
	}

	v := bl.View(40)
	if strings.Contains(v, " A ") || !strings.Contains(v, "F") {
		t.Errorf("view not scrolled to the cursor:\n%s", v)
	}
	if !strings.Contains(v, "▲ more") {
		t.Error("missing scroll indicator")
	}
}

func TestEntryBadge(t *testing.T) {
	tests := []struct {
		name  string
		e     catalog.Entry
		muted bool
		want  string
	}{
		{"mute on", entry(models.SystemMute, true), true, "[M]"},
		{"mute off", entry(models.SystemMute, false), false, "[ ]"},
		{"shown", entry("Mic", true), false, "[●]"},
		{"hidden by mute", entry("Mic", true), true, "[~]"},
		{"off", entry("Mic", false), true, "[ ]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			badge, _ := entryBadge(tt.e, tt.muted)
			if !strings.Contains(badge, tt.want) {
				t.Errorf("badge = %q, want %q", badge, tt.want)
			}
		})
	}
}

func TestBindingFormChange(t *testing.T) {
	bf := NewBindingForm("edit", 60)
	bf.PreFill(entry("Mic", true, "Ctrl", "M"))

	if ch := bf.Change(); ch.Name != "" || ch.Combo != nil || ch.Image != "" {
		t.Fatalf("unchanged form = %+v", ch)
	}

	bf.Input().SetValue("  Microphone ")
	bf.SetCombo(nil)
	ch := bf.Change()
	if ch.Name != "Microphone" {
		t.Errorf("name = %q", ch.Name)
	}
	if ch.Combo == nil || len(ch.Combo) != 0 {
		t.Errorf("cleared combo = %#v, want empty non-nil", ch.Combo)
	}
}

func TestBindingFormLocksSystemMuteName(t *testing.T) {
	bf := NewBindingForm("edit", 60)
	bf.PreFill(entry(models.SystemMute, false, "Ctrl", "Shift", "A"))

	if bf.FocusIndex() != fieldCombo {
		t.Fatalf("focus = %d, want combo", bf.FocusIndex())
	}
	seen := map[int]bool{}
	for i := 0; i < 6; i++ {
		bf.FocusNext()
		seen[bf.FocusIndex()] = true
	}
	for i := 0; i < 6; i++ {
		bf.FocusPrev()
		seen[bf.FocusIndex()] = true
	}
	if seen[fieldName] {
		t.Error("focus reached the reserved name")
	}
	if !strings.Contains(bf.View(), "(reserved)") {
		t.Error("view does not mark the name reserved")
	}
}
