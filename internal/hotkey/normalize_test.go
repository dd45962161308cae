package hotkey

import (
	"reflect"
	"testing"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"A", "a"},
		{"Ctrl", "ctrl"},
		{"lctrl", "ctrl"},
		{"Right Shift", "shift"},
		{"RAlt", "alt"},
		{"cmd", "win"},
		{"Super", "win"},
		{"Page  Down", "page down"},
		{" ", "space"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeKey(tt.in); got != tt.want {
				t.Errorf("NormalizeKey(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCapitalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a", "A"},
		{"ctrl", "Ctrl"},
		{"page down", "Page Down"},
		{"lshift", "Shift"},
		{"f12", "F12"},
		{"+", "+"},
		{"é", "É"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Capitalize(tt.in); got != tt.want {
				t.Errorf("Capitalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseCombo(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Ctrl + Shift + A", []string{"Ctrl", "Shift", "A"}},
		{"ctrl+shift+a", []string{"Ctrl", "Shift", "A"}},
		{"lctrl + rctrl + m", []string{"Ctrl", "M"}},
		{"Ctrl + +", []string{"Ctrl", "+"}},
		{"Page Down", []string{"Page Down"}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseCombo(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseCombo(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatCombo(t *testing.T) {
	if got := FormatCombo([]string{"Ctrl", "Shift", "A"}); got != "Ctrl + Shift + A" {
		t.Errorf("FormatCombo = %q", got)
	}
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()

	r.Press("lctrl")
	r.Press("shift")
	r.Press("shift")
	r.Press("a")
	if r.Release("a") {
		t.Fatal("finished while keys are still held")
	}
	r.Release("shift")
	if !r.Release("ctrl") {
		t.Fatal("not finished after releasing every key")
	}

	want := []string{"Ctrl", "Shift", "A"}
	if got := r.Combo(); !reflect.DeepEqual(got, want) {
		t.Errorf("Combo() = %v, want %v", got, want)
	}

	// Events after completion are ignored.
	r.Press("x")
	if got := r.Combo(); !reflect.DeepEqual(got, want) {
		t.Errorf("Combo() after done = %v", got)
	}
	if !r.Done() {
		t.Error("Done() = false")
	}
}

func TestRecorderIgnoresStrayRelease(t *testing.T) {
	r := NewRecorder()
	if r.Handle(Event{Key: "enter", Down: false}) {
		t.Fatal("stray key-up finished recording")
	}
	r.Handle(Event{Key: "f9", Down: true})
	if !r.Handle(Event{Key: "f9", Down: false}) {
		t.Fatal("recording not finished")
	}
	if got := r.Combo(); !reflect.DeepEqual(got, []string{"F9"}) {
		t.Errorf("Combo() = %v", got)
	}
}
