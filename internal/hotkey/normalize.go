// Package hotkey turns a stream of global key-down/key-up events into
// discrete "combo fired" events.
package hotkey

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ComboSeparator joins key tokens in the human-readable combo form,
// e.g. "Ctrl + Shift + A".
const ComboSeparator = " + "

// aliases folds side-specific and platform-specific modifier names onto the
// token used in bindings documents.
var aliases = map[string]string{
	"lctrl":         "ctrl",
	"rctrl":         "ctrl",
	"control":       "ctrl",
	"left ctrl":     "ctrl",
	"right ctrl":    "ctrl",
	"lshift":        "shift",
	"rshift":        "shift",
	"left shift":    "shift",
	"right shift":   "shift",
	"lalt":          "alt",
	"ralt":          "alt",
	"alt gr":        "alt",
	"left alt":      "alt",
	"right alt":     "alt",
	"option":        "alt",
	"cmd":           "win",
	"lcmd":          "win",
	"rcmd":          "win",
	"command":       "win",
	"super":         "win",
	"meta":          "win",
	"left windows":  "win",
	"right windows": "win",
	"windows":       "win",
	"return":        "enter",
	"esc":           "escape",
	" ":             "space",
}

// NormalizeKey returns the matching form of a key token: lowercase, with
// modifier aliases folded. Two tokens match iff their normalized forms are
// equal.
func NormalizeKey(key string) string {
	k := strings.ToLower(key)
	if k != " " {
		k = strings.Join(strings.Fields(k), " ")
	}
	if a, ok := aliases[k]; ok {
		return a
	}
	return k
}

// Capitalize returns the display form of a key token: the first letter of
// every word upper-cased, e.g. "page down" -> "Page Down".
func Capitalize(key string) string {
	// Casers keep state, so each call gets its own.
	return cases.Title(language.Und).String(NormalizeKey(key))
}

// ParseCombo splits a combo string into display-form tokens. Both
// "Ctrl + Shift + A" and "ctrl+shift+a" are accepted. Duplicate keys are
// dropped.
func ParseCombo(s string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, part := range splitCombo(s) {
		k := Capitalize(part)
		if k == "" || seen[NormalizeKey(k)] {
			continue
		}
		seen[NormalizeKey(k)] = true
		out = append(out, k)
	}
	return out
}

func splitCombo(s string) []string {
	// A lone "+" (or a trailing "+ +") names the plus key itself.
	fields := strings.Split(s, "+")
	var parts []string
	for i := 0; i < len(fields); i++ {
		f := strings.TrimSpace(fields[i])
		if f == "" && i+1 < len(fields) && strings.TrimSpace(fields[i+1]) == "" {
			parts = append(parts, "+")
			i++
			continue
		}
		if f != "" {
			parts = append(parts, f)
		}
	}
	return parts
}

// FormatCombo renders tokens in the display form used by the CLI and TUI.
func FormatCombo(keys []string) string {
	return strings.Join(keys, ComboSeparator)
}

// keySet is the normalized, order-insensitive form of a combo.
type keySet map[string]struct{}

func newKeySet(keys []string) keySet {
	set := make(keySet, len(keys))
	for _, k := range keys {
		if n := NormalizeKey(k); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}

func (s keySet) has(k string) bool {
	_, ok := s[k]
	return ok
}

// subsetOf reports whether every key of s is in other.
func (s keySet) subsetOf(other keySet) bool {
	for k := range s {
		if !other.has(k) {
			return false
		}
	}
	return true
}
