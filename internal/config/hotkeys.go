package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/micoverlay/micoverlay/internal/models"
)

var (
	// ErrMalformed is returned when a state document cannot be parsed.
	ErrMalformed = errors.New("malformed document")

	// ErrInvalidBindings is returned when saving a binding set that breaks
	// the document invariants.
	ErrInvalidBindings = errors.New("invalid bindings")
)

// hotkeyEntry is the on-disk value of one binding: the combo keys followed
// by the enabled flag, e.g. ["Ctrl", "Shift", "A", false].
type hotkeyEntry struct {
	Keys    []string
	Enabled bool
}

func (e hotkeyEntry) MarshalJSON() ([]byte, error) {
	arr := make([]interface{}, 0, len(e.Keys)+1)
	for _, k := range e.Keys {
		arr = append(arr, k)
	}
	arr = append(arr, e.Enabled)
	return json.Marshal(arr)
}

func (e *hotkeyEntry) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) == 0 {
		return fmt.Errorf("empty binding entry")
	}
	last := raw[len(raw)-1]
	if err := json.Unmarshal(last, &e.Enabled); err != nil {
		return fmt.Errorf("last element must be a boolean, got %s", last)
	}
	e.Keys = make([]string, 0, len(raw)-1)
	for _, r := range raw[:len(raw)-1] {
		var k string
		if err := json.Unmarshal(r, &k); err != nil {
			return fmt.Errorf("key must be a string, got %s", r)
		}
		e.Keys = append(e.Keys, k)
	}
	return nil
}

type hotkeysDoc = orderedmap.OrderedMap[string, hotkeyEntry]

// decodeHotkeys parses the bindings document preserving key order.
func decodeHotkeys(data []byte) (models.Bindings, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: bindings document must be a JSON object", ErrMalformed)
	}

	doc := orderedmap.New[string, hotkeyEntry]()
	if err := json.Unmarshal(trimmed, doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	bindings := make(models.Bindings, 0, doc.Len())
	for pair := doc.Oldest(); pair != nil; pair = pair.Next() {
		if bindings.IndexFold(pair.Key) >= 0 {
			return nil, fmt.Errorf("%w: duplicate binding name %q", ErrMalformed, pair.Key)
		}
		bindings = append(bindings, models.Binding{
			Name:    pair.Key,
			Combo:   pair.Value.Keys,
			Enabled: pair.Value.Enabled,
		})
	}
	return bindings, nil
}

// encodeHotkeys builds the ordered document for a binding set.
func encodeHotkeys(bindings models.Bindings) *hotkeysDoc {
	doc := orderedmap.New[string, hotkeyEntry](len(bindings))
	for _, b := range bindings {
		doc.Set(b.Name, hotkeyEntry{
			Keys:    append([]string(nil), b.Combo...),
			Enabled: b.Enabled,
		})
	}
	return doc
}

// validateBindings checks the invariants every persisted binding set keeps.
func validateBindings(bindings models.Bindings) error {
	if bindings.Index(models.SystemMute) < 0 {
		return fmt.Errorf("%w: %q binding is missing", ErrInvalidBindings, models.SystemMute)
	}
	seen := make(map[string]bool, len(bindings))
	for _, b := range bindings {
		if strings.TrimSpace(b.Name) == "" {
			return fmt.Errorf("%w: empty binding name", ErrInvalidBindings)
		}
		key := strings.ToLower(b.Name)
		if seen[key] {
			return fmt.Errorf("%w: duplicate binding name %q", ErrInvalidBindings, b.Name)
		}
		seen[key] = true
	}
	return nil
}
