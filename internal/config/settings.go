package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/micoverlay/micoverlay/internal/models"
)

type settingsDoc = orderedmap.OrderedMap[string, json.RawMessage]

// settingsFields returns the schema keys of s in their canonical order.
func settingsFields(s *models.Settings) ([]string, map[string]json.RawMessage, error) {
	keys := []string{"overlay_pid", "overlay_location", "icon_size"}
	values := make(map[string]json.RawMessage, len(keys))

	var err error
	if values["overlay_pid"], err = json.Marshal(s.OverlayPID); err != nil {
		return nil, nil, err
	}
	if values["overlay_location"], err = json.Marshal(s.Location); err != nil {
		return nil, nil, err
	}
	if values["icon_size"], err = json.Marshal(s.IconSize); err != nil {
		return nil, nil, err
	}
	return keys, values, nil
}

// decodeSettingsDoc parses the raw settings document preserving key order.
func decodeSettingsDoc(data []byte) (*settingsDoc, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: settings document must be a JSON object", ErrMalformed)
	}
	doc := orderedmap.New[string, json.RawMessage]()
	if err := json.Unmarshal(trimmed, doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return doc, nil
}

// mergeSettings fills schema keys missing from doc with their defaults and
// returns the typed view. doc itself is left untouched.
func mergeSettings(doc *settingsDoc) (*models.Settings, error) {
	keys, defaults, err := settingsFields(models.NewSettings())
	if err != nil {
		return nil, err
	}

	merged := make(map[string]json.RawMessage, len(keys))
	for _, k := range keys {
		if v, ok := doc.Get(k); ok {
			merged[k] = v
		} else {
			merged[k] = defaults[k]
		}
	}

	data, err := json.Marshal(merged)
	if err != nil {
		return nil, err
	}
	var s models.Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	// Values outside the schema's domain are treated like missing ones.
	if s.IconSize < models.MinIconSize || s.IconSize > models.MaxIconSize {
		s.IconSize = models.DefaultIconSize
	}
	if !s.Location.Valid() {
		s.Location = models.TopRight
	}
	return &s, nil
}

// applySettings writes the schema fields of s into doc, keeping the
// position of keys already present and appending new ones in schema order.
func applySettings(doc *settingsDoc, s *models.Settings) error {
	keys, values, err := settingsFields(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	for _, k := range keys {
		doc.Set(k, values[k])
	}
	return nil
}
