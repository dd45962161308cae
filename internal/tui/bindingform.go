package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/micoverlay/micoverlay/internal/catalog"
	"github.com/micoverlay/micoverlay/internal/hotkey"
	"github.com/micoverlay/micoverlay/internal/models"
)

// Form field indexes.
const (
	fieldName = iota
	fieldCombo
	fieldImage
	fieldCount
)

// BindingForm is the add/edit binding overlay form.
type BindingForm struct {
	mode    string // "add" or "edit"
	oldName string // For edit mode
	oldKeys string

	inputs    [fieldCount]textinput.Model
	recording bool

	focusIndex int
	width      int
}

// NewBindingForm creates a new binding form.
func NewBindingForm(mode string, width int) *BindingForm {
	placeholders := [fieldCount]string{
		"Binding name, e.g. Mic",
		"Ctrl + Shift + M",
		"Path to an icon image",
	}

	bf := &BindingForm{mode: mode, width: width}
	for i := range bf.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 256
		ti.Width = width - 8
		bf.inputs[i] = ti
	}

	// Focus name first
	bf.inputs[fieldName].Focus()

	return bf
}

// PreFill fills the form with an existing binding for editing.
func (bf *BindingForm) PreFill(e catalog.Entry) {
	bf.oldName = e.Name
	bf.oldKeys = hotkey.FormatCombo(e.Combo)
	bf.inputs[fieldName].SetValue(e.Name)
	bf.inputs[fieldCombo].SetValue(bf.oldKeys)
	if e.IsSystemMute() {
		// The reserved name cannot change.
		bf.focusIndex = fieldCombo
		bf.blurAll()
		bf.focusCurrent()
	}
	bf.inputs[fieldImage].Placeholder = "Leave empty to keep the current image"
}

// FocusNext moves to the next field.
func (bf *BindingForm) FocusNext() {
	bf.blurAll()
	bf.focusIndex = (bf.focusIndex + 1) % fieldCount
	if bf.locked(bf.focusIndex) {
		bf.focusIndex = (bf.focusIndex + 1) % fieldCount
	}
	bf.focusCurrent()
}

// FocusPrev moves to the previous field.
func (bf *BindingForm) FocusPrev() {
	bf.blurAll()
	bf.focusIndex = (bf.focusIndex + fieldCount - 1) % fieldCount
	if bf.locked(bf.focusIndex) {
		bf.focusIndex = (bf.focusIndex + fieldCount - 1) % fieldCount
	}
	bf.focusCurrent()
}

func (bf *BindingForm) locked(field int) bool {
	return field == fieldName && bf.oldName == models.SystemMute
}

func (bf *BindingForm) blurAll() {
	for i := range bf.inputs {
		bf.inputs[i].Blur()
	}
}

func (bf *BindingForm) focusCurrent() {
	bf.inputs[bf.focusIndex].Focus()
}

// SetRecording marks the combo field as waiting for the keyboard hook.
func (bf *BindingForm) SetRecording(on bool) {
	bf.recording = on
}

// Recording reports whether a combo is being recorded.
func (bf *BindingForm) Recording() bool {
	return bf.recording
}

// SetCombo fills the combo field with recorded keys.
func (bf *BindingForm) SetCombo(keys []string) {
	bf.inputs[fieldCombo].SetValue(hotkey.FormatCombo(keys))
	bf.inputs[fieldCombo].CursorEnd()
}

// Name returns the trimmed name value.
func (bf *BindingForm) Name() string {
	return strings.TrimSpace(bf.inputs[fieldName].Value())
}

// Combo returns the parsed combo.
func (bf *BindingForm) Combo() []string {
	return hotkey.ParseCombo(bf.inputs[fieldCombo].Value())
}

// Image returns the trimmed image path.
func (bf *BindingForm) Image() string {
	return strings.TrimSpace(bf.inputs[fieldImage].Value())
}

// Change returns the edit described by the form. Unchanged fields are left
// zero.
func (bf *BindingForm) Change() catalog.Change {
	ch := catalog.Change{Image: bf.Image()}
	if name := bf.Name(); name != bf.oldName {
		ch.Name = name
	}
	if combo := bf.Combo(); hotkey.FormatCombo(combo) != bf.oldKeys {
		ch.Combo = combo
		if ch.Combo == nil {
			ch.Combo = []string{}
		}
	}
	return ch
}

// FocusIndex returns the currently focused field index.
func (bf *BindingForm) FocusIndex() int {
	return bf.focusIndex
}

// Input returns the focused input model for update forwarding.
func (bf *BindingForm) Input() *textinput.Model {
	return &bf.inputs[bf.focusIndex]
}

// View renders the binding form.
func (bf *BindingForm) View() string {
	title := "Add Binding"
	if bf.mode == "edit" {
		title = "Edit Binding"
	}

	formWidth := bf.width
	if formWidth > 70 {
		formWidth = 70
	}
	if formWidth < 30 {
		formWidth = 30
	}

	labels := [fieldCount]string{"Name:", "Hotkey:", "Image:"}
	parts := make([]string, 0, 12)
	parts = append(parts, overlayTitleStyle.Render(title))

	for i, label := range labels {
		l := lipgloss.NewStyle().Bold(true).Render(label)
		field := bf.inputs[i].View()
		switch {
		case bf.locked(i):
			field = overlayDimStyle.Render(bf.inputs[i].Value() + "  (reserved)")
		case i == fieldCombo && bf.recording:
			field = bindingHiddenStyle.Render("Press the combination, then release every key...")
		case i == fieldCombo && bf.focusIndex == fieldCombo:
			field += lipgloss.NewStyle().Foreground(colorDim).Render("  (Ctrl+r to record)")
		}
		parts = append(parts, l, field, "")
	}

	// Footer
	footer := lipgloss.NewStyle().Foreground(colorDim).Render("Ctrl+s save  |  Tab next field  |  Esc cancel")
	parts = append(parts, footer)

	content := strings.Join(parts, "\n")
	return overlayStyle.Width(formWidth).Render(content)
}
