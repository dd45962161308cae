package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/micoverlay/micoverlay/internal/catalog"
	"github.com/micoverlay/micoverlay/internal/hotkey"
)

// BindingList is the binding list component for the left panel.
type BindingList struct {
	entries      []catalog.Entry
	cursor       int
	scrollOffset int
	height       int
}

// NewBindingList creates a new binding list.
func NewBindingList() *BindingList {
	return &BindingList{}
}

// SetEntries replaces the list, keeping the cursor on the same binding
// when it still exists.
func (bl *BindingList) SetEntries(entries []catalog.Entry) {
	selected := ""
	if e := bl.Selected(); e != nil {
		selected = e.Name
	}
	bl.entries = entries
	for i, e := range entries {
		if e.Name == selected {
			bl.cursor = i
		}
	}
	// Keep cursor in bounds
	if bl.cursor >= len(bl.entries) {
		bl.cursor = len(bl.entries) - 1
	}
	if bl.cursor < 0 {
		bl.cursor = 0
	}
	bl.ensureVisible()
}

// Select moves the cursor to the named binding.
func (bl *BindingList) Select(name string) {
	for i, e := range bl.entries {
		if strings.EqualFold(e.Name, name) {
			bl.cursor = i
			bl.ensureVisible()
			return
		}
	}
}

// Entries returns the listed bindings.
func (bl *BindingList) Entries() []catalog.Entry {
	return bl.entries
}

// SetHeight sets the visible height.
func (bl *BindingList) SetHeight(h int) {
	bl.height = h
	bl.ensureVisible()
}

// Selected returns the binding under the cursor, or nil.
func (bl *BindingList) Selected() *catalog.Entry {
	if bl.cursor < 0 || bl.cursor >= len(bl.entries) {
		return nil
	}
	return &bl.entries[bl.cursor]
}

// MoveUp moves the cursor up.
func (bl *BindingList) MoveUp() {
	if bl.cursor > 0 {
		bl.cursor--
	}
	bl.ensureVisible()
}

// MoveDown moves the cursor down.
func (bl *BindingList) MoveDown() {
	if bl.cursor < len(bl.entries)-1 {
		bl.cursor++
	}
	bl.ensureVisible()
}

func (bl *BindingList) ensureVisible() {
	rows := bl.rows()
	if bl.cursor < bl.scrollOffset {
		bl.scrollOffset = bl.cursor
	}
	if rows > 0 && bl.cursor >= bl.scrollOffset+rows {
		bl.scrollOffset = bl.cursor - rows + 1
	}
}

// rows is the number of entry lines that fit below the header.
func (bl *BindingList) rows() int {
	if bl.height <= 1 {
		return len(bl.entries)
	}
	return bl.height - 1
}

func (bl *BindingList) muted() bool {
	for _, e := range bl.entries {
		if e.IsSystemMute() {
			return e.Enabled
		}
	}
	return false
}

// View renders the binding list.
func (bl *BindingList) View(width int) string {
	if len(bl.entries) == 0 {
		return lipgloss.NewStyle().Foreground(colorDim).Render("No bindings. Press 'a' to add one.")
	}

	lines := []string{sectionHeaderStyle.Render(fmt.Sprintf("Bindings (%d)", len(bl.entries)))}
	end := bl.scrollOffset + bl.rows()
	if end > len(bl.entries) {
		end = len(bl.entries)
	}

	muted := bl.muted()
	nameW := 0
	for _, e := range bl.entries {
		nameW = max(nameW, lipgloss.Width(e.Name))
	}

	for i := bl.scrollOffset; i < end; i++ {
		e := bl.entries[i]
		badge, style := entryBadge(e, muted)
		name := e.Name + strings.Repeat(" ", nameW-lipgloss.Width(e.Name))
		text := fmt.Sprintf("%s %s  %s", badge, name, comboStyle.Render(hotkey.FormatCombo(e.Combo)))
		if e.Image == "" && !e.IsSystemMute() {
			text += bindingHiddenStyle.Render("  (no image)")
		}

		// Truncate to fit panel width (2 for indent prefix)
		if maxWidth := width - 2; maxWidth > 0 {
			text = ansi.Truncate(text, maxWidth, "…")
		}

		line := style.Render(text)
		if i == bl.cursor {
			line = selectedItemStyle.Width(width - 2).Render(text)
		}
		lines = append(lines, "  "+line)
	}

	// Scroll indicators
	if bl.scrollOffset > 0 {
		lines = append([]string{lines[0], lipgloss.NewStyle().Foreground(colorDim).Render("  ▲ more")}, lines[1:]...)
	}
	if end < len(bl.entries) {
		lines = append(lines, lipgloss.NewStyle().Foreground(colorDim).Render("  ▼ more"))
	}

	return strings.Join(lines, "\n")
}

func entryBadge(e catalog.Entry, muted bool) (string, lipgloss.Style) {
	switch {
	case e.IsSystemMute() && e.Enabled:
		return bindingMuteStyle.Render("[M]"), bindingMuteStyle
	case e.IsSystemMute():
		return bindingOffStyle.Render("[ ]"), lipgloss.NewStyle()
	case e.Enabled && muted:
		return bindingHiddenStyle.Render("[~]"), bindingHiddenStyle
	case e.Enabled:
		return bindingShownStyle.Render("[●]"), bindingShownStyle
	default:
		return bindingOffStyle.Render("[ ]"), lipgloss.NewStyle()
	}
}
