package tui

import "github.com/charmbracelet/bubbles/key"

// GlobalKeys are always active.
type GlobalKeys struct {
	Quit key.Binding
	Help key.Binding
}

var globalKeys = GlobalKeys{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
}

// BindingListKeys are active when the binding list is focused.
type BindingListKeys struct {
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Add      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Overlay  key.Binding
	Location key.Binding
	Bigger   key.Binding
	Smaller  key.Binding
	Refresh  key.Binding
}

var bindingListKeys = BindingListKeys{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("j/k", "navigate"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("j/k", "navigate"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("t", " "),
		key.WithHelp("t", "toggle"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e", "enter"),
		key.WithHelp("e", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "delete"),
	),
	Overlay: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "start/stop overlay"),
	),
	Location: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "next location"),
	),
	Bigger: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "bigger icons"),
	),
	Smaller: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "smaller icons"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
}

// OverlayKeys are active when an overlay is shown.
type OverlayKeys struct {
	Save   key.Binding
	Cancel key.Binding
	Tab    key.Binding
	Back   key.Binding
	Record key.Binding
}

var overlayKeys = OverlayKeys{
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("Ctrl+s", "save"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "cancel"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("Tab", "next field"),
	),
	Back: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("Shift+Tab", "previous field"),
	),
	Record: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("Ctrl+r", "record hotkey"),
	),
}

// ConfirmKeys for inline confirmation prompts.
type ConfirmKeys struct {
	Yes    key.Binding
	No     key.Binding
	Cancel key.Binding
}

var confirmKeys = ConfirmKeys{
	Yes: key.NewBinding(
		key.WithKeys("y", "x"),
		key.WithHelp("x/y", "confirm"),
	),
	No: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "cancel"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "cancel"),
	),
}
