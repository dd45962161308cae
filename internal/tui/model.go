package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/micoverlay/micoverlay/internal/app"
	"github.com/micoverlay/micoverlay/internal/catalog"
	"github.com/micoverlay/micoverlay/internal/models"
	"github.com/micoverlay/micoverlay/internal/supervisor"
)

// Icon size step and bounds for the +/- keys.
const (
	iconSizeStep = 5
	minKeyedSize = 10
)

// Model is the root Bubbletea model for the TUI.
type Model struct {
	app *app.App

	// Loaded state
	loaded   bool
	settings *models.Settings
	overlay  supervisor.State
	pid      int

	// UI state
	activeOverlay overlayKind // overlayNone, overlayHelp, overlayAddBinding, overlayEditBinding
	splitRatio    float64
	width         int
	height        int

	// Confirm mode
	confirmMode int
	confirmName string

	// Status display
	err       error
	savedText string

	// Child components
	bindingList   *BindingList
	bindingForm   *BindingForm
	pendingSelect string // binding to select after the next reload

	// Program reference for goroutine Send()
	program *programRef
}

// NewModel creates the initial TUI model.
func NewModel(a *app.App, program *programRef) Model {
	return Model{
		app:         a,
		splitRatio:  0.55,
		bindingList: NewBindingList(),
		program:     program,
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadStateCmd(m.app),
		pollOverlayTick(),
	)
}

// Update processes messages and returns an updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {

	// ── Window resize ──────────────────────────────────────────────
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateDimensions()
		return m, nil

	// ── Key events ─────────────────────────────────────────────────
	case tea.KeyMsg:
		return m, m.handleKey(msg)

	// ── Shared state ───────────────────────────────────────────────
	case StateLoadedMsg:
		m.loaded = true
		m.settings = msg.Settings
		m.overlay = msg.Overlay
		m.pid = msg.PID
		m.bindingList.SetEntries(msg.Entries)
		if m.pendingSelect != "" {
			m.bindingList.Select(m.pendingSelect)
			m.pendingSelect = ""
		}
		return m, nil

	case OverlayStateMsg:
		m.overlay = msg.State
		m.pid = msg.PID
		return m, nil

	case FilesChangedMsg:
		return m, loadStateCmd(m.app)

	case SavedMsg:
		if msg.Text != "" {
			m.savedText = msg.Text
			cmds = append(cmds, clearSavedAfter(3*time.Second))
		}
		cmds = append(cmds, loadStateCmd(m.app))
		return m, tea.Batch(cmds...)

	case BindingSavedMsg:
		m.activeOverlay = overlayNone
		m.bindingForm = nil
		m.savedText = "Saved"
		m.pendingSelect = msg.Name
		return m, tea.Batch(clearSavedAfter(3*time.Second), loadStateCmd(m.app))

	case RecordedMsg:
		if m.bindingForm == nil {
			return m, nil
		}
		m.bindingForm.SetRecording(false)
		if msg.Err != nil {
			m.err = msg.Err
			return m, clearErrorAfter(5 * time.Second)
		}
		m.bindingForm.SetCombo(msg.Keys)
		return m, nil

	// ── Polling tick ───────────────────────────────────────────────
	case TickMsg:
		return m, tea.Batch(probeOverlayCmd(m.app), pollOverlayTick())

	// ── Error handling ─────────────────────────────────────────────
	case ErrorMsg:
		m.err = msg.Err
		cmds = append(cmds, clearErrorAfter(5*time.Second), loadStateCmd(m.app))
		return m, tea.Batch(cmds...)

	case ClearErrorMsg:
		m.err = nil
		return m, nil

	case ClearSavedMsg:
		m.savedText = ""
		return m, nil
	}

	return m, nil
}

// handleKey processes key events.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	// Confirm mode captures everything
	if m.confirmMode != confirmNone {
		return m.handleConfirmKey(msg)
	}

	// Overlay captures everything
	if m.activeOverlay != overlayNone {
		return m.handleOverlayKey(msg)
	}

	switch {
	case key.Matches(msg, globalKeys.Quit):
		return m.doQuit()

	case key.Matches(msg, globalKeys.Help):
		m.activeOverlay = overlayHelp
		return nil
	}

	return m.handleBindingListKey(msg)
}

func (m *Model) handleBindingListKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, bindingListKeys.Up):
		m.bindingList.MoveUp()
	case key.Matches(msg, bindingListKeys.Down):
		m.bindingList.MoveDown()
	case key.Matches(msg, bindingListKeys.Toggle):
		if e := m.bindingList.Selected(); e != nil {
			return toggleCmd(m.app, e.Name)
		}
	case key.Matches(msg, bindingListKeys.Add):
		m.openAddBindingForm()
	case key.Matches(msg, bindingListKeys.Edit):
		m.openEditBindingForm()
	case key.Matches(msg, bindingListKeys.Delete):
		return m.confirmDeleteBinding()
	case key.Matches(msg, bindingListKeys.Overlay):
		return startStopCmd(m.app)
	case key.Matches(msg, bindingListKeys.Location):
		if m.settings != nil {
			return setLocationCmd(m.app, m.settings.Location.Next())
		}
	case key.Matches(msg, bindingListKeys.Bigger):
		return m.stepIconSize(iconSizeStep)
	case key.Matches(msg, bindingListKeys.Smaller):
		return m.stepIconSize(-iconSizeStep)
	case key.Matches(msg, bindingListKeys.Refresh):
		return loadStateCmd(m.app)
	}
	return nil
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, confirmKeys.Yes):
		if m.confirmMode == confirmDelete {
			m.confirmMode = confirmNone
			return deleteBindingCmd(m.app, m.confirmName)
		}
	case key.Matches(msg, confirmKeys.No), key.Matches(msg, confirmKeys.Cancel):
		m.confirmMode = confirmNone
	}
	return nil
}

func (m *Model) handleOverlayKey(msg tea.KeyMsg) tea.Cmd {
	switch m.activeOverlay {
	case overlayHelp:
		if key.Matches(msg, overlayKeys.Cancel) || key.Matches(msg, globalKeys.Help) {
			m.activeOverlay = overlayNone
		}
		return nil

	case overlayAddBinding, overlayEditBinding:
		return m.handleBindingFormKey(msg)
	}
	return nil
}

func (m *Model) handleBindingFormKey(msg tea.KeyMsg) tea.Cmd {
	if m.bindingForm == nil {
		return nil
	}
	// Keys typed while recording belong to the combo, not the form.
	if m.bindingForm.Recording() {
		return nil
	}

	switch {
	case key.Matches(msg, overlayKeys.Save):
		return m.saveBindingForm()
	case key.Matches(msg, overlayKeys.Cancel):
		m.activeOverlay = overlayNone
		m.bindingForm = nil
		return nil
	case key.Matches(msg, overlayKeys.Tab):
		m.bindingForm.FocusNext()
		return nil
	case key.Matches(msg, overlayKeys.Back):
		m.bindingForm.FocusPrev()
		return nil
	case key.Matches(msg, overlayKeys.Record):
		m.bindingForm.SetRecording(true)
		return recordComboCmd()
	}

	// Forward to active input
	ti := m.bindingForm.Input()
	newTI, _ := ti.Update(msg)
	*ti = newTI
	return nil
}

// ── Binding actions ──────────────────────────────────────────────

func (m *Model) formWidth() int {
	w := m.width - 10
	if w > 70 {
		w = 70
	}
	return w
}

func (m *Model) openAddBindingForm() {
	m.bindingForm = NewBindingForm("add", m.formWidth())
	m.activeOverlay = overlayAddBinding
}

func (m *Model) openEditBindingForm() {
	e := m.bindingList.Selected()
	if e == nil {
		return
	}
	m.bindingForm = NewBindingForm("edit", m.formWidth())
	m.bindingForm.PreFill(*e)
	m.activeOverlay = overlayEditBinding
}

func (m *Model) saveBindingForm() tea.Cmd {
	bf := m.bindingForm
	if bf == nil {
		return nil
	}

	if bf.mode == "add" {
		switch {
		case bf.Name() == "":
			m.err = errNameRequired
		case len(bf.Combo()) == 0:
			m.err = errComboRequired
		case bf.Image() == "":
			m.err = errImageRequired
		default:
			return addBindingCmd(m.app, bf.Name(), bf.Combo(), bf.Image())
		}
		return clearErrorAfter(3 * time.Second)
	}

	// Edit mode
	ch := bf.Change()
	if ch.Name == "" && ch.Combo == nil && ch.Image == "" {
		m.activeOverlay = overlayNone
		m.bindingForm = nil
		return nil
	}
	return editBindingCmd(m.app, bf.oldName, ch)
}

func (m *Model) confirmDeleteBinding() tea.Cmd {
	e := m.bindingList.Selected()
	if e == nil {
		return nil
	}
	if e.IsSystemMute() {
		m.err = fmt.Errorf("%w: %s cannot be deleted", catalog.ErrReservedBinding, models.SystemMute)
		return clearErrorAfter(3 * time.Second)
	}
	m.confirmMode = confirmDelete
	m.confirmName = e.Name
	return nil
}

func (m *Model) stepIconSize(delta int) tea.Cmd {
	if m.settings == nil {
		return nil
	}
	size := m.settings.IconSize + delta
	if size < minKeyedSize {
		size = minKeyedSize
	}
	if size > models.MaxIconSize {
		size = models.MaxIconSize
	}
	if size == m.settings.IconSize {
		return nil
	}
	return setIconSizeCmd(m.app, size)
}

func (m *Model) muted() bool {
	return m.bindingList.muted()
}

// doQuit clears the program reference and quits.
func (m *Model) doQuit() tea.Cmd {
	if m.program != nil {
		m.program.Clear()
	}
	return tea.Quit
}

func (m *Model) updateDimensions() {
	layout := computeLayout(m.width, m.height, m.splitRatio)
	m.bindingList.SetHeight(layout.innerHeight())
}

// ── View ─────────────────────────────────────────────────────────

// View renders the TUI.
func (m Model) View() string {
	// Minimum size check
	if m.width < 60 || m.height < 16 {
		sizeStr := fmt.Sprintf("%dx%d", m.width, m.height)
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(colorYellow).
			Render(lipgloss.JoinVertical(lipgloss.Center,
				"Terminal too small",
				lipgloss.NewStyle().Foreground(colorDim).Render(
					"Need 60x16, have "+lipgloss.NewStyle().Bold(true).Render(sizeStr),
				),
			))
	}

	if !m.loaded {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(colorDim).
			Render("Loading...")
	}

	layout := computeLayout(m.width, m.height, m.splitRatio)

	header := renderHeader(m.app.Store.Dir(), m.overlay, m.pid, m.width)
	left := m.bindingList.View(layout.leftWidth - 2)
	right := renderSettingsPanel(m.settings, m.bindingList.Entries(), m.app.Store.IconsDir(), layout.rightWidth-2)
	panels := renderPanels(left, right, layout)
	statusBar := renderStatusBar(&m, m.width)

	view := lipgloss.JoinVertical(lipgloss.Left, header, panels, statusBar)

	// Overlay
	if m.activeOverlay != overlayNone {
		var overlayContent string
		switch m.activeOverlay {
		case overlayHelp:
			overlayContent = renderHelp(m.width)
		case overlayAddBinding, overlayEditBinding:
			if m.bindingForm != nil {
				overlayContent = m.bindingForm.View()
			}
		}
		if overlayContent != "" {
			view = renderOverlay(view, overlayContent, m.width, m.height)
		}
	}

	return view
}

// sentinel errors
var (
	errNameRequired  = errors.New("name is required")
	errComboRequired = errors.New("hotkey is required")
	errImageRequired = errors.New("image is required")
)
