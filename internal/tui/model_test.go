package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/micoverlay/micoverlay/internal/app"
	"github.com/micoverlay/micoverlay/internal/catalog"
	"github.com/micoverlay/micoverlay/internal/models"
	"github.com/micoverlay/micoverlay/internal/supervisor"
)

// procs is an in-memory process table standing in for the renderer.
type procs struct {
	mu    sync.Mutex
	next  int
	alive map[int]chan struct{}
}

func (p *procs) Launch() (int, <-chan struct{}, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.next++
	ch := make(chan struct{})
	p.alive[p.next] = ch
	return p.next, ch, nil
}

func (p *procs) Alive(pid int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.alive[pid]
	return ok
}

func (p *procs) Terminate(pid int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ch, ok := p.alive[pid]; ok {
		close(ch)
		delete(p.alive, pid)
	}
	return nil
}

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	p := &procs{next: 100, alive: make(map[int]chan struct{})}
	a, err := app.NewWith(t.TempDir(), p, p, supervisor.Options{
		StopTimeout:  time.Second,
		StartGrace:   time.Millisecond,
		PollInterval: time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewWith: %v", err)
	}
	return a
}

func writeImage(t *testing.T) string {
	t.Helper()
	img := filepath.Join(t.TempDir(), "icon.png")
	if err := os.WriteFile(img, []byte("png"), 0644); err != nil {
		t.Fatal(err)
	}
	return img
}

// newLoadedModel returns a sized model holding the current documents.
func newLoadedModel(t *testing.T, a *app.App) Model {
	t.Helper()
	m := NewModel(a, &programRef{})
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return reload(t, m)
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func reload(t *testing.T, m Model) Model {
	t.Helper()
	return update(t, m, loadStateCmd(m.app)())
}

func press(t *testing.T, m Model, k tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(k)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func mustBinding(t *testing.T, a *app.App, name string) models.Binding {
	t.Helper()
	bs, err := a.Catalog.Bindings()
	if err != nil {
		t.Fatal(err)
	}
	b, ok := bs.Get(name)
	if !ok {
		t.Fatalf("binding %q missing", name)
	}
	return b
}

func TestToggleSelectedBinding(t *testing.T) {
	a := newTestApp(t)
	if err := a.Catalog.Add("Mic", []string{"Ctrl", "M"}, writeImage(t)); err != nil {
		t.Fatal(err)
	}
	m := newLoadedModel(t, a)

	m, _ = press(t, m, runes("j"))
	if e := m.bindingList.Selected(); e == nil || e.Name != "Mic" {
		t.Fatalf("selected = %+v, want Mic", e)
	}

	m, cmd := press(t, m, runes("t"))
	if cmd == nil {
		t.Fatal("toggle returned no command")
	}
	if _, ok := cmd().(SavedMsg); !ok {
		t.Fatal("toggle did not save")
	}
	if mustBinding(t, a, "Mic").Enabled {
		t.Error("Mic still enabled after toggle")
	}

	m = reload(t, m)
	if e := m.bindingList.Selected(); e == nil || e.Name != "Mic" || e.Enabled {
		t.Errorf("after reload selected = %+v", e)
	}
}

func TestMutedStatus(t *testing.T) {
	a := newTestApp(t)
	m := newLoadedModel(t, a)
	if m.muted() {
		t.Fatal("muted before toggle")
	}

	_, cmd := press(t, m, runes("t"))
	cmd()
	m = reload(t, m)
	if !m.muted() {
		t.Error("System Mute toggle did not mute")
	}
	if !strings.Contains(m.View(), "System Mute on") {
		t.Error("status bar does not show mute")
	}
}

func TestDeleteNeedsSecondPress(t *testing.T) {
	a := newTestApp(t)
	if err := a.Catalog.Add("Mic", []string{"Ctrl", "M"}, writeImage(t)); err != nil {
		t.Fatal(err)
	}
	m := newLoadedModel(t, a)
	m, _ = press(t, m, runes("j"))

	m, cmd := press(t, m, runes("x"))
	if cmd != nil || m.confirmMode != confirmDelete || m.confirmName != "Mic" {
		t.Fatalf("first x: cmd=%v mode=%d name=%q", cmd != nil, m.confirmMode, m.confirmName)
	}

	// n cancels without deleting.
	m, cmd = press(t, m, runes("n"))
	if cmd != nil || m.confirmMode != confirmNone {
		t.Fatal("n did not cancel")
	}
	mustBinding(t, a, "Mic")

	m, _ = press(t, m, runes("x"))
	m, cmd = press(t, m, runes("x"))
	if cmd == nil {
		t.Fatal("second x returned no command")
	}
	if _, ok := cmd().(SavedMsg); !ok {
		t.Fatal("delete failed")
	}
	bs, _ := a.Catalog.Bindings()
	if _, ok := bs.Get("Mic"); ok {
		t.Error("Mic still present after delete")
	}
	if m.confirmMode != confirmNone {
		t.Error("confirm mode not cleared")
	}
}

func TestDeleteSystemMuteRefused(t *testing.T) {
	a := newTestApp(t)
	m := newLoadedModel(t, a)

	m, _ = press(t, m, runes("x"))
	if m.confirmMode != confirmNone {
		t.Error("confirm opened for System Mute")
	}
	if !errors.Is(m.err, catalog.ErrReservedBinding) {
		t.Errorf("err = %v, want ErrReservedBinding", m.err)
	}
}

func TestLocationCycles(t *testing.T) {
	a := newTestApp(t)
	m := newLoadedModel(t, a)
	start := m.settings.Location

	_, cmd := press(t, m, runes("l"))
	if cmd == nil {
		t.Fatal("l returned no command")
	}
	cmd()

	s, err := a.Catalog.Settings()
	if err != nil {
		t.Fatal(err)
	}
	if s.Location != start.Next() {
		t.Errorf("location = %s, want %s", s.Location, start.Next())
	}
}

func TestIconSizeKeys(t *testing.T) {
	tests := []struct {
		name  string
		start int
		key   string
		want  int // 0 means no change requested
	}{
		{"bigger", 44, "+", 49},
		{"bigger with equals", 44, "=", 49},
		{"smaller", 44, "-", 39},
		{"clamped low", 12, "-", 10},
		{"at minimum", 10, "-", 0},
		{"at maximum", 1000, "+", 0},
		{"clamped high", 998, "+", 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestApp(t)
			if err := a.Catalog.SetIconSize(tt.start); err != nil {
				t.Fatal(err)
			}
			m := newLoadedModel(t, a)

			_, cmd := press(t, m, runes(tt.key))
			if tt.want == 0 {
				if cmd != nil {
					t.Fatal("expected no command")
				}
				return
			}
			if cmd == nil {
				t.Fatal("expected a command")
			}
			cmd()
			s, _ := a.Catalog.Settings()
			if s.IconSize != tt.want {
				t.Errorf("icon size = %d, want %d", s.IconSize, tt.want)
			}
		})
	}
}

func TestAddBindingForm(t *testing.T) {
	a := newTestApp(t)
	m := newLoadedModel(t, a)

	m, _ = press(t, m, runes("a"))
	if m.activeOverlay != overlayAddBinding || m.bindingForm == nil {
		t.Fatal("add form not opened")
	}

	// Saving an empty form is refused.
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if !errors.Is(m.err, errNameRequired) {
		t.Fatalf("err = %v, want errNameRequired", m.err)
	}

	m, _ = press(t, m, runes("Cam"))
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = press(t, m, runes("Ctrl + Shift + C"))
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = press(t, m, runes(writeImage(t)))

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatal("save returned no command")
	}
	msg := cmd()
	if _, ok := msg.(BindingSavedMsg); !ok {
		t.Fatalf("save returned %#v", msg)
	}
	m = update(t, m, msg)
	if m.activeOverlay != overlayNone {
		t.Error("form still open after save")
	}

	b := mustBinding(t, a, "Cam")
	if strings.Join(b.Combo, "+") != "Ctrl+Shift+C" || !b.Enabled {
		t.Errorf("Cam = %+v", b)
	}

	m = reload(t, m)
	if e := m.bindingList.Selected(); e == nil || e.Name != "Cam" {
		t.Errorf("selected = %+v, want Cam", e)
	}
}

func TestEditFormRenames(t *testing.T) {
	a := newTestApp(t)
	if err := a.Catalog.Add("Mic", []string{"Ctrl", "M"}, writeImage(t)); err != nil {
		t.Fatal(err)
	}
	m := newLoadedModel(t, a)
	m, _ = press(t, m, runes("j"))

	m, _ = press(t, m, runes("e"))
	if m.activeOverlay != overlayEditBinding {
		t.Fatal("edit form not opened")
	}
	m.bindingForm.Input().SetValue("Microphone")

	_, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatal("save returned no command")
	}
	if msg, ok := cmd().(BindingSavedMsg); !ok || msg.Name != "Microphone" {
		t.Fatalf("save returned %#v", msg)
	}
	b := mustBinding(t, a, "Microphone")
	if strings.Join(b.Combo, "+") != "Ctrl+M" {
		t.Errorf("combo changed: %v", b.Combo)
	}
}

func TestEditUnchangedClosesForm(t *testing.T) {
	a := newTestApp(t)
	m := newLoadedModel(t, a)

	m, _ = press(t, m, runes("e"))
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd != nil {
		t.Error("unchanged form issued a command")
	}
	if m.activeOverlay != overlayNone {
		t.Error("form still open")
	}
}

func TestHelpOverlay(t *testing.T) {
	a := newTestApp(t)
	m := newLoadedModel(t, a)

	m, _ = press(t, m, runes("?"))
	if m.activeOverlay != overlayHelp {
		t.Fatal("help not opened")
	}
	// List keys are ignored while help is open.
	m, cmd := press(t, m, runes("t"))
	if cmd != nil {
		t.Error("t toggled under the help overlay")
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.activeOverlay != overlayNone {
		t.Error("esc did not close help")
	}
}

func TestStartStopKey(t *testing.T) {
	a := newTestApp(t)
	m := newLoadedModel(t, a)

	_, cmd := press(t, m, runes("s"))
	msg, ok := cmd().(OverlayStateMsg)
	if !ok || msg.State != supervisor.Running || msg.PID == 0 {
		t.Fatalf("start returned %#v", msg)
	}
	m = update(t, m, msg)
	if !strings.Contains(m.View(), "Overlay running") {
		t.Error("header does not show a running overlay")
	}

	_, cmd = press(t, m, runes("s"))
	if msg, ok := cmd().(OverlayStateMsg); !ok || msg.State != supervisor.Stopped {
		t.Fatalf("stop returned %#v", msg)
	}
}

func TestViewTooSmall(t *testing.T) {
	a := newTestApp(t)
	m := newLoadedModel(t, a)
	m = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(m.View(), "Terminal too small") {
		t.Error("small terminal not reported")
	}
}

func TestViewListsBindings(t *testing.T) {
	a := newTestApp(t)
	if err := a.Catalog.Add("Mic", []string{"Ctrl", "M"}, writeImage(t)); err != nil {
		t.Fatal(err)
	}
	m := newLoadedModel(t, a)

	v := m.View()
	for _, want := range []string{"Bindings (2)", "System Mute", "Mic", "Ctrl + M"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
