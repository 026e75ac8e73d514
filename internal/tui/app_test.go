package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tripcal/internal/agenda"
	"tripcal/internal/calendar"
	"tripcal/internal/config"
	"tripcal/internal/locale"
	"tripcal/internal/tui/messages"
)

var fixedNow = time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T, opts Options) AppModel {
	t.Helper()
	cfg := config.Default()
	cfg.TripsDir = t.TempDir()
	cfg.BlackoutICS = ""
	cfg.FutureScrollRange = 2
	cfg.Normalize()

	opts.Now = func() time.Time { return fixedNow }
	return NewAppModel(cfg, opts)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(AppModel)
	if !ok {
		t.Fatalf("expected AppModel, got %T", next)
	}
	return am, cmd
}

func TestAppModel_PressSelectsDay(t *testing.T) {
	var pressed []calendar.CalendarDate
	m := newTestApp(t, Options{OnPress: func(d calendar.CalendarDate) { pressed = append(pressed, d) }})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected press command")
	}
	m, _ = update(t, m, cmd())

	if m.selected != "2024-03-10" {
		t.Errorf("expected 2024-03-10 selected, got %q", m.selected)
	}
	if len(pressed) != 1 || pressed[0].DateString != "2024-03-10" {
		t.Errorf("expected handler called once, got %+v", pressed)
	}
	if !strings.Contains(m.status, "Sunday, 10 March 2024") {
		t.Errorf("unexpected status %q", m.status)
	}

	// moving on and pressing again replaces the selection
	m, _ = update(t, m, runes("l"))
	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, cmd())
	if m.selected != "2024-03-11" {
		t.Errorf("expected 2024-03-11 selected, got %q", m.selected)
	}

	m, _ = update(t, m, runes("x"))
	if m.selected != "" {
		t.Errorf("expected selection cleared, got %q", m.selected)
	}
}

func TestAppModel_BlockedDayRejected(t *testing.T) {
	m := newTestApp(t, Options{})
	m, _ = update(t, m, messages.MarksLoadedMsg{Snapshot: agenda.Snapshot{
		Blackout: []string{"2024-03-10"},
	}})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected rejection command")
	}
	m, _ = update(t, m, cmd())

	if m.selected != "" {
		t.Errorf("blocked day must not be selected, got %q", m.selected)
	}
	if !m.statusErr || !strings.Contains(m.status, "blackout") {
		t.Errorf("expected blackout status, got %q", m.status)
	}
}

func TestAppModel_LoadMarksFromDisk(t *testing.T) {
	m := newTestApp(t, Options{})
	trip := "---\ndate: \"2024-03-12\"\nstatus: full\n---\n# Full trip\n"
	if err := os.WriteFile(filepath.Join(m.cfg.TripsDir, "full.md"), []byte(trip), 0644); err != nil {
		t.Fatal(err)
	}

	msg := m.loadMarks()()
	m, _ = update(t, m, msg)

	if len(m.snapshot.Trips) != 1 {
		t.Fatalf("expected 1 trip loaded, got %d", len(m.snapshot.Trips))
	}
	m, _ = update(t, m, runes("l"))
	m, _ = update(t, m, runes("l"))
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if _, ok := cmd().(messages.PressRejectedMsg); !ok {
		t.Errorf("expected full trip day to reject presses, got %T", cmd())
	}
}

func TestAppModel_DateJump(t *testing.T) {
	m := newTestApp(t, Options{})

	m, _ = update(t, m, runes("/"))
	if m.overlay != overlayDateInput {
		t.Fatal("expected date input overlay")
	}

	m, _ = update(t, m, messages.JumpToDateMsg{Date: "2024-05-20"})
	if m.overlay != overlayNone || m.list.CursorISO() != "2024-05-20" {
		t.Errorf("expected jump to 2024-05-20, got overlay=%d cursor=%s", m.overlay, m.list.CursorISO())
	}

	m, _ = update(t, m, runes("/"))
	m, _ = update(t, m, messages.JumpToDateMsg{Date: "2025-01-01"})
	if m.overlay != overlayDateInput {
		t.Error("expected overlay to stay open for a date outside the calendar")
	}
	m, _ = update(t, m, messages.CloseOverlayMsg{})
	if m.overlay != overlayNone {
		t.Error("expected overlay closed")
	}
}

func TestAppModel_LocaleChange(t *testing.T) {
	m := newTestApp(t, Options{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 40})

	m, _ = update(t, m, runes("L"))
	if m.overlay != overlayLocalePicker {
		t.Fatal("expected locale picker overlay")
	}
	m, _ = update(t, m, messages.LocaleChangedMsg{Locale: locale.Resolve("de")})
	if m.loc.String() != "de-DE" || m.overlay != overlayNone {
		t.Errorf("expected de-DE and closed overlay, got %s / %d", m.loc, m.overlay)
	}
	if !strings.Contains(m.View(), "März 2024") {
		t.Error("expected German month title in view")
	}
}

func TestAppModel_SourcesChanged(t *testing.T) {
	changes := make(chan struct{}, 1)
	m := newTestApp(t, Options{Changes: changes})

	changes <- struct{}{}
	msg := m.waitForChange()()
	if _, ok := msg.(messages.SourcesChangedMsg); !ok {
		t.Fatalf("expected SourcesChangedMsg, got %T", msg)
	}
	_, cmd := update(t, m, msg)
	if cmd == nil {
		t.Error("expected reload command")
	}

	close(changes)
	if msg := m.waitForChange()(); msg != nil {
		t.Errorf("expected nil after channel close, got %T", msg)
	}
}

func TestAppModel_HelpAndQuit(t *testing.T) {
	m := newTestApp(t, Options{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 40})

	m, _ = update(t, m, runes("?"))
	if !m.showHelp || !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("expected help popup")
	}
	m, _ = update(t, m, runes("j"))
	if m.showHelp {
		t.Error("expected any key to close help")
	}
	if m.list.CursorISO() != "2024-03-10" {
		t.Error("closing help must not move the cursor")
	}

	_, cmd := update(t, m, runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected QuitMsg, got %T", cmd())
	}
}
