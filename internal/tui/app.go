package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tripcal/internal/agenda"
	"tripcal/internal/calendar"
	"tripcal/internal/config"
	"tripcal/internal/locale"
	"tripcal/internal/logs"
	"tripcal/internal/tui/messages"
	"tripcal/internal/tui/monthlist"
	"tripcal/internal/tui/shared"
	"tripcal/internal/tui/theme"
)

type overlay int

const (
	overlayNone overlay = iota
	overlayDateInput
	overlayLocalePicker
)

// Options wires the app to the outside world. Zero values are fine.
type Options struct {
	Now     func() time.Time
	Changes <-chan struct{}     // one receive per change to trip or blackout files
	OnPress calendar.DayHandler // called for every accepted press
	Cache   *calendar.GridCache
}

// AppModel is the root model that dispatches to the month list and overlays
type AppModel struct {
	cfg     *config.Config
	source  agenda.Source
	cache   *calendar.GridCache
	now     func() time.Time
	changes <-chan struct{}
	onPress calendar.DayHandler

	loc      locale.Locale
	snapshot agenda.Snapshot
	selected string

	list         monthlist.Model
	dateInput    monthlist.DateInputModel
	localePicker monthlist.LocalePickerModel
	overlay      overlay

	status    string
	statusErr bool
	showHelp  bool
	width     int
	height    int
	ready     bool
}

// NewAppModel creates the root application model
func NewAppModel(cfg *config.Config, opts Options) AppModel {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Cache == nil {
		opts.Cache = calendar.NewGridCache()
	}

	m := AppModel{
		cfg:     cfg,
		source:  agenda.Source{TripsDir: cfg.TripsDir, BlackoutICS: cfg.BlackoutICS},
		cache:   opts.Cache,
		now:     opts.Now,
		changes: opts.Changes,
		onPress: opts.OnPress,
		loc:     cfg.LocaleValue(),
	}

	now := m.now()
	series := calendar.NewSeries(cfg.SeriesOptions(now, nil), m.cache)
	m.list = monthlist.New(series, m.loc, theme.NewStyles(cfg.Theme), m.today(now))
	return m
}

func (m AppModel) today(now time.Time) time.Time {
	t, _ := calendar.ParseISO(calendar.TodayISO(now, m.cfg.TodayLocation()))
	return t
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.loadMarks(), m.waitForChange())
}

func (m AppModel) seriesRange() agenda.DateRange {
	now := m.now()
	return agenda.SeriesRange(calendar.NewSeries(m.cfg.SeriesOptions(now, nil), m.cache))
}

func (m AppModel) loadMarks() tea.Cmd {
	src := m.source
	r := m.seriesRange()
	return func() tea.Msg {
		snap, err := src.Query(r)
		return messages.MarksLoadedMsg{Snapshot: snap, Err: err}
	}
}

func (m AppModel) waitForChange() tea.Cmd {
	ch := m.changes
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return messages.SourcesChangedMsg{}
	}
}

// rebuild recomputes the series from the current marks and selection.
func (m *AppModel) rebuild() {
	now := m.now()
	opts := m.cfg.SeriesOptions(now, m.snapshot.Marks(m.selected))
	m.list.SetSeries(calendar.NewSeries(opts, m.cache))
	m.list.SetToday(m.today(now))
}

func (m *AppModel) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.list.SetSize(msg.Width, m.contentHeight())
		return m, nil

	case messages.MarksLoadedMsg:
		if msg.Err != nil {
			logs.Logger.Errorw("loading marks failed", "error", msg.Err)
			m.setStatus("Could not load trips: "+msg.Err.Error(), true)
			return m, nil
		}
		m.snapshot = msg.Snapshot
		m.rebuild()
		return m, nil

	case messages.SourcesChangedMsg:
		logs.Logger.Debugw("sources changed, reloading")
		return m, tea.Batch(m.loadMarks(), m.waitForChange())

	case messages.DayPressedMsg:
		m.selected = msg.Date.DateString
		m.rebuild()
		m.setStatus("Selected "+m.loc.LongDate(time.UnixMilli(msg.Date.Timestamp)), false)
		logs.Logger.Infow("day pressed", "date", msg.Date.DateString)
		if m.onPress != nil {
			m.onPress(msg.Date)
		}
		return m, nil

	case messages.PressRejectedMsg:
		m.setStatus(m.rejectReason(msg.ISODate), true)
		return m, nil

	case messages.JumpToDateMsg:
		t, err := calendar.ParseISO(msg.Date)
		if err != nil || !m.list.JumpTo(t) {
			m.dateInput.SetError(fmt.Errorf("%s is outside the calendar", msg.Date))
			return m, nil
		}
		m.overlay = overlayNone
		return m, nil

	case messages.LocaleChangedMsg:
		m.loc = msg.Locale
		m.list.SetLocale(msg.Locale)
		m.overlay = overlayNone
		m.setStatus("Locale: "+msg.Locale.SelfName(), false)
		return m, nil

	case messages.CloseOverlayMsg:
		m.overlay = overlayNone
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// Dismiss help overlay on any key
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		switch m.overlay {
		case overlayDateInput:
			var cmd tea.Cmd
			m.dateInput, cmd = m.dateInput.Update(msg)
			return m, cmd
		case overlayLocalePicker:
			var cmd tea.Cmd
			m.localePicker, cmd = m.localePicker.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "?":
			m.showHelp = true
			return m, nil
		case "/":
			m.dateInput = monthlist.NewDateInputModel(m.today(m.now()))
			m.overlay = overlayDateInput
			return m, m.dateInput.Init()
		case "L":
			m.localePicker = monthlist.NewLocalePickerModel(m.loc)
			m.overlay = overlayLocalePicker
			return m, m.localePicker.Init()
		case "x":
			if m.selected != "" {
				m.selected = ""
				m.rebuild()
				m.setStatus("Selection cleared", false)
			}
			return m, nil
		case "r":
			return m, m.loadMarks()
		}
		m.setStatus("", false)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m AppModel) rejectReason(iso string) string {
	info := m.snapshot.Day(iso)
	switch {
	case info.Blackout:
		return iso + " is a blackout day"
	case len(info.Trips) > 0:
		return iso + " is fully booked"
	}
	return iso + " is not available"
}

// contentHeight reserves the detail line and the status bar.
func (m AppModel) contentHeight() int {
	return max(m.height-4, 0)
}

func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return shared.RenderHelpPopup("tripcal - Keyboard Shortcuts", helpSections, m.width, m.height)
	}

	var content string
	switch m.overlay {
	case overlayDateInput:
		content = lipgloss.Place(m.width, m.contentHeight(), lipgloss.Center, lipgloss.Center, m.dateInput.View())
	case overlayLocalePicker:
		content = lipgloss.Place(m.width, m.contentHeight(), lipgloss.Center, lipgloss.Center, m.localePicker.View())
	default:
		content = shared.TruncateLines(m.list.View(), m.contentHeight())
	}

	statusText := "h/j/k/l:move  [/]:month  enter:pick  /:jump  L:locale  ?:help  q:quit"
	if m.status != "" {
		statusText = m.status
	}
	statusStyle := theme.HelpHint
	if m.statusErr {
		statusStyle = theme.Error
	}
	statusBar := theme.StatusBar.Width(m.width).Render(statusStyle.Render(statusText))

	return lipgloss.JoinVertical(lipgloss.Left, content, m.renderDetail(), statusBar)
}

func (m AppModel) renderDetail() string {
	iso := m.list.CursorISO()
	info := m.snapshot.Day(iso)

	parts := []string{theme.Title.Render(" " + m.loc.LongDate(m.list.Cursor()))}
	if n := len(info.Trips); n > 0 {
		titles := make([]string, 0, n)
		for _, t := range info.Trips {
			titles = append(titles, t.Title)
		}
		parts = append(parts, fmt.Sprintf("%d trip(s): %s", n, strings.Join(titles, ", ")))
	}
	if info.Blackout {
		parts = append(parts, theme.Error.Render("blackout"))
	}
	if iso == m.selected {
		parts = append(parts, theme.Ok.Render("selected"))
	}
	return strings.Join(parts, theme.Muted.Render("  ·  "))
}

var helpSections = []shared.HelpSection{
	{
		Title: "Calendar",
		Binds: []shared.HelpBind{
			{Key: "h / l", Desc: "Previous / next day"},
			{Key: "k / j", Desc: "Previous / next week"},
			{Key: "[ / ]", Desc: "Previous / next month"},
			{Key: "g / G", Desc: "First / last day"},
			{Key: "t", Desc: "Jump to today"},
			{Key: "enter", Desc: "Pick the day under the cursor"},
			{Key: "x", Desc: "Clear selection"},
		},
	},
	{
		Title: "Other",
		Binds: []shared.HelpBind{
			{Key: "/", Desc: "Jump to a date"},
			{Key: "L", Desc: "Change display locale"},
			{Key: "r", Desc: "Reload trips and blackout days"},
			{Key: "?", Desc: "Show this help"},
			{Key: "q", Desc: "Quit"},
			{Key: "ctrl+c", Desc: "Force quit"},
		},
	},
}
