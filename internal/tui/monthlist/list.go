// Package monthlist is the scrollable list of month grids shown by the
// terminal calendar.
package monthlist

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tripcal/internal/calendar"
	"tripcal/internal/locale"
	"tripcal/internal/tui/messages"
	"tripcal/internal/tui/theme"
)

// Model renders a calendar.Series as stacked months with a day cursor.
type Model struct {
	series *calendar.Series
	loc    locale.Locale
	styles theme.Styles
	cursor time.Time // UTC midnight, always inside the series
	today  time.Time
	offset int // first month rendered
	width  int
	height int
}

// New places the cursor on today, clamped to the series.
func New(series *calendar.Series, loc locale.Locale, styles theme.Styles, today time.Time) Model {
	m := Model{
		series: series,
		loc:    loc,
		styles: styles,
		today:  day(today),
	}
	m.cursor = m.clamp(m.today)
	m.ensureCursorInView()
	return m
}

func day(t time.Time) time.Time {
	t = t.UTC()
	return calendar.UTCDate(t.Year(), t.Month(), t.Day())
}

// SetSize updates the view dimensions
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.ensureCursorInView()
}

// SetSeries swaps the series (new marks or selection) and keeps the cursor.
func (m *Model) SetSeries(s *calendar.Series) {
	m.series = s
	m.cursor = m.clamp(m.cursor)
	m.offset = min(m.offset, max(s.Len()-1, 0))
	m.ensureCursorInView()
}

// SetLocale changes titles and weekday headers.
func (m *Model) SetLocale(l locale.Locale) {
	m.loc = l
}

// SetToday moves what "t" jumps to.
func (m *Model) SetToday(t time.Time) {
	m.today = day(t)
}

// Cursor returns the date under the cursor.
func (m Model) Cursor() time.Time {
	return m.cursor
}

// CursorISO returns the cursor date as YYYY-MM-DD.
func (m Model) CursorISO() string {
	return calendar.FormatISO(m.cursor)
}

// Offset is the index of the first rendered month.
func (m Model) Offset() int {
	return m.offset
}

// InRange reports whether t falls inside the scrollable months.
func (m Model) InRange(t time.Time) bool {
	first, last := m.bounds()
	t = day(t)
	return !t.Before(first) && !t.After(last)
}

// JumpTo moves the cursor to t. Dates outside the series are refused.
func (m *Model) JumpTo(t time.Time) bool {
	if !m.InRange(t) {
		return false
	}
	m.cursor = day(t)
	m.ensureCursorInView()
	return true
}

func (m Model) bounds() (time.Time, time.Time) {
	if m.series == nil || m.series.Len() == 0 {
		return time.Time{}, time.Time{}
	}
	first := m.series.Anchor(0)
	last := m.series.Anchor(m.series.Len() - 1)
	return first, calendar.UTCDate(last.Year(), last.Month()+1, 0)
}

func (m Model) clamp(t time.Time) time.Time {
	first, last := m.bounds()
	switch {
	case t.Before(first):
		return first
	case t.After(last):
		return last
	}
	return t
}

// Update handles cursor movement and presses
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "h", "left":
		m.move(m.cursor.AddDate(0, 0, -1))
	case "l", "right":
		m.move(m.cursor.AddDate(0, 0, 1))
	case "k", "up":
		m.move(m.cursor.AddDate(0, 0, -7))
	case "j", "down":
		m.move(m.cursor.AddDate(0, 0, 7))
	case "[", "pgup":
		m.move(shiftMonth(m.cursor, -1))
	case "]", "pgdown":
		m.move(shiftMonth(m.cursor, 1))
	case "t":
		m.move(m.today)
	case "g", "home":
		first, _ := m.bounds()
		m.move(first)
	case "G", "end":
		_, last := m.bounds()
		m.move(last)
	case "enter", " ":
		return m, m.press()
	}
	return m, nil
}

func (m *Model) move(t time.Time) {
	m.cursor = m.clamp(t)
	m.ensureCursorInView()
}

// shiftMonth keeps the day of month where possible, e.g. Jan 31 → Feb 29.
func shiftMonth(t time.Time, n int) time.Time {
	target := calendar.UTCDate(t.Year(), t.Month()+time.Month(n), 1)
	d := min(t.Day(), calendar.DaysInMonth(target.Year(), target.Month()))
	return calendar.UTCDate(target.Year(), target.Month(), d)
}

func (m Model) press() tea.Cmd {
	idx := m.series.IndexOf(m.cursor)
	if idx < 0 {
		return nil
	}
	cell, ok := m.series.Grid(idx).Find(m.CursorISO())
	if !ok {
		return nil
	}

	var pressed calendar.CalendarDate
	if !calendar.Press(cell, func(d calendar.CalendarDate) { pressed = d }) {
		iso := cell.ISODate
		return func() tea.Msg { return messages.PressRejectedMsg{ISODate: iso} }
	}
	return func() tea.Msg { return messages.DayPressedMsg{Date: pressed} }
}

// monthHeight is title + weekday header + weeks + blank separator.
func (m Model) monthHeight(i int) int {
	return len(m.series.Grid(i).Weeks) + 3
}

func (m *Model) ensureCursorInView() {
	if m.series == nil || m.series.Len() == 0 {
		return
	}
	idx := m.series.IndexOf(m.cursor)
	if idx < 0 {
		return
	}
	if idx < m.offset || m.height <= 0 {
		m.offset = idx
		return
	}
	for m.offset < idx {
		used := 0
		for i := m.offset; i <= idx; i++ {
			used += m.monthHeight(i)
		}
		if used <= m.height {
			break
		}
		m.offset++
	}
}

// View renders as many months as fit, starting at the scroll offset
func (m Model) View() string {
	if m.series == nil || m.series.Len() == 0 {
		return theme.Muted.Render(" No months to show")
	}

	var sb strings.Builder
	used := 0
	for i := m.offset; i < m.series.Len(); i++ {
		h := m.monthHeight(i)
		if used > 0 && (m.height <= 0 || used+h > m.height) {
			break
		}
		sb.WriteString(m.renderMonth(i))
		used += h
	}
	return sb.String()
}

func (m Model) renderMonth(i int) string {
	return RenderMonth(m.series.Grid(i), m.loc, m.styles, m.series.Options().FirstDay, m.CursorISO())
}

// RenderMonth draws one month grid: title, weekday header, one line per
// week and a trailing blank line. cursorISO may be empty.
func RenderMonth(grid calendar.MonthGrid, loc locale.Locale, styles theme.Styles, firstDay int, cursorISO string) string {
	lines := make([]string, 0, len(grid.Weeks)+3)
	lines = append(lines, " "+styles.MonthTitle.Render(loc.MonthTitle(grid.Anchor)))

	headers := loc.WeekdayHeaders(firstDay)
	cols := make([]string, len(headers))
	for j, h := range headers {
		cols[j] = styles.WeekdayHeader.Render(h)
	}
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cols...))

	for _, week := range grid.Weeks {
		var row strings.Builder
		for _, cell := range week {
			if cell.Placeholder {
				row.WriteString(styles.Placeholder.Render(""))
				continue
			}
			row.WriteString(styles.Day(cell, cell.ISODate == cursorISO).Render(cell.Label))
		}
		lines = append(lines, row.String())
	}
	lines = append(lines, "")
	return strings.Join(lines, "\n") + "\n"
}
