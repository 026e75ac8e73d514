package theme

import (
	"github.com/charmbracelet/lipgloss"

	"tripcal/internal/calendar"
)

// ---------------------------------------------------------------------------
// Color palette for chrome (status bar, modals, help). Calendar cells take
// their colors from calendar.Theme instead.
// ---------------------------------------------------------------------------

var (
	Text      = lipgloss.Color("7")
	TextMuted = lipgloss.Color("8")

	Primary   = lipgloss.Color("4") // blue
	Secondary = lipgloss.Color("6") // cyan
	Success   = lipgloss.Color("2") // green
	Warning   = lipgloss.Color("3") // yellow
	Danger    = lipgloss.Color("1") // red
	Border    = lipgloss.Color("8") // dim
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	Muted = lipgloss.NewStyle().Foreground(TextMuted)

	Error = lipgloss.NewStyle().Bold(true).Foreground(Danger)
	Ok    = lipgloss.NewStyle().Bold(true).Foreground(Success)

	ModalBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	ModalTitle = lipgloss.NewStyle().Bold(true).Foreground(Warning)

	ModalHelp = lipgloss.NewStyle().Foreground(TextMuted)

	StatusBar = lipgloss.NewStyle().
			Foreground(TextMuted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	HelpHint = lipgloss.NewStyle().Foreground(TextMuted)

	ListCursor = lipgloss.NewStyle().Bold(true).Foreground(Success)
)

// CellWidth is the rendered width of one day column.
const CellWidth = 4

// Styles renders month grids with a calendar.Theme.
type Styles struct {
	Theme         calendar.Theme
	MonthTitle    lipgloss.Style
	WeekdayHeader lipgloss.Style
	Placeholder   lipgloss.Style
	cell          lipgloss.Style
}

// NewStyles builds grid styles. The theme is normalized first so empty
// fields fall back to the defaults.
func NewStyles(t calendar.Theme) Styles {
	t.Normalize()
	cell := lipgloss.NewStyle().Width(CellWidth).Align(lipgloss.Center)
	return Styles{
		Theme:         t,
		MonthTitle:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.MonthTitleColor)),
		WeekdayHeader: cell.Foreground(lipgloss.Color(t.WeekdayHeaderColor)),
		Placeholder:   cell,
		cell:          cell,
	}
}

// Day returns the style for a date cell. The cursor background wins over
// every other background.
func (s Styles) Day(c calendar.DayCell, cursor bool) lipgloss.Style {
	colors := calendar.ResolveColors(c, s.Theme)

	style := s.cell.Foreground(lipgloss.Color(colors.Text))
	if colors.Background != "" {
		style = style.Background(lipgloss.Color(colors.Background))
	}
	if c.IsToday || c.IsSelected {
		style = style.Bold(true)
	}
	if c.DisableTouchEvent && !c.IsSelected {
		style = style.Strikethrough(true)
	}
	if cursor {
		style = style.Bold(true).Background(lipgloss.Color(s.Theme.CursorBackgroundColor))
	}
	return style
}
