package calendar

// Theme holds the colors a renderer falls back to when a marked date does
// not carry its own. Values are whatever the renderer understands (ANSI
// codes for the terminal, hex for the API). Theme has no effect on which
// days are enabled.
type Theme struct {
	DayTextColor          string `yaml:"day_text_color" json:"dayTextColor"`
	DayBackgroundColor    string `yaml:"day_background_color" json:"dayBackgroundColor"`
	TodayTextColor        string `yaml:"today_text_color" json:"todayTextColor"`
	DisabledTextColor     string `yaml:"disabled_text_color" json:"disabledTextColor"`
	SelectedDayBackground string `yaml:"selected_day_background" json:"selectedDayBackground"`
	SelectedDayTextColor  string `yaml:"selected_day_text_color" json:"selectedDayTextColor"`
	MonthTitleColor       string `yaml:"month_title_color" json:"monthTitleColor"`
	WeekdayHeaderColor    string `yaml:"weekday_header_color" json:"weekdayHeaderColor"`
	CursorBackgroundColor string `yaml:"cursor_background_color" json:"cursorBackgroundColor"`
}

// DefaultTheme uses the 16-color ANSI palette.
func DefaultTheme() Theme {
	return Theme{
		DayTextColor:          "7",
		DayBackgroundColor:    "",
		TodayTextColor:        "2",
		DisabledTextColor:     "8",
		SelectedDayBackground: "4",
		SelectedDayTextColor:  "15",
		MonthTitleColor:       "4",
		WeekdayHeaderColor:    "8",
		CursorBackgroundColor: "3",
	}
}

// Normalize fills empty fields from DefaultTheme. DayBackgroundColor may
// stay empty (transparent).
func (t *Theme) Normalize() {
	d := DefaultTheme()
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&t.DayTextColor, d.DayTextColor)
	fill(&t.TodayTextColor, d.TodayTextColor)
	fill(&t.DisabledTextColor, d.DisabledTextColor)
	fill(&t.SelectedDayBackground, d.SelectedDayBackground)
	fill(&t.SelectedDayTextColor, d.SelectedDayTextColor)
	fill(&t.MonthTitleColor, d.MonthTitleColor)
	fill(&t.WeekdayHeaderColor, d.WeekdayHeaderColor)
	fill(&t.CursorBackgroundColor, d.CursorBackgroundColor)
}

// CellColors is what a renderer paints a date cell with.
type CellColors struct {
	Text       string `json:"text"`
	Background string `json:"background,omitempty"`
}

// ResolveColors picks a cell's colors. Explicit per-date colors win, then
// selected, disabled, today and default in that order. Explicit colors
// apply whether or not the cell is selected, so a mark can tint a day
// without selecting it.
func ResolveColors(cell DayCell, theme Theme) CellColors {
	var out CellColors

	switch {
	case cell.SelectedTextColor != "":
		out.Text = cell.SelectedTextColor
	case cell.IsSelected:
		out.Text = theme.SelectedDayTextColor
	case cell.IsDisabled:
		out.Text = theme.DisabledTextColor
	case cell.IsToday:
		out.Text = theme.TodayTextColor
	default:
		out.Text = theme.DayTextColor
	}

	switch {
	case cell.SelectedColor != "":
		out.Background = cell.SelectedColor
	case cell.IsSelected:
		out.Background = theme.SelectedDayBackground
	default:
		out.Background = theme.DayBackgroundColor
	}

	return out
}
