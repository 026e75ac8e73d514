// Package calendar lays out month grids for a scrollable date picker.
package calendar

import "time"

// GridOptions configures a single month build. All dates are ISO strings;
// an empty MinDate or MaxDate means unbounded on that side.
type GridOptions struct {
	FirstDay    int // 0 = Sunday
	MinDate     string
	MaxDate     string
	Today       string
	MarkedDates MarkedDates

	// DisableAllTouchEventsForDisabledDays also suppresses presses on days
	// outside [MinDate, MaxDate], not only the visual state.
	DisableAllTouchEventsForDisabledDays bool
}

// NormalizeFirstDay folds any integer into 0-6.
func NormalizeFirstDay(firstDay int) int {
	return ((firstDay % 7) + 7) % 7
}

// LeadingPlaceholders is the number of empty cells before day 1.
func LeadingPlaceholders(anchor time.Time, firstDay int) int {
	first := MonthAnchor(anchor)
	return (int(first.Weekday()) - NormalizeFirstDay(firstDay) + 7) % 7
}

// BuildMonthGrid lays out the month containing anchor as rows of seven
// cells. It never fails: min > max simply disables every day, and
// malformed bounds are compared as plain strings.
func BuildMonthGrid(anchor time.Time, opts GridOptions) MonthGrid {
	first := MonthAnchor(anchor)
	year, month := first.Year(), first.Month()
	days := DaysInMonth(year, month)
	lead := LeadingPlaceholders(first, opts.FirstDay)

	total := lead + days
	if rem := total % 7; rem != 0 {
		total += 7 - rem
	}

	cells := make([]DayCell, 0, total)
	for i := 0; i < lead; i++ {
		cells = append(cells, placeholderCell())
	}

	for d := 1; d <= days; d++ {
		cell := dateCell(UTCDate(year, month, d))
		iso := cell.ISODate
		mark := opts.MarkedDates[iso]

		beforeMin := opts.MinDate != "" && iso < opts.MinDate
		afterMax := opts.MaxDate != "" && iso > opts.MaxDate
		outOfRange := beforeMin || afterMax

		cell.IsDisabled = outOfRange || mark.DisableTouchEvent
		cell.DisableTouchEvent = mark.DisableTouchEvent || (opts.DisableAllTouchEventsForDisabledDays && outOfRange)
		cell.IsToday = iso == opts.Today
		cell.IsSelected = mark.Selected
		cell.SelectedColor = mark.SelectedColor
		cell.SelectedTextColor = mark.SelectedTextColor

		cells = append(cells, cell)
	}

	for len(cells) < total {
		cells = append(cells, placeholderCell())
	}

	weeks := make([]Week, 0, total/7)
	for i := 0; i < total; i += 7 {
		var w Week
		copy(w[:], cells[i:i+7])
		weeks = append(weeks, w)
	}

	return MonthGrid{
		Anchor: first,
		Month:  MonthKey(first),
		Weeks:  weeks,
	}
}
