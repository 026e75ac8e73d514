package calendar

import (
	"strconv"
	"time"
)

// CalendarDate is the payload handed to a day-press handler.
type CalendarDate struct {
	DateString string `json:"dateString"`
	Day        int    `json:"day"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
	Timestamp  int64  `json:"timestamp"` // epoch millis of UTC midnight
}

// NewCalendarDate builds a CalendarDate from any instant on the wanted UTC day.
func NewCalendarDate(t time.Time) CalendarDate {
	t = t.UTC()
	midnight := UTCDate(t.Year(), t.Month(), t.Day())
	return CalendarDate{
		DateString: midnight.Format(ISOLayout),
		Day:        midnight.Day(),
		Month:      int(midnight.Month()),
		Year:       midnight.Year(),
		Timestamp:  midnight.UnixMilli(),
	}
}

// MarkedDate is a caller-supplied annotation for one date.
type MarkedDate struct {
	Selected          bool   `json:"selected,omitempty" yaml:"selected,omitempty"`
	SelectedColor     string `json:"selectedColor,omitempty" yaml:"selected_color,omitempty"`
	SelectedTextColor string `json:"selectedTextColor,omitempty" yaml:"selected_text_color,omitempty"`
	DisableTouchEvent bool   `json:"disableTouchEvent,omitempty" yaml:"disable_touch_event,omitempty"`
}

// MarkedDates is keyed by ISO date. The grid builder only reads it.
type MarkedDates map[string]MarkedDate

// MergeMarks combines mark sets into a new map. Flags are OR-ed; colors
// from later sets override earlier ones when non-empty.
func MergeMarks(sets ...MarkedDates) MarkedDates {
	out := make(MarkedDates)
	for _, set := range sets {
		for iso, m := range set {
			cur := out[iso]
			cur.Selected = cur.Selected || m.Selected
			cur.DisableTouchEvent = cur.DisableTouchEvent || m.DisableTouchEvent
			if m.SelectedColor != "" {
				cur.SelectedColor = m.SelectedColor
			}
			if m.SelectedTextColor != "" {
				cur.SelectedTextColor = m.SelectedTextColor
			}
			out[iso] = cur
		}
	}
	return out
}

// DayCell is one position of a month grid. Placeholder cells carry no date.
type DayCell struct {
	Placeholder bool `json:"placeholder,omitempty"`

	ISODate           string    `json:"date,omitempty"`
	Date              time.Time `json:"-"`
	Label             string    `json:"label,omitempty"`
	IsDisabled        bool      `json:"disabled,omitempty"`
	IsToday           bool      `json:"today,omitempty"`
	IsSelected        bool      `json:"selected,omitempty"`
	SelectedColor     string    `json:"selectedColor,omitempty"`
	SelectedTextColor string    `json:"selectedTextColor,omitempty"`
	DisableTouchEvent bool      `json:"disableTouchEvent,omitempty"`
}

func placeholderCell() DayCell {
	return DayCell{Placeholder: true}
}

func dateCell(d time.Time) DayCell {
	return DayCell{
		ISODate: d.Format(ISOLayout),
		Date:    d,
		Label:   strconv.Itoa(d.Day()),
	}
}

// Pressable reports whether a press on this cell reaches the handler.
func (c DayCell) Pressable() bool {
	return !c.Placeholder && !c.IsDisabled && !c.DisableTouchEvent
}

// CalendarDate returns the press payload for a date cell. Placeholders
// return the zero value.
func (c DayCell) CalendarDate() CalendarDate {
	if c.Placeholder {
		return CalendarDate{}
	}
	return NewCalendarDate(c.Date)
}

// Week is one row of the grid.
type Week [7]DayCell

// MonthGrid is the derived layout for one month anchor.
type MonthGrid struct {
	Anchor time.Time `json:"-"`
	Month  string    `json:"month"`
	Weeks  []Week    `json:"weeks"`
}

// Cells flattens the grid back into its original order.
func (g MonthGrid) Cells() []DayCell {
	out := make([]DayCell, 0, len(g.Weeks)*7)
	for _, w := range g.Weeks {
		out = append(out, w[:]...)
	}
	return out
}

// Find returns the cell for an ISO date, if it belongs to this month.
func (g MonthGrid) Find(iso string) (DayCell, bool) {
	for _, w := range g.Weeks {
		for _, c := range w {
			if !c.Placeholder && c.ISODate == iso {
				return c, true
			}
		}
	}
	return DayCell{}, false
}

// DayHandler receives day-press events.
type DayHandler func(CalendarDate)

// Press forwards a press on cell to handler. It returns false, without
// calling handler, for placeholders, disabled and touch-suppressed cells.
func Press(cell DayCell, handler DayHandler) bool {
	if !cell.Pressable() {
		return false
	}
	if handler != nil {
		handler(cell.CalendarDate())
	}
	return true
}
