package trips

import (
	"tripcal/internal/calendar"
)

// Marks turns trips into calendar marks. Published trips with free seats
// are highlighted with their color, full trips block their day, drafts are
// not shown. selected, when non-empty, is the single selected date of the
// screen.
func Marks(trips []Trip, selected string) calendar.MarkedDates {
	var sets []calendar.MarkedDates
	for _, t := range trips {
		if _, err := t.Day(); err != nil {
			continue
		}
		switch {
		case t.Status == StatusFull || (t.Status == StatusPublished && t.Seats <= 0):
			sets = append(sets, calendar.MarkedDates{t.Date: {DisableTouchEvent: true}})
		case t.Bookable() && t.Color != "":
			sets = append(sets, calendar.MarkedDates{t.Date: {SelectedColor: t.Color}})
		}
	}
	if selected != "" {
		sets = append(sets, calendar.MarkedDates{selected: {Selected: true}})
	}
	return calendar.MergeMarks(sets...)
}

// OnDate returns the trips departing on iso.
func OnDate(trips []Trip, iso string) []Trip {
	var out []Trip
	for _, t := range trips {
		if t.Date == iso {
			out = append(out, t)
		}
	}
	return out
}
