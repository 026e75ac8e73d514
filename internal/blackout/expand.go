package blackout

import (
	"sort"
	"time"

	"github.com/teambition/rrule-go"

	"tripcal/internal/calendar"
	"tripcal/internal/logs"
)

const maxOccurrencesPerEvent = 5000

// Days returns every ISO date in [from, to] covered by an event or one of
// its recurrences, sorted and without duplicates. from and to are ISO
// dates; an invalid bound yields nothing.
func Days(events []Event, from, to string) []string {
	start, err := calendar.ParseISO(from)
	if err != nil {
		return nil
	}
	end, err := calendar.ParseISO(to)
	if err != nil || end.Before(start) {
		return nil
	}
	rangeEnd := end.AddDate(0, 0, 1)

	seen := make(map[string]struct{})
	for _, ev := range events {
		for _, occ := range occurrences(ev, start, rangeEnd) {
			for _, iso := range coveredDays(occ, occ.Add(ev.End.Sub(ev.Start)), ev.AllDay) {
				if iso >= from && iso <= to {
					seen[iso] = struct{}{}
				}
			}
		}
	}

	out := make([]string, 0, len(seen))
	for iso := range seen {
		out = append(out, iso)
	}
	sort.Strings(out)
	return out
}

// Marks blocks presses on every given day.
func Marks(days []string) calendar.MarkedDates {
	out := make(calendar.MarkedDates, len(days))
	for _, iso := range days {
		out[iso] = calendar.MarkedDate{DisableTouchEvent: true}
	}
	return out
}

// occurrences returns the start times of ev that may touch [from, to).
func occurrences(ev Event, from, to time.Time) []time.Time {
	dur := ev.End.Sub(ev.Start)

	if ev.RRule == "" {
		end := ev.End
		if !end.After(ev.Start) {
			end = ev.Start.Add(time.Nanosecond)
		}
		if ev.Start.Before(to) && end.After(from) {
			return []time.Time{ev.Start}
		}
		return nil
	}

	r, err := rrule.StrToRRule(ev.RRule)
	if err != nil {
		logs.Logger.Warnw("bad RRULE", "uid", ev.UID, "rrule", ev.RRule, "error", err)
		return nil
	}
	r.DTStart(ev.Start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range ev.ExDates {
		set.ExDate(ex.In(ev.Start.Location()))
	}

	// an occurrence starting before from can still spill into it
	occ := set.Between(from.Add(-dur).In(ev.Start.Location()), to.In(ev.Start.Location()), true)
	if len(occ) > maxOccurrencesPerEvent {
		logs.Logger.Warnw("truncating recurrence", "uid", ev.UID, "cap", maxOccurrencesPerEvent)
		occ = occ[:maxOccurrencesPerEvent]
	}
	return occ
}

// coveredDays lists the calendar days an occurrence touches. All-day
// events keep their own date; timed events are placed on UTC days. End is
// exclusive.
func coveredDays(start, end time.Time, allDay bool) []string {
	var first, stop time.Time
	if allDay {
		first = calendar.UTCDate(start.Year(), start.Month(), start.Day())
		stop = calendar.UTCDate(end.Year(), end.Month(), end.Day())
		if !stop.After(first) {
			stop = first.AddDate(0, 0, 1)
		}
	} else {
		s, e := start.UTC(), end.UTC()
		first = calendar.UTCDate(s.Year(), s.Month(), s.Day())
		stop = e
		if !stop.After(s) {
			stop = first.AddDate(0, 0, 1)
		}
	}

	var out []string
	for d := first; d.Before(stop); d = d.AddDate(0, 0, 1) {
		out = append(out, calendar.FormatISO(d))
	}
	return out
}
