// Package agenda gathers the dated sources behind a calendar (trip drafts
// and blackout calendars) and folds them into marked dates.
package agenda

import (
	"sort"
	"time"

	"tripcal/internal/blackout"
	"tripcal/internal/calendar"
	"tripcal/internal/logs"
	"tripcal/internal/trips"
)

// Source names where marked dates come from. Empty fields are skipped.
type Source struct {
	TripsDir    string
	BlackoutICS string
}

// Query scans the trip directory and blackout calendar for dates in r.
// A broken blackout file is logged and treated as empty so trips still show.
func (s Source) Query(r DateRange) (Snapshot, error) {
	snap := Snapshot{Range: r, LoadedAt: time.Now()}

	if s.TripsDir != "" {
		all, err := trips.ScanTrips(s.TripsDir)
		if err != nil {
			return snap, err
		}
		for _, t := range all {
			if r.Contains(t.Date) {
				snap.Trips = append(snap.Trips, t)
			}
		}
	}

	if s.BlackoutICS != "" {
		events, err := blackout.Load(s.BlackoutICS)
		if err != nil {
			logs.Logger.Warnw("blackout calendar unavailable", "path", s.BlackoutICS, "error", err)
		} else {
			snap.Blackout = blackout.Days(events, r.From, r.To)
		}
	}

	logs.Logger.Debugw("agenda loaded",
		"from", r.From, "to", r.To,
		"trips", len(snap.Trips), "blackout", len(snap.Blackout))
	return snap, nil
}

// Marks folds the snapshot into marked dates. A valid selected date is
// marked selected on top of whatever else applies to it.
func (s Snapshot) Marks(selected string) calendar.MarkedDates {
	sets := []calendar.MarkedDates{
		trips.Marks(s.Trips, ""),
		blackout.Marks(s.Blackout),
	}
	if calendar.ValidateISO(selected) == nil && selected != "" {
		sets = append(sets, calendar.MarkedDates{selected: {Selected: true}})
	}
	return calendar.MergeMarks(sets...)
}

// Day reports what is known about one date.
func (s Snapshot) Day(iso string) DayInfo {
	info := DayInfo{
		Date:  iso,
		Trips: trips.OnDate(s.Trips, iso),
	}
	i := sort.SearchStrings(s.Blackout, iso)
	info.Blackout = i < len(s.Blackout) && s.Blackout[i] == iso
	return info
}
