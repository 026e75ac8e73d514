package agenda

import (
	"time"

	"tripcal/internal/calendar"
	"tripcal/internal/trips"
)

// DateRange is an inclusive span of ISO dates.
type DateRange struct {
	From string
	To   string
}

// MonthRange covers the month containing t.
func MonthRange(t time.Time) DateRange {
	anchor := calendar.MonthAnchor(t)
	last := calendar.UTCDate(anchor.Year(), anchor.Month()+1, 0)
	return DateRange{From: calendar.FormatISO(anchor), To: calendar.FormatISO(last)}
}

// SeriesRange covers every month of a series.
func SeriesRange(s *calendar.Series) DateRange {
	if s.Len() == 0 {
		return DateRange{}
	}
	first := s.Anchor(0)
	last := s.Anchor(s.Len() - 1)
	return DateRange{
		From: calendar.FormatISO(first),
		To:   MonthRange(last).To,
	}
}

// Contains reports whether iso falls inside the range.
func (r DateRange) Contains(iso string) bool {
	return iso >= r.From && iso <= r.To
}

// Snapshot is everything known about the dates in one range.
type Snapshot struct {
	Range    DateRange
	Trips    []trips.Trip
	Blackout []string
	LoadedAt time.Time
}

// DayInfo describes one date for detail panels and API responses.
type DayInfo struct {
	Date     string       `json:"date"`
	Trips    []trips.Trip `json:"trips,omitempty"`
	Blackout bool         `json:"blackout"`
}
