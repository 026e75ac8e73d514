// Package blackout reads ICS calendars of days on which no trip can be
// booked (holidays, maintenance, driver days off) and turns them into
// calendar marks.
package blackout

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	ical "github.com/arran4/golang-ical"

	"tripcal/internal/logs"
)

// Event is a VEVENT reduced to what day blocking needs.
type Event struct {
	UID     string
	Summary string
	Start   time.Time
	End     time.Time
	AllDay  bool
	RRule   string
	ExDates []time.Time
}

// Load reads and parses an ICS file.
func Load(path string) ([]Event, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(body)
}

// Parse parses an ICS payload. Events that cannot be read are logged and
// skipped so one bad entry does not hide the rest.
func Parse(body []byte) ([]Event, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.New("empty ICS body")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse ics: %w", err)
	}

	var out []Event
	for _, ve := range cal.Events() {
		ev, err := parseVEvent(ve)
		if err != nil {
			logs.Logger.Warnw("skipping vevent", "error", err)
			continue
		}
		out = append(out, ev)
	}
	logs.Logger.Debugw("ics parsed", "events", len(out))
	return out, nil
}

func parseVEvent(ve *ical.VEvent) (Event, error) {
	var ev Event

	uid := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uid == nil || uid.Value == "" {
		return ev, errors.New("missing UID")
	}
	ev.UID = uid.Value

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		ev.Summary = p.Value
	}

	dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil {
		return ev, fmt.Errorf("%s: missing DTSTART", ev.UID)
	}
	ev.AllDay = isDateValue(dtStart)

	if ev.AllDay {
		start, err := parseDate(dtStart.Value)
		if err != nil {
			return ev, fmt.Errorf("%s: DTSTART: %w", ev.UID, err)
		}
		ev.Start = start
		ev.End = start.AddDate(0, 0, 1)
		if dtEnd := ve.GetProperty(ical.ComponentPropertyDtEnd); dtEnd != nil {
			if end, err := parseDate(dtEnd.Value); err == nil && end.After(start) {
				ev.End = end
			}
		}
	} else {
		start, err := propTime(dtStart, dtStart.Value)
		if err != nil {
			return ev, fmt.Errorf("%s: DTSTART: %w", ev.UID, err)
		}
		ev.Start = start
		ev.End = start
		if dtEnd := ve.GetProperty(ical.ComponentPropertyDtEnd); dtEnd != nil {
			if end, err := propTime(dtEnd, dtEnd.Value); err == nil && end.After(start) {
				ev.End = end
			}
		}
	}

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		ev.RRule = p.Value
	}

	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			t, err := propTime(p, strings.TrimSpace(part))
			if err != nil {
				logs.Logger.Warnw("skipping EXDATE", "uid", ev.UID, "value", part, "error", err)
				continue
			}
			ev.ExDates = append(ev.ExDates, t)
		}
	}

	return ev, nil
}

func isDateValue(p *ical.IANAProperty) bool {
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

func parseDate(v string) (time.Time, error) {
	return time.ParseInLocation("20060102", strings.TrimSpace(v), time.UTC)
}

// propLocation resolves the TZID parameter of p. Without one, times are
// read as UTC.
func propLocation(p *ical.IANAProperty) (*time.Location, error) {
	vs, ok := p.ICalParameters["TZID"]
	if !ok || len(vs) == 0 || vs[0] == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(strings.Trim(vs[0], `"`))
	if err != nil {
		return nil, fmt.Errorf("TZID %q: %w", vs[0], err)
	}
	return loc, nil
}

// propTime parses one DATE or DATE-TIME value of p: UTC ("...Z"), zoned by
// TZID, or floating (UTC). DATE values are UTC midnight.
func propTime(p *ical.IANAProperty, v string) (time.Time, error) {
	switch {
	case v == "":
		return time.Time{}, errors.New("empty time value")
	case strings.HasSuffix(v, "Z"):
		return time.Parse("20060102T150405Z", v)
	case strings.Contains(v, "T"):
		loc, err := propLocation(p)
		if err != nil {
			return time.Time{}, err
		}
		return time.ParseInLocation("20060102T150405", v, loc)
	default:
		return parseDate(v)
	}
}
