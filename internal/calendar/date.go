package calendar

import (
	"errors"
	"fmt"
	"time"
)

// ISOLayout is the fixed-width date layout used for every date key.
const ISOLayout = "2006-01-02"

// ErrInvalidISODate is returned by ParseISO for anything that is not a
// zero-padded YYYY-MM-DD date.
var ErrInvalidISODate = errors.New("invalid ISO date")

// FormatISO returns the UTC calendar date of t as YYYY-MM-DD.
func FormatISO(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}

// ParseISO parses YYYY-MM-DD into UTC midnight.
func ParseISO(s string) (time.Time, error) {
	if len(s) != len(ISOLayout) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidISODate, s)
	}
	t, err := time.ParseInLocation(ISOLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidISODate, s)
	}
	return t, nil
}

// ValidateISO reports whether s is a well-formed ISO date. An empty string
// is valid and means "no bound".
func ValidateISO(s string) error {
	if s == "" {
		return nil
	}
	_, err := ParseISO(s)
	return err
}

// UTCDate builds UTC midnight for the given calendar date. Out-of-range
// months and days roll over the same way time.Date does.
func UTCDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// MonthAnchor normalizes t to the first day of its month in UTC.
func MonthAnchor(t time.Time) time.Time {
	t = t.UTC()
	return UTCDate(t.Year(), t.Month(), 1)
}

// DaysInMonth uses day 0 of the following month.
func DaysInMonth(year int, month time.Month) int {
	return UTCDate(year, month+1, 0).Day()
}

// TodayISO returns today's calendar date. A nil loc means UTC; pass
// time.Local to follow the user's wall clock instead.
func TodayISO(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return now.In(loc).Format(ISOLayout)
}

// MonthKey formats an anchor as YYYY-MM.
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// ParseMonthKey parses YYYY-MM into a month anchor.
func ParseMonthKey(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01", s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return t, nil
}
