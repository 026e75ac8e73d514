package agenda

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tripcal/internal/calendar"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func write(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
}

const holidayICS = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//tripcal//agenda test//EN
BEGIN:VEVENT
UID:holiday
DTSTAMP:20240101T000000Z
DTSTART;VALUE=DATE:20240308
DTEND;VALUE=DATE:20240309
SUMMARY:Holiday
END:VEVENT
BEGIN:VEVENT
UID:next-month
DTSTAMP:20240101T000000Z
DTSTART;VALUE=DATE:20240402
DTEND;VALUE=DATE:20240403
SUMMARY:Out of range
END:VEVENT
END:VCALENDAR
`

func TestMonthRange(t *testing.T) {
	r := MonthRange(date(2024, time.February, 17))
	if r.From != "2024-02-01" || r.To != "2024-02-29" {
		t.Errorf("expected Feb 2024 leap range, got %+v", r)
	}
	if !r.Contains("2024-02-29") || r.Contains("2024-03-01") {
		t.Errorf("unexpected Contains result for %+v", r)
	}
}

func TestSeriesRange(t *testing.T) {
	s := calendar.NewSeries(calendar.SeriesOptions{
		Now:               date(2024, time.March, 10),
		PastScrollRange:   1,
		FutureScrollRange: 2,
	}, nil)

	r := SeriesRange(s)
	if r.From != "2024-02-01" || r.To != "2024-05-31" {
		t.Errorf("expected 2024-02-01..2024-05-31, got %+v", r)
	}
}

func TestQuery(t *testing.T) {
	dir := t.TempDir()
	tripsDir := filepath.Join(dir, "trips")
	if err := os.MkdirAll(tripsDir, 0755); err != nil {
		t.Fatal(err)
	}
	write(t, filepath.Join(tripsDir, "a.md"), "---\ndate: \"2024-03-15\"\nstatus: published\nseats: 2\ncolor: \"5\"\n---\n# A\n")
	write(t, filepath.Join(tripsDir, "b.md"), "---\ndate: \"2024-03-20\"\nstatus: full\n---\n# B\n")
	write(t, filepath.Join(tripsDir, "c.md"), "---\ndate: \"2024-05-01\"\nstatus: published\nseats: 1\n---\n# C\n")
	icsPath := filepath.Join(dir, "blackout.ics")
	write(t, icsPath, strings.ReplaceAll(holidayICS, "\n", "\r\n"))

	src := Source{TripsDir: tripsDir, BlackoutICS: icsPath}
	snap, err := src.Query(MonthRange(date(2024, time.March, 1)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(snap.Trips) != 2 {
		t.Errorf("expected 2 trips in March, got %d", len(snap.Trips))
	}
	if len(snap.Blackout) != 1 || snap.Blackout[0] != "2024-03-08" {
		t.Errorf("expected only 2024-03-08 blacked out, got %v", snap.Blackout)
	}

	marks := snap.Marks("2024-03-08")
	if m := marks["2024-03-08"]; !m.Selected || !m.DisableTouchEvent {
		t.Errorf("expected selected blackout day, got %+v", m)
	}
	if m := marks["2024-03-15"]; m.SelectedColor != "5" || m.DisableTouchEvent {
		t.Errorf("expected colored bookable day, got %+v", m)
	}
	if m := marks["2024-03-20"]; !m.DisableTouchEvent {
		t.Errorf("expected full trip day blocked, got %+v", m)
	}

	info := snap.Day("2024-03-08")
	if !info.Blackout || len(info.Trips) != 0 {
		t.Errorf("unexpected day info %+v", info)
	}
	if info := snap.Day("2024-03-15"); info.Blackout || len(info.Trips) != 1 {
		t.Errorf("unexpected day info %+v", info)
	}
}

func TestQuery_MissingSources(t *testing.T) {
	dir := t.TempDir()
	src := Source{
		TripsDir:    filepath.Join(dir, "none"),
		BlackoutICS: filepath.Join(dir, "none.ics"),
	}
	snap, err := src.Query(MonthRange(date(2024, time.March, 1)))
	if err != nil {
		t.Fatalf("missing sources should not fail: %v", err)
	}
	if len(snap.Trips) != 0 || len(snap.Blackout) != 0 {
		t.Errorf("expected empty snapshot, got %+v", snap)
	}
	if marks := snap.Marks("not-a-date"); len(marks) != 0 {
		t.Errorf("invalid selection should not be marked, got %v", marks)
	}
}
