package calendar

import (
	"errors"
	"testing"
	"time"
)

func TestResolveColors(t *testing.T) {
	theme := DefaultTheme()
	theme.DayBackgroundColor = "0"

	tests := []struct {
		name string
		cell DayCell
		want CellColors
	}{
		{"default", DayCell{}, CellColors{Text: theme.DayTextColor, Background: "0"}},
		{"today", DayCell{IsToday: true}, CellColors{Text: theme.TodayTextColor, Background: "0"}},
		{"disabled beats today", DayCell{IsToday: true, IsDisabled: true}, CellColors{Text: theme.DisabledTextColor, Background: "0"}},
		{"selected beats disabled", DayCell{IsSelected: true, IsDisabled: true}, CellColors{Text: theme.SelectedDayTextColor, Background: theme.SelectedDayBackground}},
		{"explicit colors beat theme", DayCell{IsSelected: true, SelectedColor: "#123456", SelectedTextColor: "#abcdef"}, CellColors{Text: "#abcdef", Background: "#123456"}},
		{"explicit background only", DayCell{IsSelected: true, SelectedColor: "9"}, CellColors{Text: theme.SelectedDayTextColor, Background: "9"}},
		{"explicit colors without selection", DayCell{SelectedColor: "#22aa55"}, CellColors{Text: theme.DayTextColor, Background: "#22aa55"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveColors(tt.cell, theme); got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestThemeNormalize(t *testing.T) {
	th := Theme{TodayTextColor: "13"}
	th.Normalize()

	if th.TodayTextColor != "13" {
		t.Errorf("expected explicit value kept, got %q", th.TodayTextColor)
	}
	if th.DayTextColor != DefaultTheme().DayTextColor {
		t.Errorf("expected default day text color, got %q", th.DayTextColor)
	}
	if th.DayBackgroundColor != "" {
		t.Errorf("expected transparent background, got %q", th.DayBackgroundColor)
	}
}

func TestParseISO(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"2024-03-15", true},
		{"2024-02-29", true},
		{"2023-02-29", false},
		{"2024-3-15", false},
		{"20240315", false},
		{"", false},
	}
	for _, tt := range tests {
		_, err := ParseISO(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseISO(%q): expected ok=%v, got err=%v", tt.in, tt.ok, err)
		}
		if err != nil && !errors.Is(err, ErrInvalidISODate) {
			t.Errorf("ParseISO(%q): expected ErrInvalidISODate, got %v", tt.in, err)
		}
	}

	if err := ValidateISO(""); err != nil {
		t.Errorf("empty bound should be valid, got %v", err)
	}
}

func TestTodayISO(t *testing.T) {
	// 23:00 UTC on March 15 is already March 16 in UTC+3
	now := time.Date(2024, time.March, 15, 23, 0, 0, 0, time.UTC)
	if got := TodayISO(now, nil); got != "2024-03-15" {
		t.Errorf("expected UTC today 2024-03-15, got %s", got)
	}
	if got := TodayISO(now, time.FixedZone("MSK", 3*3600)); got != "2024-03-16" {
		t.Errorf("expected local today 2024-03-16, got %s", got)
	}
}

func TestParseMonthKey(t *testing.T) {
	a, err := ParseMonthKey("2024-03")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.Equal(UTCDate(2024, time.March, 1)) {
		t.Errorf("expected 2024-03-01 UTC, got %v", a)
	}
	if _, err := ParseMonthKey("2024-13"); err == nil {
		t.Error("expected error for month 13")
	}
}
