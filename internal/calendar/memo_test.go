package calendar

import (
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestGridCache_HitsAndKeys(t *testing.T) {
	c := NewGridCache()
	opts := GridOptions{FirstDay: 1, Today: "2024-03-05"}

	a := c.Get(march2024(), opts)
	b := c.Get(UTCDate(2024, time.March, 22), opts)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("cached grid differs (-first +second):\n%s", diff)
	}
	hits, misses, size := c.Stats()
	if hits != 1 || misses != 1 || size != 1 {
		t.Errorf("expected 1 hit, 1 miss, size 1; got %d, %d, %d", hits, misses, size)
	}

	// a mark in another month must not change March's key
	opts.MarkedDates = MarkedDates{"2024-04-02": {Selected: true}}
	c.Get(march2024(), opts)
	if hits, _, _ := c.Stats(); hits != 2 {
		t.Errorf("expected April mark to reuse March grid, hits=%d", hits)
	}

	// a mark inside March must
	opts.MarkedDates = MarkedDates{"2024-03-02": {Selected: true}}
	g := c.Get(march2024(), opts)
	if cell, _ := g.Find("2024-03-02"); !cell.IsSelected {
		t.Error("expected the new mark to be applied")
	}
	if _, misses, _ := c.Stats(); misses != 2 {
		t.Errorf("expected a second miss, got %d", misses)
	}
}

func TestGridCache_MatchesDirectBuild(t *testing.T) {
	c := NewGridCache()
	opts := GridOptions{
		FirstDay:    6,
		MinDate:     "2024-03-04",
		MaxDate:     "2024-05-20",
		Today:       "2024-04-01",
		MarkedDates: MarkedDates{"2024-04-10": {Selected: true, SelectedColor: "5"}},
		DisableAllTouchEventsForDisabledDays: true,
	}
	for _, a := range MonthAnchors(march2024(), 0, 3) {
		if diff := cmp.Diff(BuildMonthGrid(a, opts), c.Get(a, opts)); diff != "" {
			t.Errorf("%s: memoized grid differs:\n%s", MonthKey(a), diff)
		}
	}
}

func TestGridCache_ReturnsCopies(t *testing.T) {
	c := NewGridCache()
	g := c.Get(march2024(), GridOptions{})
	g.Weeks[0][0].Label = "mutated"

	again := c.Get(march2024(), GridOptions{})
	if again.Weeks[0][0].Label == "mutated" {
		t.Error("caller mutation leaked into the cache")
	}
}

func TestGridCache_Purge(t *testing.T) {
	c := NewGridCache()
	for _, a := range MonthAnchors(march2024(), 1, 1) {
		c.Get(a, GridOptions{})
	}
	if n := c.Purge(); n != 3 {
		t.Errorf("expected 3 purged grids, got %d", n)
	}
	if _, _, size := c.Stats(); size != 0 {
		t.Errorf("expected empty cache, got %d", size)
	}
}

func TestGridCache_Concurrent(t *testing.T) {
	c := NewGridCache()
	anchors := MonthAnchors(march2024(), 6, 6)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := range anchors {
				a := anchors[(i+w)%len(anchors)]
				g := c.Get(a, GridOptions{FirstDay: w})
				if g.Month != MonthKey(a) {
					t.Errorf("expected %s, got %s", MonthKey(a), g.Month)
				}
			}
		}(w)
	}
	wg.Wait()
}
