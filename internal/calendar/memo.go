package calendar

import (
	"hash/fnv"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

type gridKey struct {
	month      string
	firstDay   int
	minDate    string
	maxDate    string
	today      string
	disableAll bool
	marks      uint64
}

// GridCache memoizes month grids by month and everything that can change
// them. Only the marks falling inside the month take part in the key, so a
// selection change in March does not evict April. Safe for concurrent use.
type GridCache struct {
	mu     sync.Mutex
	grids  map[gridKey]MonthGrid
	hits   int
	misses int
}

func NewGridCache() *GridCache {
	return &GridCache{grids: make(map[gridKey]MonthGrid)}
}

// Get returns the grid for anchor's month, building it on a miss.
func (c *GridCache) Get(anchor time.Time, opts GridOptions) MonthGrid {
	anchor = MonthAnchor(anchor)
	key := gridKey{
		month:      MonthKey(anchor),
		firstDay:   NormalizeFirstDay(opts.FirstDay),
		minDate:    opts.MinDate,
		maxDate:    opts.MaxDate,
		today:      opts.Today,
		disableAll: opts.DisableAllTouchEventsForDisabledDays,
	}
	key.marks = fingerprintMarks(key.month, opts.MarkedDates)

	c.mu.Lock()
	g, ok := c.grids[key]
	if ok {
		c.hits++
		c.mu.Unlock()
		return cloneGrid(g)
	}
	c.misses++
	c.mu.Unlock()

	g = BuildMonthGrid(anchor, opts)

	c.mu.Lock()
	c.grids[key] = g
	c.mu.Unlock()
	return cloneGrid(g)
}

// Purge drops every cached grid and returns how many were removed.
func (c *GridCache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.grids)
	c.grids = make(map[gridKey]MonthGrid)
	return n
}

// Stats returns cache hits, misses and current size.
func (c *GridCache) Stats() (hits, misses, size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses, len(c.grids)
}

func cloneGrid(g MonthGrid) MonthGrid {
	weeks := make([]Week, len(g.Weeks))
	copy(weeks, g.Weeks)
	g.Weeks = weeks
	return g
}

// fingerprintMarks hashes the marks whose key starts with month (YYYY-MM).
func fingerprintMarks(month string, marks MarkedDates) uint64 {
	var keys []string
	for iso := range marks {
		if strings.HasPrefix(iso, month) {
			keys = append(keys, iso)
		}
	}
	if len(keys) == 0 {
		return 0
	}
	sort.Strings(keys)

	h := fnv.New64a()
	for _, iso := range keys {
		m := marks[iso]
		h.Write([]byte(iso))
		h.Write([]byte{0})
		h.Write([]byte(strconv.FormatBool(m.Selected)))
		h.Write([]byte{0})
		h.Write([]byte(m.SelectedColor))
		h.Write([]byte{0})
		h.Write([]byte(m.SelectedTextColor))
		h.Write([]byte{0})
		h.Write([]byte(strconv.FormatBool(m.DisableTouchEvent)))
		h.Write([]byte{1})
	}
	return h.Sum64()
}
