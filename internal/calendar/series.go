package calendar

import "time"

// SeriesOptions describes the scrollable month range and the grid config
// shared by every month in it.
type SeriesOptions struct {
	Now               time.Time
	PastScrollRange   int
	FutureScrollRange int
	Grid              GridOptions
}

// BaseAnchor is the month of minDate when it parses, otherwise the month of now.
func BaseAnchor(minDate string, now time.Time) time.Time {
	if minDate != "" {
		if t, err := ParseISO(minDate); err == nil {
			return MonthAnchor(t)
		}
	}
	return MonthAnchor(now)
}

// MonthAnchors enumerates past+future+1 month anchors around base in
// ascending order. Negative ranges count as zero.
func MonthAnchors(base time.Time, past, future int) []time.Time {
	past = max(past, 0)
	future = max(future, 0)

	base = MonthAnchor(base)
	out := make([]time.Time, 0, past+future+1)
	for i := -past; i <= future; i++ {
		out = append(out, UTCDate(base.Year(), base.Month()+time.Month(i), 1))
	}
	return out
}

// Series owns the month anchors of one calendar list. Grids are built on
// demand, one month at a time, in whatever order the caller asks.
type Series struct {
	anchors []time.Time
	index   map[string]int
	grid    GridOptions
	cache   *GridCache
}

// NewSeries computes the anchors once. A nil cache gets a private one.
func NewSeries(opts SeriesOptions, cache *GridCache) *Series {
	if cache == nil {
		cache = NewGridCache()
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	anchors := MonthAnchors(BaseAnchor(opts.Grid.MinDate, now), opts.PastScrollRange, opts.FutureScrollRange)
	index := make(map[string]int, len(anchors))
	for i, a := range anchors {
		index[MonthKey(a)] = i
	}
	return &Series{
		anchors: anchors,
		index:   index,
		grid:    opts.Grid,
		cache:   cache,
	}
}

// Anchors returns a copy of the month anchors.
func (s *Series) Anchors() []time.Time {
	out := make([]time.Time, len(s.anchors))
	copy(out, s.anchors)
	return out
}

func (s *Series) Len() int {
	return len(s.anchors)
}

// IndexOf returns the position of t's month, or -1.
func (s *Series) IndexOf(t time.Time) int {
	if i, ok := s.index[MonthKey(t)]; ok {
		return i
	}
	return -1
}

// Anchor returns the i-th anchor. i must be in range.
func (s *Series) Anchor(i int) time.Time {
	return s.anchors[i]
}

// Options returns the grid options shared by the series.
func (s *Series) Options() GridOptions {
	return s.grid
}

// Grid builds (or recalls) the grid for the i-th month.
func (s *Series) Grid(i int) MonthGrid {
	return s.cache.Get(s.anchors[i], s.grid)
}

// WithGrid returns a series over the same anchors with new grid options,
// e.g. after the selection changed. The cache is shared.
func (s *Series) WithGrid(opts GridOptions) *Series {
	return &Series{
		anchors: s.anchors,
		index:   s.index,
		grid:    opts,
		cache:   s.cache,
	}
}
