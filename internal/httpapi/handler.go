package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripcal/internal/calendar"
	"tripcal/internal/locale"
)

type monthSummary struct {
	Month string `json:"month"`
	Title string `json:"title"`
	Weeks int    `json:"weeks"`
}

type monthsResponse struct {
	Locale   string         `json:"locale"`
	FirstDay int            `json:"firstDay"`
	Today    string         `json:"today"`
	Weekdays [7]string      `json:"weekdays"`
	Months   []monthSummary `json:"months"`
}

type cellResponse struct {
	calendar.DayCell
	Colors *calendar.CellColors `json:"colors,omitempty"`
}

type gridResponse struct {
	Month    string           `json:"month"`
	Title    string           `json:"title"`
	Weekdays [7]string        `json:"weekdays"`
	Weeks    [][]cellResponse `json:"weeks"`
}

type pressRequest struct {
	Date string `json:"date" binding:"required"`
}

// requestLocale honours ?locale= and falls back to the configured one.
func (s *Server) requestLocale(c *gin.Context) locale.Locale {
	if tag := c.Query("locale"); tag != "" {
		return locale.Resolve(tag)
	}
	return s.cfg.LocaleValue()
}

func (s *Server) health(c *gin.Context) {
	hits, misses, size := s.cache.Stats()
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"cache": gin.H{
			"hits":   hits,
			"misses": misses,
			"size":   size,
		},
	})
}

func (s *Server) listMonths(c *gin.Context) {
	loc := s.requestLocale(c)
	series := s.series("")
	opts := series.Options()

	resp := monthsResponse{
		Locale:   loc.String(),
		FirstDay: opts.FirstDay,
		Today:    opts.Today,
		Weekdays: loc.WeekdayHeaders(opts.FirstDay),
		Months:   make([]monthSummary, 0, series.Len()),
	}
	for i, anchor := range series.Anchors() {
		resp.Months = append(resp.Months, monthSummary{
			Month: calendar.MonthKey(anchor),
			Title: loc.MonthTitle(anchor),
			Weeks: len(series.Grid(i).Weeks),
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) monthGrid(c *gin.Context) {
	anchor, err := calendar.ParseMonthKey(c.Param("month"))
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_month", "month must be YYYY-MM", err))
		return
	}
	selected := c.Query("selected")
	if err := calendar.ValidateISO(selected); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_date", "selected must be YYYY-MM-DD", err))
		return
	}

	series := s.series(selected)
	idx := series.IndexOf(anchor)
	if idx < 0 {
		abortWithError(c, NewHTTPError(http.StatusNotFound, "month_out_of_range", "month is outside the calendar", nil))
		return
	}

	loc := s.requestLocale(c)
	grid := series.Grid(idx)
	resp := gridResponse{
		Month:    grid.Month,
		Title:    loc.MonthTitle(grid.Anchor),
		Weekdays: loc.WeekdayHeaders(series.Options().FirstDay),
		Weeks:    make([][]cellResponse, 0, len(grid.Weeks)),
	}
	for _, week := range grid.Weeks {
		row := make([]cellResponse, 0, len(week))
		for _, cell := range week {
			out := cellResponse{DayCell: cell}
			if !cell.Placeholder {
				colors := calendar.ResolveColors(cell, s.cfg.Theme)
				out.Colors = &colors
			}
			row = append(row, out)
		}
		resp.Weeks = append(resp.Weeks, row)
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) dayInfo(c *gin.Context) {
	iso := c.Param("date")
	if _, err := calendar.ParseISO(iso); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD", err))
		return
	}
	c.JSON(http.StatusOK, s.currentSnapshot().Day(iso))
}

func (s *Server) press(c *gin.Context) {
	var req pressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "body must be {\"date\": \"YYYY-MM-DD\"}", err))
		return
	}
	day, err := calendar.ParseISO(req.Date)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD", err))
		return
	}

	series := s.series("")
	idx := series.IndexOf(day)
	if idx < 0 {
		abortWithError(c, NewHTTPError(http.StatusConflict, "day_not_pressable", "date is outside the calendar", nil))
		return
	}
	cell, _ := series.Grid(idx).Find(req.Date)

	var pressed calendar.CalendarDate
	if !calendar.Press(cell, func(d calendar.CalendarDate) { pressed = d }) {
		abortWithError(c, NewHTTPError(http.StatusConflict, "day_not_pressable", req.Date+" cannot be picked", nil))
		return
	}

	s.logger.Info("day pressed", zap.String("date", pressed.DateString))
	c.JSON(http.StatusOK, pressed)
}
