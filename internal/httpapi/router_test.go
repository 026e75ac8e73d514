package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tripcal/internal/calendar"
	"tripcal/internal/config"
)

var fixedNow = time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

const blackoutICS = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:-//tripcal//api test//EN\r\n" +
	"BEGIN:VEVENT\r\nUID:holiday\r\nDTSTAMP:20240101T000000Z\r\n" +
	"DTSTART;VALUE=DATE:20240308\r\nDTEND;VALUE=DATE:20240309\r\nSUMMARY:Holiday\r\n" +
	"END:VEVENT\r\nEND:VCALENDAR\r\n"

func newServerUnderTest(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	tripsDir := filepath.Join(dir, "trips")
	require.NoError(t, os.MkdirAll(tripsDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tripsDir, "full.md"),
		[]byte("---\ndate: \"2024-03-20\"\nstatus: full\n---\n# Almaty → Astana\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tripsDir, "open.md"),
		[]byte("---\ndate: \"2024-03-22\"\nstatus: published\nseats: 2\ncolor: \"#22aa55\"\n---\n# Open\n"), 0644))
	icsPath := filepath.Join(dir, "blackout.ics")
	require.NoError(t, os.WriteFile(icsPath, []byte(blackoutICS), 0644))

	cfg := config.Default()
	cfg.TripsDir = tripsDir
	cfg.BlackoutICS = icsPath
	cfg.FutureScrollRange = 2
	cfg.MinDate = "2024-03-05"
	cfg.Normalize()

	s := NewServer(cfg, nil, zap.NewNop())
	s.SetClock(func() time.Time { return fixedNow })
	require.NoError(t, s.Reload())
	return s
}

func performRequest(s *Server, method, path, body string) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	NewRouter(s, ":0").Handler.ServeHTTP(rec, req)
	return rec
}

func decodeErrorBody(t *testing.T, raw []byte) map[string]map[string]string {
	t.Helper()
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestRouter_Health(t *testing.T) {
	rec := performRequest(newServerUnderTest(t), http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"status":"ok"`)
	require.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestRouter_ListMonths(t *testing.T) {
	rec := performRequest(newServerUnderTest(t), http.MethodGet, "/api/v1/calendar/months?locale=ru", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got monthsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "ru-RU", got.Locale)
	require.Equal(t, 1, got.FirstDay)
	require.Equal(t, "2024-03-10", got.Today)
	require.Len(t, got.Months, 3)
	require.Equal(t, "2024-03", got.Months[0].Month)
	require.Equal(t, "2024-05", got.Months[2].Month)
	require.Equal(t, 5, got.Months[0].Weeks)
	require.True(t, strings.HasSuffix(got.Months[0].Title, "2024"))
}

func TestRouter_MonthGrid(t *testing.T) {
	rec := performRequest(newServerUnderTest(t), http.MethodGet, "/api/v1/calendar/months/2024-03/grid?selected=2024-03-12", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got gridResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "2024-03", got.Month)
	require.Equal(t, "March 2024", got.Title)
	require.Len(t, got.Weeks, 5)

	cells := map[string]cellResponse{}
	placeholders := 0
	for _, week := range got.Weeks {
		require.Len(t, week, 7)
		for _, c := range week {
			if c.Placeholder {
				placeholders++
				require.Nil(t, c.Colors)
				continue
			}
			cells[c.ISODate] = c
		}
	}
	require.Len(t, cells, 31)
	require.Equal(t, 4, placeholders)

	require.True(t, cells["2024-03-04"].IsDisabled, "before min date")
	require.True(t, cells["2024-03-08"].DisableTouchEvent, "blackout day")
	require.True(t, cells["2024-03-20"].DisableTouchEvent, "full trip")
	require.True(t, cells["2024-03-10"].IsToday)
	require.True(t, cells["2024-03-12"].IsSelected)
	require.Equal(t, "#22aa55", cells["2024-03-22"].Colors.Background)
	require.NotNil(t, cells["2024-03-12"].Colors)
}

func TestRouter_MonthGridErrors(t *testing.T) {
	s := newServerUnderTest(t)

	tests := []struct {
		path   string
		status int
		code   string
	}{
		{"/api/v1/calendar/months/March/grid", http.StatusBadRequest, "invalid_month"},
		{"/api/v1/calendar/months/2024-03/grid?selected=12.03.2024", http.StatusBadRequest, "invalid_date"},
		{"/api/v1/calendar/months/2025-01/grid", http.StatusNotFound, "month_out_of_range"},
	}
	for _, tt := range tests {
		rec := performRequest(s, http.MethodGet, tt.path, "")
		require.Equal(t, tt.status, rec.Code, tt.path)
		require.Equal(t, tt.code, decodeErrorBody(t, rec.Body.Bytes())["error"]["code"], tt.path)
	}
}

func TestRouter_Press(t *testing.T) {
	rec := performRequest(newServerUnderTest(t), http.MethodPost, "/api/v1/calendar/press", `{"date":"2024-03-15"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got calendar.CalendarDate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, calendar.CalendarDate{
		DateString: "2024-03-15",
		Day:        15,
		Month:      3,
		Year:       2024,
		Timestamp:  1710460800000,
	}, got)
}

func TestRouter_PressRejected(t *testing.T) {
	s := newServerUnderTest(t)

	tests := []struct {
		body   string
		status int
		code   string
	}{
		{`{"date":"2024-03-08"}`, http.StatusConflict, "day_not_pressable"},
		{`{"date":"2024-03-20"}`, http.StatusConflict, "day_not_pressable"},
		{`{"date":"2024-03-01"}`, http.StatusConflict, "day_not_pressable"},
		{`{"date":"2023-01-01"}`, http.StatusConflict, "day_not_pressable"},
		{`{"date":"15/03/2024"}`, http.StatusBadRequest, "invalid_date"},
		{`{"date":15}`, http.StatusBadRequest, "invalid_request"},
		{`{}`, http.StatusBadRequest, "invalid_request"},
	}
	for _, tt := range tests {
		rec := performRequest(s, http.MethodPost, "/api/v1/calendar/press", tt.body)
		require.Equal(t, tt.status, rec.Code, tt.body)
		require.Equal(t, tt.code, decodeErrorBody(t, rec.Body.Bytes())["error"]["code"], tt.body)
	}
}

func TestRouter_DayInfo(t *testing.T) {
	s := newServerUnderTest(t)

	rec := performRequest(s, http.MethodGet, "/api/v1/calendar/days/2024-03-20", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"title":"Almaty → Astana"`)
	require.Contains(t, rec.Body.String(), `"blackout":false`)

	rec = performRequest(s, http.MethodGet, "/api/v1/calendar/days/2024-03-08", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"blackout":true`)

	rec = performRequest(s, http.MethodGet, "/api/v1/calendar/days/tomorrow", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_PurgeAndReload(t *testing.T) {
	s := newServerUnderTest(t)
	performRequest(s, http.MethodGet, "/api/v1/calendar/months", "")

	_, _, size := s.cache.Stats()
	require.Positive(t, size)

	s.PurgeAndReload()
	_, _, size = s.cache.Stats()
	require.Zero(t, size)

	c, err := s.ScheduleMaintenance()
	require.NoError(t, err)
	require.Len(t, c.Entries(), 1)
}
