package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fiscal/internal/config"
	"fiscal/internal/log"
	"fiscal/internal/report"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:               "0",
		FiscalStartMonth:   10,
		FiscalStartDay:     1,
		FiscalYearNaming:   "end",
		CacheMaxEntries:    16,
		CacheTTL:           time.Minute,
		RateLimitPerMinute: 1000,
		ShutdownTimeout:    time.Second,
		LogLevel:           "error",
	}
}

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	logger := log.New(log.Config{Level: slog.LevelError, Component: log.ComponentHTTP})
	s, err := NewServer(cfg, logger)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = s.Shutdown(ctx)
	})
	return s
}

func get(s *Server, target string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	s.Server.Handler.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
	return v
}

func TestHandleYear(t *testing.T) {
	s := newTestServer(t, testConfig())

	rr := get(s, "/api/v1/years/2017")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}
	r := decode[report.YearReport](t, rr)

	if r.FiscalYear != 2017 || r.Label != "FY2017" {
		t.Errorf("got fiscal_year=%d label=%q, want 2017 FY2017", r.FiscalYear, r.Label)
	}
	if r.Start != "2016-10-01T00:00:00Z" || r.End != "2017-09-30T23:59:59Z" {
		t.Errorf("span = %q..%q, want 2016-10-01T00:00:00Z..2017-09-30T23:59:59Z", r.Start, r.End)
	}
	if len(r.Quarters) != 4 {
		t.Fatalf("len(quarters) = %d, want 4", len(r.Quarters))
	}
	if r.Quarters[0].End != "2016-12-31T23:59:59Z" {
		t.Errorf("Q1 end = %q, want 2016-12-31T23:59:59Z", r.Quarters[0].End)
	}
}

func TestHandleYear_Validation(t *testing.T) {
	s := newTestServer(t, testConfig())

	tests := []struct {
		name  string
		path  string
		field string
	}{
		{name: "non-digit year", path: "/api/v1/years/20x7", field: "year"},
		{name: "year zero", path: "/api/v1/years/0", field: "year"},
		{name: "five-digit year", path: "/api/v1/years/10000", field: "year"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := get(s, tt.path)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400: %s", rr.Code, rr.Body.String())
			}
			resp := decode[ErrorResponse](t, rr)
			if resp.Error.Code != "VALIDATION_ERROR" {
				t.Errorf("code = %q, want VALIDATION_ERROR", resp.Error.Code)
			}
			if _, ok := resp.Error.Fields[tt.field]; !ok {
				t.Errorf("fields = %v, want key %q", resp.Error.Fields, tt.field)
			}
		})
	}
}

func TestHandleQuarter(t *testing.T) {
	s := newTestServer(t, testConfig())

	rr := get(s, "/api/v1/years/2017/quarters/1")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}
	r := decode[report.QuarterReport](t, rr)

	if r.Label != "FY2017 Q1" {
		t.Errorf("label = %q, want FY2017 Q1", r.Label)
	}
	if r.Start != "2016-10-01T00:00:00Z" || r.End != "2016-12-31T23:59:59Z" {
		t.Errorf("span = %q..%q, want 2016-10-01T00:00:00Z..2016-12-31T23:59:59Z", r.Start, r.End)
	}
	if r.Previous == nil || r.Previous.FiscalYear != 2016 || r.Previous.Quarter != 4 {
		t.Errorf("previous = %+v, want FY2016 Q4", r.Previous)
	}
	if r.Next == nil || r.Next.FiscalYear != 2017 || r.Next.Quarter != 2 {
		t.Errorf("next = %+v, want FY2017 Q2", r.Next)
	}
}

func TestHandleQuarter_Validation(t *testing.T) {
	s := newTestServer(t, testConfig())

	tests := []struct {
		name  string
		path  string
		field string
	}{
		{name: "quarter five", path: "/api/v1/years/2017/quarters/5", field: "quarter"},
		{name: "quarter zero", path: "/api/v1/years/2017/quarters/0", field: "quarter"},
		{name: "non-digit quarter", path: "/api/v1/years/2017/quarters/one", field: "quarter"},
		{name: "bad year attributes to year", path: "/api/v1/years/banana/quarters/1", field: "year"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := get(s, tt.path)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400: %s", rr.Code, rr.Body.String())
			}
			resp := decode[ErrorResponse](t, rr)
			if _, ok := resp.Error.Fields[tt.field]; !ok {
				t.Errorf("fields = %v, want key %q", resp.Error.Fields, tt.field)
			}
		})
	}
}

func TestHandleDate(t *testing.T) {
	s := newTestServer(t, testConfig())

	rr := get(s, "/api/v1/dates/2017-10-01")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}
	r := decode[report.DateReport](t, rr)

	if r.FiscalYear != 2018 || r.Quarter != 1 {
		t.Errorf("got FY%d Q%d, want FY2018 Q1", r.FiscalYear, r.Quarter)
	}
	if r.FiscalDay != 1 {
		t.Errorf("fiscal_day = %d, want 1", r.FiscalDay)
	}
	if !r.Boundaries.Q1Start {
		t.Error("boundaries.q1_start = false, want true")
	}
	if r.Boundaries.Q4End {
		t.Error("boundaries.q4_end = true, want false")
	}
	if r.PreviousQuarter.FiscalYear != 2017 || r.PreviousQuarter.Quarter != 4 {
		t.Errorf("previous_quarter = %+v, want FY2017 Q4", r.PreviousQuarter)
	}
}

func TestHandleDate_Validation(t *testing.T) {
	s := newTestServer(t, testConfig())

	tests := []struct {
		name string
		path string
		code int
	}{
		{name: "leap day in leap year", path: "/api/v1/dates/2016-02-29", code: http.StatusOK},
		{name: "leap day in common year", path: "/api/v1/dates/2017-02-29", code: http.StatusBadRequest},
		{name: "month thirteen", path: "/api/v1/dates/2017-13-01", code: http.StatusBadRequest},
		{name: "not a date", path: "/api/v1/dates/yesterday", code: http.StatusBadRequest},
		{name: "past representable years", path: "/api/v1/dates/9999-10-01", code: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := get(s, tt.path)
			if rr.Code != tt.code {
				t.Fatalf("status = %d, want %d: %s", rr.Code, tt.code, rr.Body.String())
			}
			if tt.code == http.StatusBadRequest {
				resp := decode[ErrorResponse](t, rr)
				if _, ok := resp.Error.Fields["date"]; !ok {
					t.Errorf("fields = %v, want key date", resp.Error.Fields)
				}
			}
		})
	}
}

func TestHandleCurrent(t *testing.T) {
	s := newTestServer(t, testConfig())

	rr := get(s, "/api/v1/current?at=2017-03-15T14:30:00Z")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}
	r := decode[report.CurrentReport](t, rr)
	if r.At != "2017-03-15T14:30:00Z" {
		t.Errorf("at = %q, want 2017-03-15T14:30:00Z", r.At)
	}
	if r.FiscalYear != 2017 || r.Quarter != 2 {
		t.Errorf("got FY%d Q%d, want FY2017 Q2", r.FiscalYear, r.Quarter)
	}

	// Bare date form.
	rr = get(s, "/api/v1/current?at=2017-10-01")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}
	r = decode[report.CurrentReport](t, rr)
	if r.FiscalYear != 2018 || r.Quarter != 1 {
		t.Errorf("got FY%d Q%d, want FY2018 Q1", r.FiscalYear, r.Quarter)
	}

	// Default is the server clock; only the shape is predictable.
	rr = get(s, "/api/v1/current")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}
	r = decode[report.CurrentReport](t, rr)
	if r.FiscalYear == 0 || r.Quarter == 0 {
		t.Errorf("got FY%d Q%d, want populated report", r.FiscalYear, r.Quarter)
	}

	rr = get(s, "/api/v1/current?at=noonish")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rr.Code, rr.Body.String())
	}
	resp := decode[ErrorResponse](t, rr)
	if _, ok := resp.Error.Fields["at"]; !ok {
		t.Errorf("fields = %v, want key at", resp.Error.Fields)
	}
}

func TestHandleCalendar(t *testing.T) {
	s := newTestServer(t, testConfig())

	rr := get(s, "/api/v1/calendar")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}
	r := decode[report.CalendarInfo](t, rr)
	want := report.CalendarInfo{StartMonth: "October", StartMonthNumber: 10, StartDay: 1, YearNaming: "end"}
	if r != want {
		t.Errorf("calendar = %+v, want %+v", r, want)
	}
}

func TestCalendarOverrides(t *testing.T) {
	s := newTestServer(t, testConfig())

	rr := get(s, "/api/v1/calendar?start_month=4&start_day=6&year_naming=start")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}
	r := decode[report.CalendarInfo](t, rr)
	want := report.CalendarInfo{StartMonth: "April", StartMonthNumber: 4, StartDay: 6, YearNaming: "start"}
	if r != want {
		t.Errorf("calendar = %+v, want %+v", r, want)
	}

	// The override changes the arithmetic, not just the echo: an Australian
	// July-start year named for its starting calendar year.
	rr = get(s, "/api/v1/years/2025?start_month=7&year_naming=start")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}
	yr := decode[report.YearReport](t, rr)
	if yr.Start != "2025-07-01T00:00:00Z" || yr.End != "2026-06-30T23:59:59Z" {
		t.Errorf("span = %q..%q, want 2025-07-01T00:00:00Z..2026-06-30T23:59:59Z", yr.Start, yr.End)
	}
}

func TestCalendarOverrides_Validation(t *testing.T) {
	s := newTestServer(t, testConfig())

	tests := []struct {
		name  string
		path  string
		field string
	}{
		{name: "month thirteen", path: "/api/v1/calendar?start_month=13", field: "start_month"},
		{name: "non-numeric month", path: "/api/v1/years/2017?start_month=october", field: "start_month"},
		{name: "day thirty-two", path: "/api/v1/calendar?start_day=32", field: "start_day"},
		{name: "unknown naming", path: "/api/v1/current?year_naming=middle", field: "year_naming"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := get(s, tt.path)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400: %s", rr.Code, rr.Body.String())
			}
			resp := decode[ErrorResponse](t, rr)
			if _, ok := resp.Error.Fields[tt.field]; !ok {
				t.Errorf("fields = %v, want key %q", resp.Error.Fields, tt.field)
			}
		})
	}
}
