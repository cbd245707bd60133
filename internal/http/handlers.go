package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"fiscal/internal/report"
)

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type readyResponse struct {
	Status        string      `json:"status"`
	Timestamp     string      `json:"timestamp"`
	UptimeSeconds int64       `json:"uptime_seconds"`
	Checks        readyChecks `json:"checks"`
}

type readyChecks struct {
	RequestsTotal      int64 `json:"requests_total"`
	AvgResponseMicros  int64 `json:"avg_response_micros"`
	RateLimitedTotal   int64 `json:"rate_limited_total"`
	RateLimitClients   int64 `json:"rate_limit_clients"`
	SuspiciousRequests int64 `json:"suspicious_requests"`
	ReportCacheEntries int   `json:"report_cache_entries"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	requests, avgMicros := s.tracer.GetMetrics()
	limits := s.limiter.GetMetrics()
	detections := s.detector.GetMetrics()

	writeJSON(w, http.StatusOK, readyResponse{
		Status:        "ready",
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		UptimeSeconds: int64(time.Since(s.startedAt).Seconds()),
		Checks: readyChecks{
			RequestsTotal:      requests,
			AvgResponseMicros:  avgMicros,
			RateLimitedTotal:   limits.TotalHits,
			RateLimitClients:   limits.ClientCount,
			SuspiciousRequests: detections.SuspiciousRequests,
			ReportCacheEntries: s.yearCache.Size(),
		},
	})
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	cal, fields := s.calendarFromRequest(r)
	if fields != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid calendar parameters", fields)
		return
	}
	writeJSON(w, http.StatusOK, report.BuildCalendar(cal))
}

func (s *Server) handleYear(w http.ResponseWriter, r *http.Request) {
	cal, fields := s.calendarFromRequest(r)
	if fields != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid calendar parameters", fields)
		return
	}
	y, err := cal.ParseYear(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), map[string]string{"year": "1..9999"})
		return
	}
	writeJSON(w, http.StatusOK, s.yearReport(r.Context(), y))
}

func (s *Server) handleQuarter(w http.ResponseWriter, r *http.Request) {
	cal, fields := s.calendarFromRequest(r)
	if fields != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid calendar parameters", fields)
		return
	}
	yearParam := chi.URLParam(r, "year")
	if _, err := cal.ParseYear(yearParam); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), map[string]string{"year": "1..9999"})
		return
	}
	q, err := cal.ParseQuarter(yearParam, chi.URLParam(r, "quarter"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), map[string]string{"quarter": "1..4"})
		return
	}
	writeJSON(w, http.StatusOK, report.BuildQuarter(q))
}

func (s *Server) handleDate(w http.ResponseWriter, r *http.Request) {
	cal, fields := s.calendarFromRequest(r)
	if fields != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid calendar parameters", fields)
		return
	}
	d, err := cal.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), map[string]string{"date": "YYYY-MM-DD"})
		return
	}
	dr, err := report.BuildDate(d)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), map[string]string{"date": "fiscal year 1..9999"})
		return
	}
	writeJSON(w, http.StatusOK, dr)
}

func (s *Server) handleCurrent(w http.ResponseWriter, r *http.Request) {
	cal, fields := s.calendarFromRequest(r)
	if fields != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid calendar parameters", fields)
		return
	}
	at := time.Now()
	if v := r.URL.Query().Get("at"); v != "" {
		parsed, err := parseAt(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), map[string]string{"at": "RFC 3339 or YYYY-MM-DD"})
			return
		}
		at = parsed
	}
	cr, err := report.BuildCurrent(cal, at)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), map[string]string{"at": "fiscal year 1..9999"})
		return
	}
	writeJSON(w, http.StatusOK, cr)
}
