package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fiscal"
)

// calendarFromRequest resolves the effective calendar for a request: the
// configured default unless start_month, start_day, or year_naming query
// parameters override it. A non-nil field map means validation failed.
func (s *Server) calendarFromRequest(r *http.Request) (fiscal.Calendar, map[string]string) {
	query := r.URL.Query()

	startMonth := s.cal.StartMonth()
	startDay := s.cal.StartDay()
	naming := s.cal.Naming()
	overridden := false

	fields := make(map[string]string)

	if v := strings.TrimSpace(query.Get("start_month")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			fields["start_month"] = "1..12"
		} else {
			startMonth = time.Month(n)
			overridden = true
		}
	}
	if v := strings.TrimSpace(query.Get("start_day")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			fields["start_day"] = "1..31"
		} else {
			startDay = n
			overridden = true
		}
	}
	if v := strings.TrimSpace(query.Get("year_naming")); v != "" {
		parsed, err := fiscal.ParseYearNaming(v)
		if err != nil {
			fields["year_naming"] = "end or start"
		} else {
			naming = parsed
			overridden = true
		}
	}
	if len(fields) > 0 {
		return fiscal.Calendar{}, fields
	}
	if !overridden {
		return s.cal, nil
	}

	cal, err := fiscal.New(startMonth, startDay, naming)
	if err != nil {
		switch {
		case errors.Is(err, fiscal.ErrInvalidMonth):
			fields["start_month"] = "1..12"
		case errors.Is(err, fiscal.ErrInvalidDay):
			fields["start_day"] = "1..31"
		default:
			fields["calendar"] = "invalid"
		}
		return fiscal.Calendar{}, fields
	}
	return cal, nil
}

// parseAt reads the optional ?at= instant: RFC 3339 or a bare ISO date.
func parseAt(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse instant %q: want RFC 3339 or YYYY-MM-DD", v)
	}
	return t, nil
}
