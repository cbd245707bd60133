package http

import (
	"net/http"
	"sync"
	"testing"
)

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t, testConfig())

	rr := get(s, "/healthz")
	if rr.Code != http.StatusOK {
		t.Fatalf("/healthz status = %d, want 200", rr.Code)
	}
	health := decode[healthResponse](t, rr)
	if health.Status != "ok" {
		t.Errorf("status = %q, want ok", health.Status)
	}

	rr = get(s, "/readyz")
	if rr.Code != http.StatusOK {
		t.Fatalf("/readyz status = %d, want 200", rr.Code)
	}
	ready := decode[readyResponse](t, rr)
	if ready.Status != "ready" {
		t.Errorf("status = %q, want ready", ready.Status)
	}
	// The healthz probe above already went through the trace middleware.
	if ready.Checks.RequestsTotal < 1 {
		t.Errorf("checks.requests_total = %d, want >= 1", ready.Checks.RequestsTotal)
	}
}

func TestSecurityHeaders(t *testing.T) {
	s := newTestServer(t, testConfig())

	rr := get(s, "/api/v1/calendar")
	if got := rr.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
	if got := rr.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q, want DENY", got)
	}
	if got := rr.Header().Get("Content-Security-Policy"); got == "" {
		t.Error("Content-Security-Policy header missing")
	}
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t, testConfig())

	rr := get(s, "/api/v1/decades/201")
	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitPerMinute = 2
	s := newTestServer(t, cfg)

	for i := 0; i < 2; i++ {
		if rr := get(s, "/api/v1/calendar"); rr.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i+1, rr.Code)
		}
	}

	rr := get(s, "/api/v1/calendar")
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rr.Code)
	}
	if rr.Header().Get("Retry-After") != "60" {
		t.Errorf("Retry-After = %q, want 60", rr.Header().Get("Retry-After"))
	}
	resp := decode[ErrorResponse](t, rr)
	if resp.Error.Code != "RATE_LIMITED" {
		t.Errorf("code = %q, want RATE_LIMITED", resp.Error.Code)
	}
}

func TestYearReportCache(t *testing.T) {
	s := newTestServer(t, testConfig())

	if n := s.yearCache.Size(); n != 0 {
		t.Fatalf("initial cache size = %d, want 0", n)
	}

	get(s, "/api/v1/years/2017")
	if n := s.yearCache.Size(); n != 1 {
		t.Errorf("cache size after first request = %d, want 1", n)
	}

	get(s, "/api/v1/years/2017")
	if n := s.yearCache.Size(); n != 1 {
		t.Errorf("cache size after repeat request = %d, want 1", n)
	}

	get(s, "/api/v1/years/2018")
	if n := s.yearCache.Size(); n != 2 {
		t.Errorf("cache size after second year = %d, want 2", n)
	}

	// A calendar override is a distinct key: same label, different span.
	get(s, "/api/v1/years/2017?start_month=7&year_naming=start")
	if n := s.yearCache.Size(); n != 3 {
		t.Errorf("cache size after override request = %d, want 3", n)
	}
}

func TestYearReportConcurrentRequests(t *testing.T) {
	s := newTestServer(t, testConfig())

	var wg sync.WaitGroup
	codes := make([]int, 16)
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = get(s, "/api/v1/years/2017").Code
		}(i)
	}
	wg.Wait()

	for i, code := range codes {
		if code != http.StatusOK {
			t.Errorf("request %d status = %d, want 200", i, code)
		}
	}
	if n := s.yearCache.Size(); n != 1 {
		t.Errorf("cache size = %d, want 1", n)
	}
}
