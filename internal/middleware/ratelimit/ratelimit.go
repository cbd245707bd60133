// Package ratelimit provides the per-client request limiter for the HTTP
// server: a fixed one-minute window per client IP with background pruning
// of idle clients.
package ratelimit

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

const defaultRequestsPerMinute = 60

// Config tunes the limiter. Zero values fall back to 60 requests per minute
// and a 5 minute prune interval.
type Config struct {
	RequestsPerMinute int
	CleanupInterval   time.Duration
}

// Limiter counts requests per client over a fixed one-minute window.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window

	perMinute     int
	pruneInterval time.Duration

	rejected int64

	stop     chan struct{}
	stopOnce sync.Once
}

type window struct {
	openedAt time.Time
	count    int
}

// NewLimiter builds a limiter and starts its prune goroutine; callers must
// Stop it on shutdown.
func NewLimiter(config Config) *Limiter {
	if config.RequestsPerMinute <= 0 {
		config.RequestsPerMinute = defaultRequestsPerMinute
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = 5 * time.Minute
	}

	l := &Limiter{
		windows:       make(map[string]*window),
		perMinute:     config.RequestsPerMinute,
		pruneInterval: config.CleanupInterval,
		stop:          make(chan struct{}),
	}
	go l.prune()
	return l
}

// Allow records a request from clientIP and reports whether it fits the
// current window.
func (l *Limiter) Allow(clientIP string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, ok := l.windows[clientIP]
	if !ok || now.Sub(w.openedAt) > time.Minute {
		l.windows[clientIP] = &window{openedAt: now, count: 1}
		return true
	}

	w.count++
	if w.count > l.perMinute {
		atomic.AddInt64(&l.rejected, 1)
		return false
	}
	return true
}

func (l *Limiter) prune() {
	ticker := time.NewTicker(l.pruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-10 * time.Minute)
			l.mu.Lock()
			for ip, w := range l.windows {
				if w.openedAt.Before(cutoff) {
					delete(l.windows, ip)
				}
			}
			l.mu.Unlock()
		case <-l.stop:
			return
		}
	}
}

// Stop halts the prune goroutine. Safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		close(l.stop)
	})
}

// Metrics reports rate limiting activity.
type Metrics struct {
	TotalHits   int64
	ClientCount int64
}

// GetMetrics returns the rejection total and the number of tracked clients.
func (l *Limiter) GetMetrics() Metrics {
	l.mu.Lock()
	clients := int64(len(l.windows))
	l.mu.Unlock()

	return Metrics{
		TotalHits:   atomic.LoadInt64(&l.rejected),
		ClientCount: clients,
	}
}

// Middleware limits requests per client, resolving clients with extractIP
// and delegating the 429 response to onLimit so the caller owns the body
// shape. A nil onLimit falls back to a plain text error.
func (l *Limiter) Middleware(extractIP func(*http.Request) string, onLimit func(http.ResponseWriter, *http.Request)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow(extractIP(r)) {
				if onLimit != nil {
					onLimit(w, r)
				} else {
					w.Header().Set("Retry-After", "60")
					http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				}
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
