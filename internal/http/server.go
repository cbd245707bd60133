// Package http implements the fiscald JSON API: fiscal-period reports
// computed on demand, a small LRU cache for year reports, and the
// trace/rate-limit/security middleware chain around a chi router.
package http

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/singleflight"

	"fiscal"
	"fiscal/internal/cache"
	"fiscal/internal/config"
	"fiscal/internal/log"
	"fiscal/internal/middleware/ratelimit"
	"fiscal/internal/middleware/security"
	"fiscal/internal/middleware/trace"
	"fiscal/internal/report"
)

// Server serves fiscal-period reports over HTTP.
type Server struct {
	http.Server

	cfg    *config.Config
	logger *log.Logger
	cal    fiscal.Calendar

	detector *security.Detector
	limiter  *ratelimit.Limiter
	tracer   *trace.Middleware

	yearCache cache.Cache[report.YearReport]
	cacheMgr  *cache.Manager
	fills     singleflight.Group

	startedAt    time.Time
	shutdownOnce sync.Once
}

// NewServer wires routes, middleware, and the report cache. It fails only
// when the configured default calendar is invalid.
func NewServer(cfg *config.Config, logger *log.Logger) (*Server, error) {
	cal, err := cfg.Calendar()
	if err != nil {
		return nil, err
	}

	httpLogger := logger.WithComponent(log.ComponentHTTP)
	detector := security.NewDetector()
	limiter := ratelimit.NewLimiter(ratelimit.Config{
		RequestsPerMinute: cfg.RateLimitPerMinute,
	})
	tracer := trace.NewMiddleware(logger, detector.ExtractClientIP)

	yearCache := cache.NewLRUCache[report.YearReport](cfg.CacheMaxEntries, cfg.CacheTTL)
	cacheMgr := cache.NewManager(logger)
	cacheMgr.Register(yearCache)
	cacheMgr.StartCleanup(10 * time.Minute)

	r := chi.NewRouter()
	s := &Server{
		Server: http.Server{
			Addr:           ":" + cfg.Port,
			Handler:        r,
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   10 * time.Second,
			IdleTimeout:    60 * time.Second,
			MaxHeaderBytes: 1 << 16, // 64KB
		},
		cfg:       cfg,
		logger:    httpLogger,
		cal:       cal,
		detector:  detector,
		limiter:   limiter,
		tracer:    tracer,
		yearCache: yearCache,
		cacheMgr:  cacheMgr,
		startedAt: time.Now(),
	}

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())

	r.Use(log.Middleware(httpLogger))
	r.Use(headers.Middleware)
	r.Use(tracer.Middleware)
	r.Use(s.flagSuspicious)
	r.Use(limiter.Middleware(detector.ExtractClientIP, s.handleRateLimited))

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/calendar", s.handleCalendar)
		r.Get("/years/{year}", s.handleYear)
		r.Get("/years/{year}/quarters/{quarter}", s.handleQuarter)
		r.Get("/dates/{date}", s.handleDate)
		r.Get("/current", s.handleCurrent)
	})

	return s, nil
}

// Shutdown stops the background cleanup goroutines, then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheMgr.Stop()
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// flagSuspicious logs requests matching known attack patterns. Detection
// never blocks: the endpoints are read-only math.
func (s *Server) flagSuspicious(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.detector.DetectSuspiciousRequest(r) {
			s.logger.WarnContext(r.Context(), "suspicious request pattern",
				log.FieldClientIP, s.detector.ExtractClientIP(r),
				log.FieldMethod, r.Method,
				log.FieldPath, r.URL.Path)
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleRateLimited(w http.ResponseWriter, r *http.Request) {
	s.logger.WarnContext(r.Context(), "rate limit exceeded",
		log.FieldClientIP, s.detector.ExtractClientIP(r),
		log.FieldMethod, r.Method,
		log.FieldPath, r.URL.Path)
	w.Header().Set("Retry-After", "60")
	writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "rate limit exceeded, retry later", nil)
}

// yearReport returns the cached report for y, building it at most once per
// key when concurrent requests miss together.
func (s *Server) yearReport(ctx context.Context, y fiscal.Year) report.YearReport {
	key := yearKey(y)
	if cached, ok := s.yearCache.Get(key); ok {
		s.logger.DebugContext(ctx, "year report cache hit", log.FieldFiscalYear, y.Year())
		return cached
	}
	v, _, _ := s.fills.Do(key, func() (any, error) {
		built := report.BuildYear(y)
		s.yearCache.Set(key, built)
		return built, nil
	})
	return v.(report.YearReport)
}

func yearKey(y fiscal.Year) string {
	cal := y.Calendar()
	return strconv.Itoa(int(cal.StartMonth())) + "-" +
		strconv.Itoa(cal.StartDay()) + "-" +
		cal.Naming().String() + "-" +
		strconv.Itoa(y.Year())
}
