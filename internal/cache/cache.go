// Package cache provides the bounded report caches used by the HTTP server
// and the manager that sweeps them in the background.
package cache

import (
	"time"

	"fiscal/internal/log"
)

// Cache is a generic keyed cache.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
	Size() int
}

// Cleaner is a cache that can shed its expired entries on demand.
type Cleaner interface {
	CleanExpired() int
}

// Manager sweeps registered caches on a fixed interval.
type Manager struct {
	sweep  []Cleaner
	logger *log.Logger
	stop   chan struct{}
	done   chan struct{}
}

// NewManager returns a manager with no registered caches.
func NewManager(logger *log.Logger) *Manager {
	return &Manager{
		logger: logger.WithComponent(log.ComponentCache),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Register adds a cache to the sweep set. Not safe to call after
// StartCleanup.
func (m *Manager) Register(cache Cleaner) {
	m.sweep = append(m.sweep, cache)
}

// StartCleanup launches the background sweep goroutine.
func (m *Manager) StartCleanup(interval time.Duration) {
	go m.run(interval)
}

func (m *Manager) run(interval time.Duration) {
	defer close(m.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			dropped := 0
			for _, cache := range m.sweep {
				dropped += cache.CleanExpired()
			}
			if dropped > 0 {
				m.logger.Debug("cleaned expired cache entries", "removed", dropped)
			}
		case <-m.stop:
			return
		}
	}
}

// Stop halts the sweep goroutine and waits for it to exit.
func (m *Manager) Stop() {
	close(m.stop)
	<-m.done
}
