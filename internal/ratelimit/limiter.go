// Package ratelimit implements fixed-window request throttling keyed by
// (client address, operation). Counters live in process memory: advisory
// throttling for a single instance, not a security boundary. Deployments
// running multiple replicas need an external shared counter store keyed
// the same way.
package ratelimit

import (
	"sync"
	"time"
)

const (
	DefaultLimit  = 100
	DefaultWindow = time.Minute
)

type entry struct {
	count   int
	resetAt time.Time
}

// Limiter counts requests per key within a fixed wall-clock window. The
// counter resets when the window expires rather than sliding.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry

	limit  int
	window time.Duration
	now    func() time.Time

	done     chan struct{}
	stopOnce sync.Once
}

// New constructs a limiter and starts its background sweep. Callers own
// the lifecycle and must Stop it at shutdown.
func New(limit int, window time.Duration) *Limiter {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}
	l := &Limiter{
		entries: make(map[string]*entry),
		limit:   limit,
		window:  window,
		now:     time.Now,
		done:    make(chan struct{}),
	}
	go l.janitor()
	return l
}

// Allow records one request for the (client, operation) pair and reports
// whether it is within the window's ceiling.
func (l *Limiter) Allow(clientKey, operation string) bool {
	key := clientKey + "|" + operation
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok || now.After(e.resetAt) {
		l.entries[key] = &entry{count: 1, resetAt: now.Add(l.window)}
		return true
	}

	e.count++
	return e.count <= l.limit
}

// Stop halts the background sweep. Idempotent.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.done) })
}

func (l *Limiter) janitor() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.sweep()
		case <-l.done:
			return
		}
	}
}

func (l *Limiter) sweep() {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, e := range l.entries {
		if now.After(e.resetAt) {
			delete(l.entries, key)
		}
	}
}
