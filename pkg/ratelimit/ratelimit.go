// Package ratelimit implements a sliding-window request counter keyed by
// an opaque identifier, typically a client IP. Denial is an expected
// control-flow outcome surfaced as an apperr rate-limit signal, not a
// fault.
package ratelimit

import (
	"sync"
	"time"

	"github.com/snipframe-cloud/snipframe/pkg/apperr"
)

// Config bounds each identifier's window. RetryAfter is the fixed hint
// returned with denials; it is configuration, not derived from window
// state.
type Config struct {
	MaxRequests int
	Window      time.Duration
	RetryAfter  time.Duration
}

// DefaultConfig allows 100 requests per minute.
func DefaultConfig() Config {
	return Config{
		MaxRequests: 100,
		Window:      time.Minute,
		RetryAfter:  30 * time.Second,
	}
}

// Limiter tracks request timestamps per identifier. Each identifier's
// window is independent.
type Limiter struct {
	mu      sync.Mutex
	windows map[string][]time.Time
	cfg     Config
}

// New returns a limiter with the given configuration.
func New(cfg Config) *Limiter {
	return &Limiter{windows: map[string][]time.Time{}, cfg: cfg}
}

// Check purges stale timestamps for identifier, then either records now
// and allows the request, or denies it with the configured retry hint.
func (l *Limiter) Check(identifier string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	live := l.purge(identifier, now)

	if len(live) >= l.cfg.MaxRequests {
		return apperr.RateLimited(
			l.cfg.RetryAfter,
			"rate limit exceeded: %d requests per %v",
			l.cfg.MaxRequests,
			l.cfg.Window,
		)
	}

	l.windows[identifier] = append(live, now)
	return nil
}

// Remaining returns how many requests identifier may still make within
// the current window.
func (l *Limiter) Remaining(identifier string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	live := l.purge(identifier, time.Now())
	if len(live) >= l.cfg.MaxRequests {
		return 0
	}
	return l.cfg.MaxRequests - len(live)
}

// Reset forgets all requests recorded for identifier.
func (l *Limiter) Reset(identifier string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.windows, identifier)
}

// SweepExpired drops identifiers whose windows hold no live timestamps
// and returns how many were dropped.
func (l *Limiter) SweepExpired() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	removed := 0
	for identifier := range l.windows {
		if live := l.purge(identifier, now); len(live) == 0 {
			delete(l.windows, identifier)
			removed++
		}
	}
	return removed
}

// Stats describes the limiter state at a point in time.
type Stats struct {
	Identifiers   int     `json:"identifiers"`
	TotalRequests int     `json:"total_requests"`
	AvgRequests   float64 `json:"avg_requests"`
	MaxRequests   int     `json:"max_requests"`
	WindowSeconds float64 `json:"window_seconds"`
}

// Stats returns a snapshot aggregate over all identifiers.
func (l *Limiter) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()

	stats := Stats{
		Identifiers:   len(l.windows),
		MaxRequests:   l.cfg.MaxRequests,
		WindowSeconds: l.cfg.Window.Seconds(),
	}
	now := time.Now()
	for identifier := range l.windows {
		stats.TotalRequests += len(l.purge(identifier, now))
	}
	if stats.Identifiers > 0 {
		stats.AvgRequests = float64(stats.TotalRequests) / float64(stats.Identifiers)
	}
	return stats
}

// purge rewrites identifier's window to the timestamps still inside the
// configured duration of now and returns the live slice. Callers hold
// the lock.
func (l *Limiter) purge(identifier string, now time.Time) []time.Time {
	window, ok := l.windows[identifier]
	if !ok {
		return nil
	}

	cutoff := now.Add(-l.cfg.Window)
	live := window[:0]
	for _, ts := range window {
		if ts.After(cutoff) {
			live = append(live, ts)
		}
	}
	l.windows[identifier] = live
	return live
}
