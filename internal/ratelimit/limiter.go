// File path: internal/ratelimit/limiter.go
package ratelimit

import (
	"sync"
	"time"
)

// Limiter admits at most Limit events per key within a trailing Window.
// Admission history lives in memory for the life of the process; it is not
// shared across instances.
type Limiter struct {
	mu      sync.Mutex
	window  time.Duration
	limit   int
	windows map[string][]time.Time
}

// NewLimiter constructs a sliding-window limiter. Non-positive arguments
// fall back to the package defaults.
func NewLimiter(window time.Duration, limit int) *Limiter {
	if window <= 0 {
		window = DefaultWindow
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Limiter{
		window:  window,
		limit:   limit,
		windows: make(map[string][]time.Time),
	}
}

// Admit reports whether one more event for key is allowed at the given
// instant. Admitted events are appended to the key's window; rejected calls
// leave the window untouched. Timestamps are insertion-ordered, so expired
// entries are evicted from the front.
func (l *Limiter) Admit(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	events := evict(l.windows[key], now.Add(-l.window))
	if len(events) >= l.limit {
		l.windows[key] = events
		return false
	}
	l.windows[key] = append(events, now)
	return true
}

// evict drops timestamps at or before the cutoff, preserving order.
func evict(events []time.Time, cutoff time.Time) []time.Time {
	kept := 0
	for kept < len(events) && !events[kept].After(cutoff) {
		kept++
	}
	if kept == 0 {
		return events
	}
	return append(events[:0:0], events[kept:]...)
}
