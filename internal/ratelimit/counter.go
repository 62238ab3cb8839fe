// File path: internal/ratelimit/counter.go
package ratelimit

import (
	"sync"
	"time"
)

// Counter tracks inbound-request timestamps over a trailing window. It is
// used for reporting only and never rejects anything.
type Counter struct {
	mu     sync.Mutex
	window time.Duration
	events []time.Time
}

// NewCounter constructs a sliding-window counter. A non-positive window
// falls back to the package default.
func NewCounter(window time.Duration) *Counter {
	if window <= 0 {
		window = DefaultRequestWindow
	}
	return &Counter{window: window}
}

// Record appends an event at the given instant, evicting expired entries.
func (c *Counter) Record(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(evict(c.events, now.Add(-c.window)), now)
}

// Count returns the number of events inside the trailing window.
func (c *Counter) Count(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = evict(c.events, now.Add(-c.window))
	return len(c.events)
}
