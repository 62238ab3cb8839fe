// File path: internal/ratelimit/counter_test.go
package ratelimit

import (
	"testing"
	"time"
)

func TestCounterCountsWithinWindow(t *testing.T) {
	counter := NewCounter(600 * time.Second)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 4; i++ {
		counter.Record(now.Add(time.Duration(i) * time.Minute))
	}
	if got := counter.Count(now.Add(3 * time.Minute)); got != 4 {
		t.Fatalf("Count = %d, want 4", got)
	}
}

func TestCounterEvictsExpiredEvents(t *testing.T) {
	counter := NewCounter(600 * time.Second)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	counter.Record(now)
	counter.Record(now.Add(5 * time.Minute))
	counter.Record(now.Add(9 * time.Minute))

	if got := counter.Count(now.Add(10*time.Minute + time.Second)); got != 2 {
		t.Fatalf("Count after first event expired = %d, want 2", got)
	}
	if got := counter.Count(now.Add(20 * time.Minute)); got != 0 {
		t.Fatalf("Count after all events expired = %d, want 0", got)
	}
}

func TestCounterIsUnbounded(t *testing.T) {
	counter := NewCounter(600 * time.Second)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5000; i++ {
		counter.Record(now)
	}
	if got := counter.Count(now); got != 5000 {
		t.Fatalf("Count = %d, want 5000", got)
	}
}
