// File path: internal/refresh/pool_test.go
package refresh

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestPoolRunsSubmittedTasks(t *testing.T) {
	pool := NewPool(2, 8)
	pool.Start()
	defer pool.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := make(map[string]bool)
	for _, key := range []string{"alice", "bob", "carol"} {
		wg.Add(1)
		key := key
		ok := pool.Submit(key, func(ctx context.Context) {
			defer wg.Done()
			mu.Lock()
			seen[key] = true
			mu.Unlock()
		})
		if !ok {
			t.Fatalf("Submit(%s) rejected", key)
		}
	}
	wg.Wait()

	for _, key := range []string{"alice", "bob", "carol"} {
		if !seen[key] {
			t.Fatalf("task %s never ran", key)
		}
	}
}

func TestPoolDropsWhenQueueFull(t *testing.T) {
	pool := NewPool(1, 1)
	pool.Start()
	defer pool.Stop()

	release := make(chan struct{})
	started := make(chan struct{})
	pool.Submit("blocker", func(ctx context.Context) {
		close(started)
		<-release
	})
	<-started

	// One task fits in the queue; everything past that is dropped.
	accepted := 0
	for i := 0; i < 10; i++ {
		if pool.Submit("overflow", func(ctx context.Context) {}) {
			accepted++
		}
	}
	close(release)

	if accepted != 1 {
		t.Fatalf("accepted %d tasks past the queue, want 1", accepted)
	}
	if pool.Dropped() != 9 {
		t.Fatalf("Dropped = %d, want 9", pool.Dropped())
	}
}

func TestPoolStopRejectsNewWork(t *testing.T) {
	pool := NewPool(1, 4)
	pool.Start()
	pool.Stop()

	if pool.Submit("late", func(ctx context.Context) {}) {
		t.Fatal("Submit after Stop accepted")
	}
}

func TestPoolStopWaitsForInFlightTask(t *testing.T) {
	pool := NewPool(1, 1)
	pool.Start()

	done := make(chan struct{})
	started := make(chan struct{})
	pool.Submit("slow", func(ctx context.Context) {
		close(started)
		time.Sleep(20 * time.Millisecond)
		close(done)
	})
	<-started
	pool.Stop()

	select {
	case <-done:
	default:
		t.Fatal("Stop returned before the in-flight task finished")
	}
}
