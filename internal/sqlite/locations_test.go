// File path: internal/sqlite/locations_test.go
package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "locations.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func strptr(s string) *string { return &s }

func TestLocationMissing(t *testing.T) {
	store := newTestStore(t)
	record, err := store.Location(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Location: %v", err)
	}
	if record != nil {
		t.Fatalf("Location = %+v, want nil for missing row", record)
	}
}

func TestUpsertThenGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	fetchedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	if err := store.UpsertLocation(ctx, "alice", strptr("United States"), fetchedAt); err != nil {
		t.Fatalf("UpsertLocation: %v", err)
	}
	record, err := store.Location(ctx, "alice")
	if err != nil {
		t.Fatalf("Location: %v", err)
	}
	if record == nil {
		t.Fatal("Location = nil after upsert")
	}
	if record.Location == nil || *record.Location != "United States" {
		t.Fatalf("Location = %v, want United States", record.Location)
	}
	if !record.FetchedAt.UTC().Equal(fetchedAt) {
		t.Fatalf("FetchedAt = %v, want %v", record.FetchedAt, fetchedAt)
	}
}

func TestUpsertIsIdempotentAndUpdates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	first := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	second := first.Add(48 * time.Hour)

	if err := store.UpsertLocation(ctx, "alice", strptr("Germany"), first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := store.UpsertLocation(ctx, "alice", strptr("Germany"), first); err != nil {
		t.Fatalf("repeated upsert: %v", err)
	}
	if err := store.UpsertLocation(ctx, "alice", strptr("France"), second); err != nil {
		t.Fatalf("updating upsert: %v", err)
	}

	record, err := store.Location(ctx, "alice")
	if err != nil {
		t.Fatalf("Location: %v", err)
	}
	if record.Location == nil || *record.Location != "France" {
		t.Fatalf("Location = %v, want France after update", record.Location)
	}
	if !record.FetchedAt.UTC().Equal(second) {
		t.Fatalf("FetchedAt = %v, want %v", record.FetchedAt, second)
	}

	count, err := store.CountLocations(ctx)
	if err != nil {
		t.Fatalf("CountLocations: %v", err)
	}
	if count != 1 {
		t.Fatalf("CountLocations = %d, want a single row per username", count)
	}
}

func TestUpsertNilLocation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	fetchedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	if err := store.UpsertLocation(ctx, "alice", nil, fetchedAt); err != nil {
		t.Fatalf("UpsertLocation: %v", err)
	}
	record, err := store.Location(ctx, "alice")
	if err != nil {
		t.Fatalf("Location: %v", err)
	}
	if record == nil || record.Location != nil {
		t.Fatalf("record = %+v, want row with nil location", record)
	}
}

// Concurrent writers for the same username must leave the row matching one
// writer's location and timestamp pair, never a mix.
func TestConcurrentUpsertsLeaveConsistentRow(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	const writers = 16
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			location := fmt.Sprintf("location-%d", i)
			fetchedAt := base.Add(time.Duration(i) * time.Second)
			if err := store.UpsertLocation(ctx, "alice", &location, fetchedAt); err != nil {
				t.Errorf("writer %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	record, err := store.Location(ctx, "alice")
	if err != nil {
		t.Fatalf("Location: %v", err)
	}
	if record == nil || record.Location == nil {
		t.Fatal("row missing after concurrent upserts")
	}
	matched := false
	for i := 0; i < writers; i++ {
		if *record.Location == fmt.Sprintf("location-%d", i) &&
			record.FetchedAt.UTC().Equal(base.Add(time.Duration(i)*time.Second)) {
			matched = true
			break
		}
	}
	if !matched {
		t.Fatalf("row mixes writers: location=%s fetched_at=%v", *record.Location, record.FetchedAt)
	}

	count, err := store.CountLocations(ctx)
	if err != nil {
		t.Fatalf("CountLocations: %v", err)
	}
	if count != 1 {
		t.Fatalf("CountLocations = %d, want 1", count)
	}
}

func TestCountLocations(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	fetchedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for _, username := range []string{"alice", "bob", "carol"} {
		if err := store.UpsertLocation(ctx, username, strptr("Canada"), fetchedAt); err != nil {
			t.Fatalf("UpsertLocation(%s): %v", username, err)
		}
	}
	count, err := store.CountLocations(ctx)
	if err != nil {
		t.Fatalf("CountLocations: %v", err)
	}
	if count != 3 {
		t.Fatalf("CountLocations = %d, want 3", count)
	}
}

func TestHealth(t *testing.T) {
	store := newTestStore(t)
	if err := store.Health(context.Background()); err != nil {
		t.Fatalf("Health: %v", err)
	}
	store.Close()
	if err := store.Health(context.Background()); err == nil {
		t.Fatal("Health on a closed store succeeded")
	}
}
