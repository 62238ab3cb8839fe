// File path: internal/sqlite/locations.go
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Location returns the cached row for a normalized username, or nil when no
// row exists.
func (s *Store) Location(ctx context.Context, username string) (*AccountLocation, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("sqlite store not initialised")
	}
	var record AccountLocation
	err := s.db.GetContext(ctx, &record, `SELECT * FROM account_locations WHERE username = ?`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select account location: %w", err)
	}
	return &record, nil
}

// UpsertLocation inserts or replaces the cached row for a normalized
// username in a single conflict-resolving statement. Concurrent writers for
// the same username resolve to the last physically committed write; the row
// is never left mixing one writer's location with another's timestamp.
func (s *Store) UpsertLocation(ctx context.Context, username string, location *string, fetchedAt time.Time) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlite store not initialised")
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO account_locations(username, location, fetched_at)
                VALUES(?, ?, ?)
                ON CONFLICT(username) DO UPDATE SET
                        location = excluded.location,
                        fetched_at = excluded.fetched_at`,
		username, location, fetchedAt.UTC())
	if err != nil {
		return fmt.Errorf("upsert account location: %w", err)
	}
	return nil
}

// CountLocations returns the number of cached rows.
func (s *Store) CountLocations(ctx context.Context) (int64, error) {
	if s == nil || s.db == nil {
		return 0, fmt.Errorf("sqlite store not initialised")
	}
	var count int64
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM account_locations`); err != nil {
		return 0, fmt.Errorf("count account locations: %w", err)
	}
	return count, nil
}
