// File path: internal/sqlite/types.go
package sqlite

import "time"

// AccountLocation is the persisted cache row for one normalized username.
// Location is nil when a caller explicitly recorded "no location".
type AccountLocation struct {
	ID        int64     `db:"id"`
	Username  string    `db:"username"`
	Location  *string   `db:"location"`
	FetchedAt time.Time `db:"fetched_at"`
}
