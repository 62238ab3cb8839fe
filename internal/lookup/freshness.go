// File path: internal/lookup/freshness.go
package lookup

import (
	"time"

	"github.com/nicodishanthj/locache/internal/sqlite"
)

// Fresh reports whether a cached row is still usable at the given instant.
// A nil entry is never fresh.
func Fresh(entry *sqlite.AccountLocation, ttl time.Duration, now time.Time) bool {
	if entry == nil {
		return false
	}
	return now.Sub(entry.FetchedAt) < ttl
}
