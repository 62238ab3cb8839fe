// File path: internal/lookup/freshness_test.go
package lookup

import (
	"testing"
	"time"

	"github.com/nicodishanthj/locache/internal/sqlite"
)

func TestFresh(t *testing.T) {
	ttl := 7 * 24 * time.Hour
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		entry *sqlite.AccountLocation
		want  bool
	}{
		{name: "nil entry", entry: nil, want: false},
		{name: "just fetched", entry: &sqlite.AccountLocation{FetchedAt: now}, want: true},
		{name: "one hour old", entry: &sqlite.AccountLocation{FetchedAt: now.Add(-time.Hour)}, want: true},
		{name: "just inside ttl", entry: &sqlite.AccountLocation{FetchedAt: now.Add(-ttl + time.Second)}, want: true},
		{name: "exactly at ttl", entry: &sqlite.AccountLocation{FetchedAt: now.Add(-ttl)}, want: false},
		{name: "well past ttl", entry: &sqlite.AccountLocation{FetchedAt: now.Add(-8 * 24 * time.Hour)}, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Fresh(tc.entry, ttl, now); got != tc.want {
				t.Fatalf("Fresh = %v, want %v", got, tc.want)
			}
		})
	}
}
