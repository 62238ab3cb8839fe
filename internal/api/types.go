// File path: internal/api/types.go
package api

import "time"

type locationResponse struct {
	Username    string    `json:"username"`
	Location    *string   `json:"location"`
	Cached      bool      `json:"cached"`
	LastChecked time.Time `json:"last_checked"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type addRequest struct {
	Username string  `json:"username"`
	Location *string `json:"location"`
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

type metricsResponse struct {
	CachedUsers           int64 `json:"cached_users"`
	RequestsLast10Minutes int   `json:"requests_last_10_minutes"`
}
