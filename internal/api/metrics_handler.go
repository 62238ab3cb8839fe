// File path: internal/api/metrics_handler.go
package api

import (
	"context"
	"net/http"

	"github.com/nicodishanthj/locache/internal/common"
)

func (s *Server) handleMetricsJSON(w http.ResponseWriter, r *http.Request) {
	count, err := s.store.CountLocations(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	writeJSON(w, http.StatusOK, metricsResponse{
		CachedUsers:           count,
		RequestsLast10Minutes: s.requests.Count(s.now()),
	})
}

// cachedUsers feeds the Prometheus gauge. Gauge callbacks cannot report an
// error, so an unreachable store reads as zero and logs.
func (s *Server) cachedUsers() float64 {
	count, err := s.store.CountLocations(context.Background())
	if err != nil {
		common.Logger().Warn("api: cached user count failed", "error", err)
		return 0
	}
	return float64(count)
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"logs": common.LogEntries()})
}
