// File path: internal/api/health_handler.go
package api

import (
	"net/http"

	"github.com/nicodishanthj/locache/internal/common"
)

func (s *Server) handleHealthcheck(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Health(r.Context()); err != nil {
		common.Logger().Error("api: health probe failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "error", Database: "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Database: "available"})
}
