// File path: internal/api/location_handlers.go
package api

import (
	"encoding/json"
	"net/http"

	"github.com/nicodishanthj/locache/internal/common"
	"github.com/nicodishanthj/locache/internal/lookup"
)

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	raw := r.URL.Query().Get("a")
	result, err := s.lookups.Check(r.Context(), raw)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	logger.Debug("api: check served", "username", result.Username, "cached", result.Cached)
	writeJSON(w, http.StatusOK, toLocationResponse(result))
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	var req addRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("api: add decode failed", "error", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	result, err := s.lookups.Set(r.Context(), req.Username, req.Location)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	logger.Info("api: location recorded", "username", result.Username)
	writeJSON(w, http.StatusCreated, toLocationResponse(result))
}

func toLocationResponse(result *lookup.Result) locationResponse {
	return locationResponse{
		Username:    result.Username,
		Location:    result.Location,
		Cached:      result.Cached,
		LastChecked: result.LastChecked,
		ExpiresAt:   result.ExpiresAt,
	}
}
