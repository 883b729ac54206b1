// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/minglehq/mingle/internal/domain/recommend"
)

// RecommendationsHandler handles recommendation list requests.
type RecommendationsHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewRecommendationsHandler creates a new recommendations handler.
func NewRecommendationsHandler(deps Dependencies, maxLimit int) *RecommendationsHandler {
	return &RecommendationsHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetRecommendations handles GET /recommendations/{user_id}?limit=N
// requests. An absent limit falls back to the configured default; a limit
// above the configured maximum is rejected.
func (h *RecommendationsHandler) HandleGetRecommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /recommendations/
	userID := strings.TrimPrefix(r.URL.Path, "/recommendations/")
	if userID == "" || strings.Contains(userID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	limit := 0 // service substitutes its default
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
		if n > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", ErrBadRequest)
			return
		}
		limit = n
	}

	recs, err := h.deps.Recommend(r.Context(), userID, limit)
	if err != nil {
		switch {
		case errors.Is(err, recommend.ErrInvalidLimit):
			writeError(w, http.StatusBadRequest, "bad_request", err)
		case isNotFound(err):
			writeError(w, http.StatusNotFound, "not_found", err)
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, recs)
}
