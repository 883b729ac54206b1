// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// SimilarityHandler handles pairwise similarity requests.
type SimilarityHandler struct {
	deps Dependencies
}

// NewSimilarityHandler creates a new similarity handler.
func NewSimilarityHandler(deps Dependencies) *SimilarityHandler {
	return &SimilarityHandler{deps: deps}
}

// HandleGetSimilarity handles GET /similarity?user1=X&user2=Y requests.
func (h *SimilarityHandler) HandleGetSimilarity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	user1 := r.URL.Query().Get("user1")
	user2 := r.URL.Query().Get("user2")
	if user1 == "" || user2 == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	sim, err := h.deps.Similarity(r.Context(), user1, user2)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, sim)
}
