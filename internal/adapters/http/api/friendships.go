// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/minglehq/mingle/internal/adapters/repository"
)

// friendshipRequest mirrors the OpenAPI schema for POST /friendships.
type friendshipRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	FriendID string `json:"friend_id" validate:"required"`
}

type friendshipResponse struct {
	Status string `json:"status"`
}

// FriendshipsHandler handles friendship creation requests.
type FriendshipsHandler struct {
	deps Dependencies
}

// NewFriendshipsHandler creates a new friendships handler.
func NewFriendshipsHandler(deps Dependencies) *FriendshipsHandler {
	return &FriendshipsHandler{deps: deps}
}

// HandlePostFriendship handles POST /friendships requests. Adding an
// existing friendship again succeeds without effect.
func (h *FriendshipsHandler) HandlePostFriendship(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req friendshipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	created, err := h.deps.AddFriendship(r.Context(), req.UserID, req.FriendID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrSelfFriendship):
			writeError(w, http.StatusBadRequest, "self_friendship", err)
		case isNotFound(err):
			writeError(w, http.StatusNotFound, "not_found", err)
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", err)
		}
		return
	}
	if !created {
		writeJSON(w, http.StatusOK, friendshipResponse{Status: "exists"})
		return
	}
	writeJSON(w, http.StatusCreated, friendshipResponse{Status: "created"})
}
