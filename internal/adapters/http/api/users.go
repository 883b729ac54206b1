// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/minglehq/mingle/internal/adapters/repository"
)

// createUserRequest mirrors the OpenAPI schema for POST /users.
type createUserRequest struct {
	Name      string   `json:"name" validate:"required,min=1,max=200"`
	Contact   string   `json:"contact" validate:"required,min=3,max=320"`
	Interests []string `json:"interests" validate:"omitempty,dive,min=1,max=100"`
}

// UsersHandler handles user collection and single-user requests.
type UsersHandler struct {
	deps Dependencies
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(deps Dependencies) *UsersHandler {
	return &UsersHandler{deps: deps}
}

// HandleUsers handles POST /users and GET /users requests.
func (h *UsersHandler) HandleUsers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleCreateUser(w, r)
	case http.MethodGet:
		h.handleListUsers(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *UsersHandler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	u, err := h.deps.CreateUser(r.Context(), req.Name, req.Contact, req.Interests)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateContact) {
			writeError(w, http.StatusConflict, "duplicate_contact", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (h *UsersHandler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.deps.ListUsers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// HandleGetUser handles GET /users/{id} requests. The response is the
// user's full profile: record, interests and friend count.
func (h *UsersHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /users/
	id := strings.TrimPrefix(r.URL.Path, "/users/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	profile, err := h.deps.Profile(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
