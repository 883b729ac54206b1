// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/minglehq/mingle/internal/adapters/repository"
	"github.com/minglehq/mingle/internal/domain/graph"
	"github.com/minglehq/mingle/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	CreateUser(ctx context.Context, name, contact string, interests []string) (types.User, error)
	GetUser(ctx context.Context, id string) (types.User, error)
	Profile(ctx context.Context, id string) (types.Profile, error)
	ListUsers(ctx context.Context) ([]types.User, error)
	AddFriendship(ctx context.Context, userID, friendID string) (created bool, err error)
	Similarity(ctx context.Context, user1, user2 string) (types.Similarity, error)
	Recommend(ctx context.Context, userID string, limit int) ([]types.Recommendation, error)
	RefreshGraph(ctx context.Context) (types.RefreshSummary, error)
}

// validate checks request payloads against their struct tags.
var validate = validator.New()

// Server wires HTTP routes for the business API.
type Server struct {
	usersHandler           *UsersHandler
	friendshipsHandler     *FriendshipsHandler
	similarityHandler      *SimilarityHandler
	recommendationsHandler *RecommendationsHandler
	refreshHandler         *RefreshHandler
	healthHandler          *HealthHandler
	statsHandler           *StatsHandler
	dashboardHandler       *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		usersHandler:           NewUsersHandler(deps),
		friendshipsHandler:     NewFriendshipsHandler(deps),
		similarityHandler:      NewSimilarityHandler(deps),
		recommendationsHandler: NewRecommendationsHandler(deps, maxLimit),
		refreshHandler:         NewRefreshHandler(deps),
		healthHandler:          NewHealthHandler(),
		statsHandler:           NewStatsHandler(statsProvider),
		dashboardHandler:       newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/users", MetricsMiddleware(s.usersHandler.HandleUsers, "users"))
	mux.HandleFunc("/users/", MetricsMiddleware(s.usersHandler.HandleGetUser, "user"))
	mux.HandleFunc("/friendships", MetricsMiddleware(s.friendshipsHandler.HandlePostFriendship, "friendships"))
	mux.HandleFunc("/similarity", MetricsMiddleware(s.similarityHandler.HandleGetSimilarity, "similarity"))
	mux.HandleFunc("/recommendations/", MetricsMiddleware(s.recommendationsHandler.HandleGetRecommendations, "recommendations"))
	mux.HandleFunc("/graph/refresh", MetricsMiddleware(s.refreshHandler.HandlePostRefresh, "graph_refresh"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound translates upstream not-found conditions to 404. Both the
// store and the graph snapshot can report a missing user.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound) || errors.Is(err, graph.ErrUnknownNode)
}
