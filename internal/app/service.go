// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/minglehq/mingle/internal/adapters/repository"
	"github.com/minglehq/mingle/internal/domain/graph"
	"github.com/minglehq/mingle/internal/domain/interest"
	"github.com/minglehq/mingle/internal/domain/recommend"
	"github.com/minglehq/mingle/internal/domain/similarity"
	"github.com/minglehq/mingle/internal/domain/types"
	"github.com/minglehq/mingle/pkg/logger"
	"github.com/minglehq/mingle/pkg/metrics"
)

// Service wires the store, the graph snapshot and the scoring pipeline
// together behind the API dependency surface.
type Service struct {
	mu sync.RWMutex

	// Core components
	store    repository.Store
	snapshot *graph.Snapshot
	calc     *similarity.Calculator
	ranker   *recommend.Ranker

	// Configuration
	dataDir            string
	mutualFriendWeight float64
	interestWeight     float64
	defaultLimit       int
	maxLimit           int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDataDir enables the persistent store at the given directory.
// An empty dir keeps the in-memory store.
func WithDataDir(dir string) Option {
	return func(s *Service) {
		s.dataDir = dir
	}
}

// WithSimilarityWeights sets the mutual-friend and interest weights used
// for scoring. Invalid pairs are ignored.
func WithSimilarityWeights(mutualFriend, interestWeight float64) Option {
	return func(s *Service) {
		if mutualFriend >= 0 && interestWeight >= 0 && mutualFriend+interestWeight > 0 {
			s.mutualFriendWeight = mutualFriend
			s.interestWeight = interestWeight
		}
	}
}

// WithDefaultLimit sets the recommendation list size used when the caller
// does not specify one.
func WithDefaultLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.defaultLimit = limit
		}
	}
}

// WithMaxLimit caps the recommendation list size a caller may request.
func WithMaxLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxLimit = limit
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		mutualFriendWeight: similarity.DefaultMutualFriendWeight,
		interestWeight:     similarity.DefaultInterestWeight,
		defaultLimit:       recommend.DefaultLimit,
		maxLimit:           50,
		logger:             nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start opens the store, builds the initial graph snapshot and readies
// the scoring pipeline.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting recommendation service...")

	if s.dataDir != "" {
		store, err := repository.OpenBadgerStore(s.dataDir)
		if err != nil {
			return err
		}
		s.store = store
		s.logger.Info(ctx, "using badger store", logger.String("dataDir", s.dataDir))
	} else {
		s.store = repository.NewMemStore()
		s.logger.Info(ctx, "using in-memory store")
	}

	s.calc = similarity.NewCalculator(s.store,
		similarity.WithWeights(s.mutualFriendWeight, s.interestWeight),
	)
	s.ranker = recommend.NewRanker(s.calc,
		recommend.WithDefaultLimit(s.defaultLimit),
	)

	snap, err := graph.Build(ctx, s.store)
	if err != nil {
		return err
	}
	s.snapshot = snap
	metrics.UpdateGraphSize(snap.Order(), snap.Size())

	s.started = true
	s.logger.Info(ctx, "recommendation service started",
		logger.Int("nodes", snap.Order()),
		logger.Int("edges", snap.Size()),
		logger.Float64("mutualFriendWeight", s.mutualFriendWeight),
		logger.Float64("interestWeight", s.interestWeight),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping recommendation service...")

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Error(context.Background(), "closing store", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(context.Background(), "recommendation service stopped")
}

// CreateUser registers a new user with normalized interests. The graph
// snapshot is not touched; the new user becomes visible to scoring after
// the next RefreshGraph.
func (s *Service) CreateUser(ctx context.Context, name, contact string, interests []string) (types.User, error) {
	u, err := s.store.CreateUser(ctx, name, contact, interests)
	if err != nil {
		return types.User{}, err
	}

	s.logger.Info(ctx, "user created",
		logger.String("userID", u.ID),
		logger.String("name", u.Name),
	)
	return types.User{
		ID:        u.ID,
		Name:      u.Name,
		Contact:   u.Contact,
		CreatedAt: u.CreatedAt,
	}, nil
}

// GetUser returns a single user by id.
func (s *Service) GetUser(ctx context.Context, id string) (types.User, error) {
	u, err := s.store.GetUser(ctx, id)
	if err != nil {
		return types.User{}, err
	}
	return types.User{
		ID:        u.ID,
		Name:      u.Name,
		Contact:   u.Contact,
		CreatedAt: u.CreatedAt,
	}, nil
}

// Profile returns a user together with their interests and friend count.
func (s *Service) Profile(ctx context.Context, id string) (types.Profile, error) {
	u, err := s.store.GetUser(ctx, id)
	if err != nil {
		return types.Profile{}, err
	}
	set, err := s.store.InterestsOf(ctx, id)
	if err != nil {
		return types.Profile{}, err
	}
	count, err := s.store.FriendCount(ctx, id)
	if err != nil {
		return types.Profile{}, err
	}

	return types.Profile{
		User: types.User{
			ID:        u.ID,
			Name:      u.Name,
			Contact:   u.Contact,
			CreatedAt: u.CreatedAt,
		},
		Interests:   interest.Sorted(set),
		FriendCount: count,
	}, nil
}

// ListUsers returns every registered user.
func (s *Service) ListUsers(ctx context.Context) ([]types.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]types.User, len(users))
	for i, u := range users {
		out[i] = types.User{
			ID:        u.ID,
			Name:      u.Name,
			Contact:   u.Contact,
			CreatedAt: u.CreatedAt,
		}
	}
	return out, nil
}

// AddFriendship records an undirected friendship between two users and
// reports whether the pair is new. Like CreateUser, the change reaches
// scoring on the next RefreshGraph.
func (s *Service) AddFriendship(ctx context.Context, userID, friendID string) (bool, error) {
	created, err := s.store.AddFriendship(ctx, userID, friendID)
	if err != nil {
		return false, err
	}

	if created {
		s.logger.Info(ctx, "friendship created",
			logger.String("userID", userID),
			logger.String("friendID", friendID),
		)
	}
	return created, nil
}

// Similarity computes the pairwise similarity breakdown for two users
// against the current snapshot.
func (s *Service) Similarity(ctx context.Context, user1, user2 string) (types.Similarity, error) {
	start := time.Now()
	metrics.RecordSimilarityQuery()

	res, err := s.calc.Similarity(ctx, s.currentSnapshot(), user1, user2)
	if err != nil {
		metrics.RecordSimilarityError()
		return types.Similarity{}, err
	}

	metrics.RecordSimilarityLatency(float64(time.Since(start).Milliseconds()))
	return types.Similarity{
		User1ID:                user1,
		User2ID:                user2,
		InterestSimilarity:     res.InterestSimilarity,
		MutualFriendSimilarity: res.MutualFriendSimilarity,
		CombinedScore:          res.CombinedScore,
		CommonInterests:        res.CommonInterests,
		MutualFriendCount:      res.MutualFriendCount,
	}, nil
}

// Recommend returns up to limit ranked recommendations for a user.
// A zero limit falls back to the configured default; requests above the
// configured maximum are clamped to it.
func (s *Service) Recommend(ctx context.Context, userID string, limit int) ([]types.Recommendation, error) {
	start := time.Now()

	if limit == 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	entries, err := s.ranker.Recommend(ctx, s.currentSnapshot(), userID, limit)
	if err != nil {
		metrics.RecordRecommendationError()
		return nil, err
	}

	out := make([]types.Recommendation, len(entries))
	for i, e := range entries {
		out[i] = types.Recommendation{
			UserID:                 e.UserID,
			Name:                   e.Name,
			Contact:                e.Contact,
			CombinedScore:          e.CombinedScore,
			CommonInterests:        e.CommonInterests,
			MutualFriendCount:      e.MutualFriendCount,
			InterestSimilarity:     e.InterestSimilarity,
			MutualFriendSimilarity: e.MutualFriendSimilarity,
		}
	}

	metrics.RecordRecommendationServed()
	metrics.RecordRecommendationLatency(float64(time.Since(start).Milliseconds()))
	return out, nil
}

// RefreshGraph rebuilds the snapshot from the store and atomically swaps
// it in. Queries running against the previous snapshot are unaffected.
func (s *Service) RefreshGraph(ctx context.Context) (types.RefreshSummary, error) {
	start := time.Now()

	snap, err := graph.Build(ctx, s.store)
	if err != nil {
		return types.RefreshSummary{}, err
	}

	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()

	elapsed := float64(time.Since(start).Milliseconds())
	metrics.RecordSnapshotRebuild(elapsed)
	metrics.UpdateGraphSize(snap.Order(), snap.Size())

	s.logger.Info(ctx, "graph snapshot rebuilt",
		logger.Int("nodes", snap.Order()),
		logger.Int("edges", snap.Size()),
		logger.Float64("durationMs", elapsed),
	)
	return types.RefreshSummary{
		Nodes:      snap.Order(),
		Edges:      snap.Size(),
		BuiltAt:    snap.BuiltAt(),
		DurationMS: elapsed,
	}, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":              s.started,
		"default_limit":        s.defaultLimit,
		"max_limit":            s.maxLimit,
		"mutual_friend_weight": s.mutualFriendWeight,
		"interest_weight":      s.interestWeight,
	}

	if s.started {
		totalUsers := s.store.CountUsers(ctx)
		stats["total_users"] = totalUsers
		stats["graph_nodes"] = s.snapshot.Order()
		stats["graph_edges"] = s.snapshot.Size()
		stats["snapshot_built_at"] = s.snapshot.BuiltAt()

		// Update metrics
		metrics.UpdateStoreRecordsTotal(totalUsers)
		metrics.UpdateGraphSize(s.snapshot.Order(), s.snapshot.Size())
	}

	return stats
}

func (s *Service) currentSnapshot() *graph.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}
