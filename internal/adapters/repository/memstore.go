package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/minglehq/mingle/internal/domain/interest"
	"github.com/minglehq/mingle/internal/domain/model"
	"github.com/minglehq/mingle/pkg/metrics"
)

// MemStore implements Store with mutex-guarded maps. It is the default
// store when no data directory is configured, and the store unit tests
// run against.
type MemStore struct {
	mu sync.RWMutex

	users     map[string]model.User          // id -> user
	contacts  map[string]string              // contact -> id
	interests map[string]map[string]struct{} // id -> interest set
	adj       map[string]map[string]struct{} // id -> friend ids

	now func() time.Time
}

// NewMemStore creates an empty in-memory store.
func NewMemStore(opts ...MemOption) *MemStore {
	s := &MemStore{
		users:     make(map[string]model.User),
		contacts:  make(map[string]string),
		interests: make(map[string]map[string]struct{}),
		adj:       make(map[string]map[string]struct{}),
		now:       func() time.Time { return time.Now().UTC() },
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// MemOption applies a configuration option to the MemStore.
type MemOption func(*MemStore)

// WithClock overrides the store's clock. Intended for tests.
func WithClock(now func() time.Time) MemOption {
	return func(s *MemStore) {
		if now != nil {
			s.now = now
		}
	}
}

// CreateUser persists a new user and their normalized interests.
func (s *MemStore) CreateUser(ctx context.Context, name, contact string, interests []string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.contacts[contact]; taken {
		return model.User{}, ErrDuplicateContact
	}

	u := model.User{
		ID:        uuid.New().String(),
		Name:      name,
		Contact:   contact,
		CreatedAt: s.now(),
	}
	s.users[u.ID] = u
	s.contacts[contact] = u.ID
	s.interests[u.ID] = interest.NewSet(interests)
	s.adj[u.ID] = make(map[string]struct{})

	metrics.RecordUserCreated()
	metrics.UpdateStoreRecordsTotal(len(s.users))
	return u, nil
}

// GetUser returns the user with the given id.
func (s *MemStore) GetUser(ctx context.Context, id string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return model.User{}, ErrNotFound
	}
	return u, nil
}

// GetUserByContact returns the user registered with the given contact.
func (s *MemStore) GetUserByContact(ctx context.Context, contact string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.contacts[contact]
	if !ok {
		return model.User{}, ErrNotFound
	}
	return s.users[id], nil
}

// ListUsers returns all users in unspecified order.
func (s *MemStore) ListUsers(ctx context.Context) ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

// InterestsOf returns a copy of the user's interest set.
func (s *MemStore) InterestsOf(ctx context.Context, userID string) (map[string]struct{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set, ok := s.interests[userID]
	if !ok {
		return nil, ErrNotFound
	}
	out := make(map[string]struct{}, len(set))
	for k := range set {
		out[k] = struct{}{}
	}
	return out, nil
}

// AddInterests merges additional interests into the user's set.
func (s *MemStore) AddInterests(ctx context.Context, userID string, interests []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.interests[userID]
	if !ok {
		return ErrNotFound
	}
	for k := range interest.NewSet(interests) {
		set[k] = struct{}{}
	}
	return nil
}

// AddFriendship records an undirected friendship. Idempotent.
func (s *MemStore) AddFriendship(ctx context.Context, userID, friendID string) (bool, error) {
	if userID == friendID {
		return false, ErrSelfFriendship
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return false, ErrNotFound
	}
	if _, ok := s.users[friendID]; !ok {
		return false, ErrNotFound
	}
	if _, exists := s.adj[userID][friendID]; exists {
		return false, nil
	}

	s.adj[userID][friendID] = struct{}{}
	s.adj[friendID][userID] = struct{}{}

	metrics.RecordFriendshipCreated()
	return true, nil
}

// ListFriendEdges returns one canonical record per undirected friendship.
func (s *MemStore) ListFriendEdges(ctx context.Context) ([]model.FriendEdge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.FriendEdge, 0)
	for id, friends := range s.adj {
		for friend := range friends {
			if id < friend { // emit each pair once
				out = append(out, model.FriendEdge{UserID: id, FriendID: friend})
			}
		}
	}
	return out, nil
}

// FriendCount returns the number of friends of the given user.
func (s *MemStore) FriendCount(ctx context.Context, userID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	friends, ok := s.adj[userID]
	if !ok {
		return 0, ErrNotFound
	}
	return len(friends), nil
}

// CountUsers returns the number of stored users.
func (s *MemStore) CountUsers(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// Close is a no-op for the in-memory store.
func (s *MemStore) Close() error {
	return nil
}
