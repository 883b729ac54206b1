package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/minglehq/mingle/internal/domain/interest"
	"github.com/minglehq/mingle/internal/domain/model"
	"github.com/minglehq/mingle/pkg/metrics"
)

// Key prefixes for the Badger keyspace.
const (
	userKeyPrefix     = "user:"
	contactKeyPrefix  = "contact:"
	interestKeyPrefix = "interest:"
	friendKeyPrefix   = "friend:"
)

// userRecord is the stored form of a user. Tags pin the on-disk layout
// so field renames in the domain model do not silently break old data.
type userRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	CreatedAt time.Time `json:"created_at"`
}

// BadgerStore implements Store on top of BadgerDB for persistence across
// restarts. Friendships are stored once per pair under a canonical key
// friend:<lo>:<hi> with lo < hi.
type BadgerStore struct {
	db *badger.DB

	now func() time.Time
}

// OpenBadgerStore opens (or creates) a Badger database at dir.
func OpenBadgerStore(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", dir, err)
	}
	return NewBadgerStore(db), nil
}

// NewBadgerStore wraps an already-open Badger database.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// CreateUser persists a new user, their contact index entry and their
// normalized interest set in one transaction.
func (s *BadgerStore) CreateUser(ctx context.Context, name, contact string, interests []string) (model.User, error) {
	start := time.Now()

	u := model.User{
		ID:        uuid.New().String(),
		Name:      name,
		Contact:   contact,
		CreatedAt: s.now(),
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		contactKey := []byte(contactKeyPrefix + contact)
		if _, err := txn.Get(contactKey); err == nil {
			return ErrDuplicateContact
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check contact: %w", err)
		}

		data, err := json.Marshal(userRecord(u))
		if err != nil {
			return fmt.Errorf("marshal user: %w", err)
		}
		if err := txn.Set([]byte(userKeyPrefix+u.ID), data); err != nil {
			return fmt.Errorf("set user: %w", err)
		}
		if err := txn.Set(contactKey, []byte(u.ID)); err != nil {
			return fmt.Errorf("set contact index: %w", err)
		}
		return setInterests(txn, u.ID, interest.NewSet(interests))
	})
	if err != nil {
		if !errors.Is(err, ErrDuplicateContact) {
			metrics.RecordStoreError()
		}
		return model.User{}, err
	}

	metrics.RecordUserCreated()
	metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds()))
	metrics.UpdateStoreRecordsTotal(s.CountUsers(ctx))
	return u, nil
}

// GetUser returns the user with the given id.
func (s *BadgerStore) GetUser(ctx context.Context, id string) (model.User, error) {
	start := time.Now()

	var u model.User
	err := s.db.View(func(txn *badger.Txn) error {
		return getUser(txn, id, &u)
	})
	if err != nil {
		return model.User{}, err
	}

	metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	return u, nil
}

// GetUserByContact resolves the contact index and loads the user.
func (s *BadgerStore) GetUserByContact(ctx context.Context, contact string) (model.User, error) {
	var u model.User
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(contactKeyPrefix + contact))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get contact index: %w", err)
		}

		var id string
		if err := item.Value(func(val []byte) error {
			id = string(val)
			return nil
		}); err != nil {
			return err
		}
		return getUser(txn, id, &u)
	})
	if err != nil {
		return model.User{}, err
	}
	return u, nil
}

// ListUsers scans the user keyspace.
func (s *BadgerStore) ListUsers(ctx context.Context) ([]model.User, error) {
	start := time.Now()

	var out []model.User
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(userKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var rec userRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return fmt.Errorf("unmarshal user: %w", err)
			}
			out = append(out, model.User(rec))
		}
		return nil
	})
	if err != nil {
		metrics.RecordStoreError()
		return nil, err
	}

	metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	return out, nil
}

// InterestsOf returns the user's interest set.
func (s *BadgerStore) InterestsOf(ctx context.Context, userID string) (map[string]struct{}, error) {
	var set map[string]struct{}
	err := s.db.View(func(txn *badger.Txn) error {
		if err := getUser(txn, userID, &model.User{}); err != nil {
			return err
		}
		var err error
		set, err = getInterests(txn, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return set, nil
}

// AddInterests merges additional interests into the user's stored set.
func (s *BadgerStore) AddInterests(ctx context.Context, userID string, interests []string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if err := getUser(txn, userID, &model.User{}); err != nil {
			return err
		}
		set, err := getInterests(txn, userID)
		if err != nil {
			return err
		}
		for k := range interest.NewSet(interests) {
			set[k] = struct{}{}
		}
		return setInterests(txn, userID, set)
	})
}

// AddFriendship records an undirected friendship under its canonical key.
// Idempotent.
func (s *BadgerStore) AddFriendship(ctx context.Context, userID, friendID string) (bool, error) {
	if userID == friendID {
		return false, ErrSelfFriendship
	}

	created := false
	err := s.db.Update(func(txn *badger.Txn) error {
		if err := getUser(txn, userID, &model.User{}); err != nil {
			return err
		}
		if err := getUser(txn, friendID, &model.User{}); err != nil {
			return err
		}

		edge := model.FriendEdge{UserID: userID, FriendID: friendID}.Canonical()
		key := []byte(friendKeyPrefix + edge.UserID + ":" + edge.FriendID)
		if _, err := txn.Get(key); err == nil {
			return nil // already friends
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check friendship: %w", err)
		}
		created = true
		return txn.Set(key, nil)
	})
	if err != nil {
		return false, err
	}

	if created {
		metrics.RecordFriendshipCreated()
	}
	return created, nil
}

// ListFriendEdges scans the friendship keyspace. Keys are canonical so
// each pair appears once.
func (s *BadgerStore) ListFriendEdges(ctx context.Context) ([]model.FriendEdge, error) {
	out := make([]model.FriendEdge, 0)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(friendKeyPrefix)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			key := string(it.Item().Key())
			pair := strings.SplitN(strings.TrimPrefix(key, friendKeyPrefix), ":", 2)
			if len(pair) != 2 {
				continue
			}
			out = append(out, model.FriendEdge{UserID: pair[0], FriendID: pair[1]})
		}
		return nil
	})
	if err != nil {
		metrics.RecordStoreError()
		return nil, err
	}
	return out, nil
}

// FriendCount counts friendship keys that reference the given user.
func (s *BadgerStore) FriendCount(ctx context.Context, userID string) (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		if err := getUser(txn, userID, &model.User{}); err != nil {
			return err
		}

		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(friendKeyPrefix)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			key := string(it.Item().Key())
			pair := strings.SplitN(strings.TrimPrefix(key, friendKeyPrefix), ":", 2)
			if len(pair) == 2 && (pair[0] == userID || pair[1] == userID) {
				count++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// CountUsers counts keys in the user keyspace.
func (s *BadgerStore) CountUsers(ctx context.Context) int {
	count := 0
	_ = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(userKeyPrefix)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func getUser(txn *badger.Txn, id string, out *model.User) error {
	item, err := txn.Get([]byte(userKeyPrefix + id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}

	return item.Value(func(val []byte) error {
		var rec userRecord
		if err := json.Unmarshal(val, &rec); err != nil {
			return fmt.Errorf("unmarshal user: %w", err)
		}
		*out = model.User(rec)
		return nil
	})
}

func getInterests(txn *badger.Txn, userID string) (map[string]struct{}, error) {
	item, err := txn.Get([]byte(interestKeyPrefix + userID))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return make(map[string]struct{}), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get interests: %w", err)
	}

	var list []string
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &list)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal interests: %w", err)
	}
	return interest.NewSet(list), nil
}

func setInterests(txn *badger.Txn, userID string, set map[string]struct{}) error {
	data, err := json.Marshal(interest.Sorted(set))
	if err != nil {
		return fmt.Errorf("marshal interests: %w", err)
	}
	if err := txn.Set([]byte(interestKeyPrefix+userID), data); err != nil {
		return fmt.Errorf("set interests: %w", err)
	}
	return nil
}
