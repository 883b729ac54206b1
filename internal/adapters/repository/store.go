// Package repository defines the backing-store interface for users,
// interests, and friendships, and its errors.
package repository

import (
	"context"

	"github.com/minglehq/mingle/internal/domain/model"
)

// Store provides read/write access to persisted relationship data.
//
// Reads are what the recommendation core consumes: ListUsers and
// ListFriendEdges feed snapshot builds, InterestsOf feeds similarity.
// Writes are synchronous CRUD; they never touch any graph snapshot.
type Store interface {
	// CreateUser persists a new user with normalized, deduplicated
	// interests and returns the stored record.
	// Returns ErrDuplicateContact if the contact is already taken.
	CreateUser(ctx context.Context, name, contact string, interests []string) (model.User, error)

	// GetUser returns the user with the given id.
	// Returns ErrNotFound if the user is unknown.
	GetUser(ctx context.Context, id string) (model.User, error)

	// GetUserByContact returns the user with the given contact identifier.
	// Returns ErrNotFound if no user has it.
	GetUserByContact(ctx context.Context, contact string) (model.User, error)

	// ListUsers returns all users. Order is unspecified.
	ListUsers(ctx context.Context) ([]model.User, error)

	// InterestsOf returns the user's normalized interest set.
	// An interest-less user yields an empty set; an unknown user yields
	// ErrNotFound.
	InterestsOf(ctx context.Context, userID string) (map[string]struct{}, error)

	// AddInterests merges additional interests into the user's set.
	AddInterests(ctx context.Context, userID string, interests []string) error

	// AddFriendship records the undirected friendship between two existing
	// users. Idempotent for an existing pair; created reports whether a
	// new friendship was recorded. Returns ErrSelfFriendship when both
	// ids are equal and ErrNotFound when either user is unknown.
	AddFriendship(ctx context.Context, userID, friendID string) (created bool, err error)

	// ListFriendEdges returns one record per undirected friendship, with
	// endpoints in canonical order. Order of records is unspecified.
	ListFriendEdges(ctx context.Context) ([]model.FriendEdge, error)

	// FriendCount returns the number of friends of the given user.
	// Returns ErrNotFound if the user is unknown.
	FriendCount(ctx context.Context, userID string) (int, error)

	// CountUsers returns the number of stored users.
	CountUsers(ctx context.Context) int

	// Close releases store resources.
	Close() error
}
