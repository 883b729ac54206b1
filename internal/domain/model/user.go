// Package model contains domain models passed between layers.
package model

import "time"

// User represents a member of the social graph.
type User struct {
	ID        string    // stable unique identifier
	Name      string    // display name
	Contact   string    // unique contact identifier, e.g. an e-mail address
	CreatedAt time.Time // creation timestamp, UTC
}

// FriendEdge represents one undirected friendship between two users.
// The backing store may record a pair in either or both directions;
// the canonical form keeps UserID < FriendID.
type FriendEdge struct {
	UserID   string
	FriendID string
}

// Canonical returns the edge with its endpoints in canonical order.
func (e FriendEdge) Canonical() FriendEdge {
	if e.FriendID < e.UserID {
		return FriendEdge{UserID: e.FriendID, FriendID: e.UserID}
	}
	return e
}
