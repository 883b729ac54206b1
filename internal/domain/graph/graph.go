// Package graph materializes a queryable, point-in-time snapshot of the
// social graph from the backing store.
//
// A Snapshot is immutable after Build: writes to the backing store are
// invisible until the caller builds a new one. Recommendation queries are
// therefore always computed against a consistent view, at the cost of
// staleness the caller owns.
package graph

import (
	"context"
	"time"

	"github.com/minglehq/mingle/internal/domain/model"
	"github.com/minglehq/mingle/pkg/logger"
)

// NodeInfo carries the display attributes stored on a user node.
type NodeInfo struct {
	ID      string
	Name    string
	Contact string
}

// Source is the slice of the backing store the builder reads.
// Both calls are full scans; order is irrelevant.
type Source interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	ListFriendEdges(ctx context.Context) ([]model.FriendEdge, error)
}

// Snapshot is an immutable in-memory copy of the social graph.
type Snapshot struct {
	nodes   map[string]NodeInfo
	adj     map[string]map[string]struct{}
	edges   int
	builtAt time.Time
}

// Build reads the full user and edge collections once and returns a new
// snapshot. An empty store yields an empty snapshot, not an error.
// Mirrored and duplicate edge records collapse into one undirected edge;
// edges referencing unknown users are skipped.
func Build(ctx context.Context, src Source) (*Snapshot, error) {
	users, err := src.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	edges, err := src.ListFriendEdges(ctx)
	if err != nil {
		return nil, err
	}

	s := &Snapshot{
		nodes:   make(map[string]NodeInfo, len(users)),
		adj:     make(map[string]map[string]struct{}, len(users)),
		builtAt: time.Now().UTC(),
	}
	for _, u := range users {
		s.nodes[u.ID] = NodeInfo{ID: u.ID, Name: u.Name, Contact: u.Contact}
		s.adj[u.ID] = make(map[string]struct{})
	}

	skipped := 0
	for _, e := range edges {
		c := e.Canonical()
		if c.UserID == c.FriendID {
			skipped++
			continue
		}
		if _, ok := s.nodes[c.UserID]; !ok {
			skipped++
			continue
		}
		if _, ok := s.nodes[c.FriendID]; !ok {
			skipped++
			continue
		}
		if _, dup := s.adj[c.UserID][c.FriendID]; dup {
			continue
		}
		s.adj[c.UserID][c.FriendID] = struct{}{}
		s.adj[c.FriendID][c.UserID] = struct{}{}
		s.edges++
	}
	if skipped > 0 {
		logger.Get().Warn(ctx, "skipped invalid friend edges during snapshot build",
			logger.Int("skipped", skipped),
		)
	}

	return s, nil
}

// Neighbors returns the set of user IDs directly connected to userID.
// The returned set is a copy; mutating it does not touch the snapshot.
func (s *Snapshot) Neighbors(userID string) (map[string]struct{}, error) {
	adj, ok := s.adj[userID]
	if !ok {
		return nil, unknownNode(userID)
	}
	out := make(map[string]struct{}, len(adj))
	for id := range adj {
		out[id] = struct{}{}
	}
	return out, nil
}

// Node returns the display attributes for userID.
func (s *Snapshot) Node(userID string) (NodeInfo, error) {
	info, ok := s.nodes[userID]
	if !ok {
		return NodeInfo{}, unknownNode(userID)
	}
	return info, nil
}

// Contains reports whether userID is a node in the snapshot.
func (s *Snapshot) Contains(userID string) bool {
	_, ok := s.nodes[userID]
	return ok
}

// Nodes returns all user IDs known to the snapshot. Order is unspecified.
func (s *Snapshot) Nodes() []string {
	out := make([]string, 0, len(s.nodes))
	for id := range s.nodes {
		out = append(out, id)
	}
	return out
}

// Order returns the number of nodes.
func (s *Snapshot) Order() int {
	return len(s.nodes)
}

// Size returns the number of undirected edges.
func (s *Snapshot) Size() int {
	return s.edges
}

// BuiltAt returns the time the snapshot was taken.
func (s *Snapshot) BuiltAt() time.Time {
	return s.builtAt
}
