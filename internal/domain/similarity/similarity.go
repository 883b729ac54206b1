// Package similarity computes pairwise user similarity over a graph snapshot.
package similarity

import (
	"context"

	"github.com/minglehq/mingle/internal/domain/graph"
	"github.com/minglehq/mingle/internal/domain/interest"
)

// Default scoring weights. The combined score is a weighted blend of the
// mutual-friend and interest Jaccard similarities; mutual friends carry
// more signal than shared interests and weigh heavier by default.
const (
	DefaultMutualFriendWeight = 0.6
	DefaultInterestWeight     = 0.4
)

// Option applies a configuration option to the Calculator.
type Option func(*Calculator)

// WithWeights overrides the scoring weights. Non-negative values only;
// invalid pairs are ignored and the defaults kept.
func WithWeights(mutualFriend, interestWeight float64) Option {
	return func(c *Calculator) {
		if mutualFriend >= 0 && interestWeight >= 0 && mutualFriend+interestWeight > 0 {
			c.mutualFriendWeight = mutualFriend
			c.interestWeight = interestWeight
		}
	}
}

// InterestSource resolves a user's normalized interest set.
// An unknown or interest-less user yields an empty set.
type InterestSource interface {
	InterestsOf(ctx context.Context, userID string) (map[string]struct{}, error)
}

// Result contains the computed similarity between two users.
type Result struct {
	InterestSimilarity     float64
	MutualFriendSimilarity float64
	CombinedScore          float64
	CommonInterests        []string // sorted ascending
	MutualFriendCount      int
}

// Calculator computes symmetric pairwise similarity scores.
type Calculator struct {
	interests          InterestSource
	mutualFriendWeight float64
	interestWeight     float64
}

// NewCalculator creates a Calculator with the given interest source and options.
func NewCalculator(interests InterestSource, opts ...Option) *Calculator {
	c := &Calculator{
		interests:          interests,
		mutualFriendWeight: DefaultMutualFriendWeight,
		interestWeight:     DefaultInterestWeight,
	}

	// Apply all options
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Jaccard returns |a ∩ b| / |a ∪ b|. When both sets are empty it returns
// 0.0 by policy: two users about whom nothing is known are treated as
// having nothing in common, not everything.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0.0
	}

	intersection := 0
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	for k := range small {
		if _, ok := large[k]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

// Similarity computes the similarity between two users known to snap.
// It is symmetric in its arguments. Fails with graph.ErrUnknownNode when
// either user is absent from the snapshot.
func (c *Calculator) Similarity(ctx context.Context, snap *graph.Snapshot, user1, user2 string) (Result, error) {
	friends1, err := snap.Neighbors(user1)
	if err != nil {
		return Result{}, err
	}
	friends2, err := snap.Neighbors(user2)
	if err != nil {
		return Result{}, err
	}

	interests1, err := c.interests.InterestsOf(ctx, user1)
	if err != nil {
		return Result{}, err
	}
	interests2, err := c.interests.InterestsOf(ctx, user2)
	if err != nil {
		return Result{}, err
	}

	interestSim := Jaccard(interests1, interests2)
	mutualSim := Jaccard(friends1, friends2)

	mutualCount := 0
	for id := range friends1 {
		if _, ok := friends2[id]; ok {
			mutualCount++
		}
	}

	return Result{
		InterestSimilarity:     interestSim,
		MutualFriendSimilarity: mutualSim,
		CombinedScore:          c.mutualFriendWeight*mutualSim + c.interestWeight*interestSim,
		CommonInterests:        interest.Intersect(interests1, interests2),
		MutualFriendCount:      mutualCount,
	}, nil
}

// Weights returns the configured scoring weights (mutual-friend, interest).
func (c *Calculator) Weights() (float64, float64) {
	return c.mutualFriendWeight, c.interestWeight
}
