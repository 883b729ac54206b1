// Package recommend ranks candidate users into a bounded recommendation list.
package recommend

import (
	"context"
	"sort"

	"github.com/minglehq/mingle/internal/domain/graph"
	"github.com/minglehq/mingle/internal/domain/similarity"
)

// DefaultLimit bounds a recommendation list when the caller does not say.
const DefaultLimit = 5

// Entry is one ranked recommendation produced for a query.
type Entry struct {
	UserID                 string
	Name                   string
	Contact                string
	CombinedScore          float64
	CommonInterests        []string
	MutualFriendCount      int
	InterestSimilarity     float64
	MutualFriendSimilarity float64
}

// Option applies a configuration option to the Ranker.
type Option func(*Ranker)

// WithDefaultLimit sets the limit used when Recommend receives a zero limit
// via RecommendDefault.
func WithDefaultLimit(limit int) Option {
	return func(r *Ranker) {
		if limit > 0 {
			r.defaultLimit = limit
		}
	}
}

// Ranker produces ordered, bounded recommendation lists.
type Ranker struct {
	calc         *similarity.Calculator
	defaultLimit int
}

// NewRanker creates a Ranker over the given calculator.
func NewRanker(calc *similarity.Calculator, opts ...Option) *Ranker {
	r := &Ranker{
		calc:         calc,
		defaultLimit: DefaultLimit,
	}

	// Apply all options
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Recommend scores every user that is neither userID nor one of its direct
// neighbors, keeps the strictly positive scores, and returns the top entries
// ordered by combined score descending. Equal scores order by ascending
// user ID so output is deterministic.
//
// A negative limit fails with ErrInvalidLimit; limit zero yields an empty
// list. A query with no positively-scored candidate yields an empty list,
// not an error. Fails with graph.ErrUnknownNode when userID is absent from
// the snapshot.
func (r *Ranker) Recommend(ctx context.Context, snap *graph.Snapshot, userID string, limit int) ([]Entry, error) {
	if limit < 0 {
		return nil, ErrInvalidLimit
	}

	friends, err := snap.Neighbors(userID)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0)
	for _, candidate := range snap.Nodes() {
		if candidate == userID {
			continue
		}
		if _, isFriend := friends[candidate]; isFriend {
			continue
		}

		res, err := r.calc.Similarity(ctx, snap, userID, candidate)
		if err != nil {
			return nil, err
		}
		// Zero-similarity users are never recommended.
		if res.CombinedScore <= 0 {
			continue
		}

		info, err := snap.Node(candidate)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{
			UserID:                 candidate,
			Name:                   info.Name,
			Contact:                info.Contact,
			CombinedScore:          res.CombinedScore,
			CommonInterests:        res.CommonInterests,
			MutualFriendCount:      res.MutualFriendCount,
			InterestSimilarity:     res.InterestSimilarity,
			MutualFriendSimilarity: res.MutualFriendSimilarity,
		})
	}

	sortEntries(entries)

	if limit < len(entries) {
		entries = entries[:limit]
	}
	return entries, nil
}

// RecommendDefault is Recommend with the ranker's configured default limit.
func (r *Ranker) RecommendDefault(ctx context.Context, snap *graph.Snapshot, userID string) ([]Entry, error) {
	return r.Recommend(ctx, snap, userID, r.defaultLimit)
}

// sortEntries orders by combined score descending, then user ID ascending.
// The secondary key is the documented deterministic tie-break.
func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].CombinedScore != entries[j].CombinedScore {
			return entries[i].CombinedScore > entries[j].CombinedScore
		}
		return entries[i].UserID < entries[j].UserID
	})
}
