// Package types contains common read shapes shared between the service and
// its HTTP surface.
package types

import "time"

// User mirrors a stored user record.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile joins a user with their interests and current friend count.
type Profile struct {
	User        User     `json:"user"`
	Interests   []string `json:"interests"`
	FriendCount int      `json:"friend_count"`
}

// Similarity is the pairwise similarity breakdown between two users.
type Similarity struct {
	User1ID                string   `json:"user1_id"`
	User2ID                string   `json:"user2_id"`
	InterestSimilarity     float64  `json:"interest_similarity"`
	MutualFriendSimilarity float64  `json:"mutual_friend_similarity"`
	CombinedScore          float64  `json:"combined_score"`
	CommonInterests        []string `json:"common_interests"`
	MutualFriendCount      int      `json:"mutual_friend_count"`
}

// Recommendation is one ranked entry in a recommendation list.
type Recommendation struct {
	UserID                 string   `json:"user_id"`
	Name                   string   `json:"name"`
	Contact                string   `json:"contact"`
	CombinedScore          float64  `json:"combined_score"`
	CommonInterests        []string `json:"common_interests"`
	MutualFriendCount      int      `json:"mutual_friend_count"`
	InterestSimilarity     float64  `json:"interest_similarity"`
	MutualFriendSimilarity float64  `json:"mutual_friend_similarity"`
}

// RefreshSummary describes one graph snapshot rebuild.
type RefreshSummary struct {
	Nodes      int       `json:"nodes"`
	Edges      int       `json:"edges"`
	BuiltAt    time.Time `json:"built_at"`
	DurationMS float64   `json:"duration_ms"`
}
