package seed

import "time"

// Config holds configuration for a seeding run.
type Config struct {
	BaseURL        string        // Base URL of the service
	NumUsers       int           // Number of users to create
	NumFriendships int           // Number of random friendships to create
	Limit          int           // Recommendation list size to request
	Workers        int           // Number of concurrent workers
	Timeout        time.Duration // HTTP request timeout
	OutputFile     string        // Output file for created users
	LogFile        string        // Log file for run output
	Verbose        bool          // Enable verbose logging
}

// UserRequest mirrors the POST /users payload.
type UserRequest struct {
	Name      string   `json:"name"`
	Contact   string   `json:"contact"`
	Interests []string `json:"interests"`
}

// User mirrors the created-user response.
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

// FriendshipRequest mirrors the POST /friendships payload.
type FriendshipRequest struct {
	UserID   string `json:"user_id"`
	FriendID string `json:"friend_id"`
}

// Recommendation mirrors one entry of a recommendation list response.
type Recommendation struct {
	UserID            string  `json:"user_id"`
	Name              string  `json:"name"`
	CombinedScore     float64 `json:"combined_score"`
	MutualFriendCount int     `json:"mutual_friend_count"`
}

// RefreshSummary mirrors the POST /graph/refresh response.
type RefreshSummary struct {
	Nodes      int     `json:"nodes"`
	Edges      int     `json:"edges"`
	DurationMS float64 `json:"duration_ms"`
}

// Stats holds run statistics.
type Stats struct {
	UsersGenerated      int
	UsersCreated        int
	UsersFailed         int
	FriendshipsCreated  int
	FriendshipsFailed   int
	GraphNodes          int
	GraphEdges          int
	RecommendationLists int
	StartTime           time.Time
	EndTime             time.Time
	Duration            time.Duration
}
