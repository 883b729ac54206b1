// Package seed populates a running service with a random social graph
// and verifies the recommendations it serves.
package seed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"github.com/minglehq/mingle/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// Run executes the complete seeding run.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting mingle seed run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("users", config.NumUsers),
		logger.Int("friendships", config.NumFriendships),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Int("limit", config.Limit),
	)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate user payloads
	users := generateUsers(ctx, config, stats)

	// Step 3: Create users concurrently
	ids, err := createUsers(ctx, config, users, stats)
	if err != nil {
		return fmt.Errorf("user creation failed: %w", err)
	}

	// Step 4: Create random friendships
	pairs := generateFriendshipPairs(config, ids)
	if err := createFriendships(ctx, config, pairs, stats); err != nil {
		return fmt.Errorf("friendship creation failed: %w", err)
	}

	// Step 5: Refresh the graph snapshot
	if err := refreshGraph(ctx, config, stats); err != nil {
		return fmt.Errorf("graph refresh failed: %w", err)
	}

	// Step 6: Fetch recommendations for every created user
	lists, err := fetchRecommendations(ctx, config, ids, stats)
	if err != nil {
		return fmt.Errorf("recommendation retrieval failed: %w", err)
	}

	// Step 7: Verify the ranking contract
	if err := verifyRecommendations(ctx, config, lists); err != nil {
		return fmt.Errorf("result verification failed: %w", err)
	}

	// Step 8: Save created users to file
	if err := saveUsersToFile(ctx, config, users); err != nil {
		logger.Get().Warn(ctx, "failed to save users to file", logger.Error(err))
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "seed run completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Any 200 counts as healthy; the endpoint serves Prometheus metrics.
	if resp.StatusCode != statusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveUsersToFile saves the generated user payloads to a JSON file.
func saveUsersToFile(ctx context.Context, config *Config, users []UserRequest) error {
	if len(users) == 0 {
		return fmt.Errorf("no users to save")
	}

	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "seeded_users_" + timestamp + ".json"
	}

	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal users: %w", err)
	}
	if err := os.WriteFile(filename, data, 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	logger.Get().Info(ctx, "users saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final run statistics.
func displayFinalStats(stats *Stats) {
	var usersPerSecond float64
	if stats.Duration > 0 {
		usersPerSecond = float64(stats.UsersCreated) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("usersGenerated", stats.UsersGenerated),
		logger.Int("usersCreated", stats.UsersCreated),
		logger.Int("usersFailed", stats.UsersFailed),
		logger.Int("friendshipsCreated", stats.FriendshipsCreated),
		logger.Int("friendshipsFailed", stats.FriendshipsFailed),
		logger.Int("graphNodes", stats.GraphNodes),
		logger.Int("graphEdges", stats.GraphEdges),
		logger.Int("recommendationLists", stats.RecommendationLists),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("usersPerSecond", usersPerSecond))
}
