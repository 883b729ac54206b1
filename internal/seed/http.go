package seed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/minglehq/mingle/pkg/logger"
)

// HTTP status code constants.
const (
	statusOK      = 200
	statusCreated = 201
)

// HTTPClient wraps http.Client with a per-request timeout.
type HTTPClient struct {
	client *http.Client
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with a JSON body.
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body.
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// createUsers submits user payloads concurrently and collects the ids
// the service assigned.
func createUsers(ctx context.Context, config *Config, users []UserRequest, stats *Stats) ([]string, error) {
	logger.Get().Info(ctx, "creating users",
		logger.Int("count", len(users)),
		logger.Int("workers", config.Workers),
	)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/users"

	var (
		created int64
		failed  int64
		mu      sync.Mutex
	)
	ids := make([]string, 0, len(users))

	reqChan := make(chan UserRequest, config.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for req := range reqChan {
				select {
				case <-ctx.Done():
					return
				default:
				}

				u, err := createSingleUser(ctx, client, url, req)
				if err != nil {
					atomic.AddInt64(&failed, 1)
					if config.Verbose {
						logger.Get().Warn(ctx, "user creation failed", logger.Error(err))
					}
					continue
				}
				atomic.AddInt64(&created, 1)
				mu.Lock()
				ids = append(ids, u.ID)
				mu.Unlock()
			}
		}()
	}

	go func() {
		defer close(reqChan)
		for _, req := range users {
			select {
			case <-ctx.Done():
				return
			case reqChan <- req:
			}
		}
	}()

	wg.Wait()

	stats.UsersCreated = int(atomic.LoadInt64(&created))
	stats.UsersFailed = int(atomic.LoadInt64(&failed))

	logger.Get().Info(ctx, "user creation completed",
		logger.Int("created", stats.UsersCreated),
		logger.Int("failed", stats.UsersFailed),
	)

	if len(ids) == 0 {
		return nil, fmt.Errorf("no users were created")
	}
	return ids, nil
}

func createSingleUser(ctx context.Context, client *HTTPClient, url string, req UserRequest) (User, error) {
	resp, err := client.Post(ctx, url, req)
	if err != nil {
		return User{}, err
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return User{}, err
	}
	if resp.StatusCode != statusCreated {
		return User{}, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)
	}

	var u User
	if err := json.Unmarshal(body, &u); err != nil {
		return User{}, fmt.Errorf("failed to parse created user: %w", err)
	}
	return u, nil
}

// createFriendships submits friendship pairs concurrently.
func createFriendships(ctx context.Context, config *Config, pairs []FriendshipRequest, stats *Stats) error {
	logger.Get().Info(ctx, "creating friendships",
		logger.Int("count", len(pairs)),
		logger.Int("workers", config.Workers),
	)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/friendships"

	var (
		created int64
		failed  int64
	)

	pairChan := make(chan FriendshipRequest, config.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for pair := range pairChan {
				select {
				case <-ctx.Done():
					return
				default:
				}

				resp, err := client.Post(ctx, url, pair)
				if err != nil {
					atomic.AddInt64(&failed, 1)
					continue
				}
				_, _ = readResponseBody(resp)
				// 200 means the randomly drawn pair already existed.
				if resp.StatusCode == statusCreated || resp.StatusCode == statusOK {
					atomic.AddInt64(&created, 1)
				} else {
					atomic.AddInt64(&failed, 1)
				}
			}
		}()
	}

	go func() {
		defer close(pairChan)
		for _, pair := range pairs {
			select {
			case <-ctx.Done():
				return
			case pairChan <- pair:
			}
		}
	}()

	wg.Wait()

	stats.FriendshipsCreated = int(atomic.LoadInt64(&created))
	stats.FriendshipsFailed = int(atomic.LoadInt64(&failed))

	logger.Get().Info(ctx, "friendship creation completed",
		logger.Int("created", stats.FriendshipsCreated),
		logger.Int("failed", stats.FriendshipsFailed),
	)
	return nil
}

// refreshGraph asks the service to rebuild its snapshot so the seeded
// data becomes visible to scoring.
func refreshGraph(ctx context.Context, config *Config, stats *Stats) error {
	client := newHTTPClient(config.Timeout)

	resp, err := client.Post(ctx, config.BaseURL+"/graph/refresh", nil)
	if err != nil {
		return fmt.Errorf("refresh request failed: %w", err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return err
	}
	if resp.StatusCode != statusOK {
		return fmt.Errorf("refresh failed with status %d: %s", resp.StatusCode, body)
	}

	var summary RefreshSummary
	if err := json.Unmarshal(body, &summary); err != nil {
		return fmt.Errorf("failed to parse refresh summary: %w", err)
	}
	stats.GraphNodes = summary.Nodes
	stats.GraphEdges = summary.Edges

	logger.Get().Info(ctx, "graph snapshot refreshed",
		logger.Int("nodes", summary.Nodes),
		logger.Int("edges", summary.Edges),
		logger.Float64("durationMs", summary.DurationMS),
	)
	return nil
}

// fetchRecommendations retrieves one recommendation list per user id.
func fetchRecommendations(ctx context.Context, config *Config, ids []string, stats *Stats) (map[string][]Recommendation, error) {
	logger.Get().Info(ctx, "fetching recommendations",
		logger.Int("users", len(ids)),
		logger.Int("limit", config.Limit),
	)

	client := newHTTPClient(config.Timeout)

	var mu sync.Mutex
	lists := make(map[string][]Recommendation, len(ids))

	idChan := make(chan string, config.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for id := range idChan {
				select {
				case <-ctx.Done():
					return
				default:
				}

				url := fmt.Sprintf("%s/recommendations/%s?limit=%d", config.BaseURL, id, config.Limit)
				resp, err := client.Get(ctx, url)
				if err != nil {
					continue
				}
				body, err := readResponseBody(resp)
				if err != nil || resp.StatusCode != statusOK {
					continue
				}

				var recs []Recommendation
				if err := json.Unmarshal(body, &recs); err != nil {
					continue
				}
				mu.Lock()
				lists[id] = recs
				mu.Unlock()
			}
		}()
	}

	go func() {
		defer close(idChan)
		for _, id := range ids {
			select {
			case <-ctx.Done():
				return
			case idChan <- id:
			}
		}
	}()

	wg.Wait()

	stats.RecommendationLists = len(lists)
	logger.Get().Info(ctx, "recommendations fetched", logger.Int("lists", len(lists)))
	return lists, nil
}
