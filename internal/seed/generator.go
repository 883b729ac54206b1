package seed

import (
	"context"
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/google/uuid"
	"github.com/minglehq/mingle/pkg/logger"
)

// Interest selection bounds per generated user.
const (
	minInterests = 2
	maxInterests = 6
)

// firstNames and lastNames blend into plausible display names.
var firstNames = []string{
	"Alice", "Bruno", "Carmen", "Diego", "Elena", "Farid", "Greta", "Hugo",
	"Ines", "Jonas", "Kira", "Luca", "Mara", "Nilo", "Oumar", "Priya",
	"Quinn", "Rosa", "Sven", "Tara", "Umut", "Vera", "Wim", "Xenia",
	"Yuki", "Zara",
}

var lastNames = []string{
	"Almeida", "Berg", "Costa", "Dubois", "Eriksen", "Fischer", "Garcia",
	"Hansen", "Ivanov", "Jansen", "Keller", "Lindgren", "Moreau", "Nakamura",
	"Okafor", "Petrov", "Quiroga", "Rossi", "Schmidt", "Tanaka",
}

// interestVocabulary is the pool generated users draw from. Overlap
// between users is what makes the seeded graph produce recommendations.
var interestVocabulary = []string{
	"hiking", "jazz", "chess", "cycling", "photography", "cooking",
	"climbing", "gardening", "painting", "running", "sailing", "pottery",
	"astronomy", "birdwatching", "calligraphy", "surfing", "yoga",
	"woodworking", "baking", "kayaking",
}

// randomInt returns a random int in [0, n) using crypto/rand.
func randomInt(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// generateUsers creates the requested number of user payloads with
// unique contacts and overlapping interest sets.
func generateUsers(ctx context.Context, config *Config, stats *Stats) []UserRequest {
	logger.Get().Info(ctx, "generating users", logger.Int("numUsers", config.NumUsers))

	users := make([]UserRequest, config.NumUsers)
	for i := range users {
		users[i] = generateSingleUser()
	}

	stats.UsersGenerated = len(users)
	return users
}

// generateSingleUser builds one user payload. The contact embeds a UUID
// so repeated runs against the same service never collide.
func generateSingleUser() UserRequest {
	first := firstNames[randomInt(len(firstNames))]
	last := lastNames[randomInt(len(lastNames))]

	count := minInterests + randomInt(maxInterests-minInterests+1)
	picked := make(map[string]struct{}, count)
	for len(picked) < count {
		picked[interestVocabulary[randomInt(len(interestVocabulary))]] = struct{}{}
	}
	interests := make([]string, 0, len(picked))
	for k := range picked {
		interests = append(interests, k)
	}

	return UserRequest{
		Name:      first + " " + last,
		Contact:   strings.ToLower(first) + "." + uuid.New().String() + "@example.com",
		Interests: interests,
	}
}

// generateFriendshipPairs draws random distinct pairs from the created
// user ids. Duplicate pairs are fine; the service treats them as no-ops.
func generateFriendshipPairs(config *Config, ids []string) []FriendshipRequest {
	if len(ids) < 2 {
		return nil
	}

	pairs := make([]FriendshipRequest, 0, config.NumFriendships)
	for len(pairs) < config.NumFriendships {
		a := ids[randomInt(len(ids))]
		b := ids[randomInt(len(ids))]
		if a == b {
			continue
		}
		pairs = append(pairs, FriendshipRequest{UserID: a, FriendID: b})
	}
	return pairs
}
