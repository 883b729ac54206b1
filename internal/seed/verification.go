package seed

import (
	"context"
	"fmt"

	"github.com/minglehq/mingle/pkg/logger"
)

// verifyRecommendations checks every fetched list against the ranking
// contract: bounded length, no self-recommendation, strictly positive
// scores and descending order.
func verifyRecommendations(ctx context.Context, config *Config, lists map[string][]Recommendation) error {
	logger.Get().Info(ctx, "verifying recommendations")

	violations := 0
	for userID, recs := range lists {
		if len(recs) > config.Limit {
			violations++
			logger.Get().Warn(ctx, "list exceeds requested limit",
				logger.String("userID", userID),
				logger.Int("length", len(recs)),
			)
		}

		prev := -1.0
		for i, rec := range recs {
			if rec.UserID == userID {
				violations++
				logger.Get().Warn(ctx, "user recommended to themself",
					logger.String("userID", userID),
				)
			}
			if rec.CombinedScore <= 0 {
				violations++
				logger.Get().Warn(ctx, "non-positive score in list",
					logger.String("userID", userID),
					logger.Float64("score", rec.CombinedScore),
				)
			}
			if i > 0 && rec.CombinedScore > prev {
				violations++
				logger.Get().Warn(ctx, "list not sorted by descending score",
					logger.String("userID", userID),
				)
			}
			prev = rec.CombinedScore
		}
	}

	if violations > 0 {
		return fmt.Errorf("recommendation verification found %d violations", violations)
	}

	logger.Get().Info(ctx, "all recommendation lists verified",
		logger.Int("lists", len(lists)),
	)
	return nil
}
