package content

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rpupo63/zenith-portfolio/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type RecommendationRepo struct {
	fetcher Fetcher
	logger  zerolog.Logger
}

func NewRecommendationRepo(fetcher Fetcher) *RecommendationRepo {
	return &RecommendationRepo{
		fetcher: fetcher,
		logger:  log.With().Str("repoName", "recommendation").Logger(),
	}
}

// FindAll returns recommendations, most recently created first.
func (r *RecommendationRepo) FindAll(ctx context.Context) ([]models.Recommendation, error) {
	var raw []json.RawMessage
	if err := r.fetcher.Fetch(ctx, RecommendationsQuery, nil, RecommendationsQuery.Tags, &raw); err != nil {
		return nil, fmt.Errorf("RecommendationRepo.FindAll: %w", err)
	}
	return decodeList[models.Recommendation](raw, RecommendationsQuery.Name, r.logger), nil
}
