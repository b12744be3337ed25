package content

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rpupo63/zenith-portfolio/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type BioRepo struct {
	fetcher Fetcher
	logger  zerolog.Logger
}

func NewBioRepo(fetcher Fetcher) *BioRepo {
	return &BioRepo{
		fetcher: fetcher,
		logger:  log.With().Str("repoName", "bio").Logger(),
	}
}

// Find returns the single bio document, or nil, nil when none exists.
func (r *BioRepo) Find(ctx context.Context) (*models.Bio, error) {
	var raw json.RawMessage
	if err := r.fetcher.Fetch(ctx, BioQuery, nil, BioQuery.Tags, &raw); err != nil {
		return nil, fmt.Errorf("BioRepo.Find: %w", err)
	}
	return decodeOne[models.Bio](raw, BioQuery.Name, r.logger), nil
}
