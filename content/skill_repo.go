package content

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/rpupo63/zenith-portfolio/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type SkillRepo struct {
	fetcher Fetcher
	logger  zerolog.Logger
}

func NewSkillRepo(fetcher Fetcher) *SkillRepo {
	return &SkillRepo{
		fetcher: fetcher,
		logger:  log.With().Str("repoName", "skill").Logger(),
	}
}

// FindAll returns skills ordered by proficiency, expert first. Ties keep store order.
func (r *SkillRepo) FindAll(ctx context.Context) ([]models.Skill, error) {
	var raw []json.RawMessage
	if err := r.fetcher.Fetch(ctx, SkillsQuery, nil, SkillsQuery.Tags, &raw); err != nil {
		return nil, fmt.Errorf("SkillRepo.FindAll: %w", err)
	}

	skills := decodeList[models.Skill](raw, SkillsQuery.Name, r.logger)
	sort.SliceStable(skills, func(i, j int) bool {
		return skills[i].Proficiency.Rank() > skills[j].Proficiency.Rank()
	})
	return skills, nil
}
