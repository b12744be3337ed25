package content

import (
	"context"
	"fmt"
)

// Store groups the repositories that share one Fetcher.
type Store struct {
	fetcher            Fetcher
	projectRepo        *ProjectRepo
	recommendationRepo *RecommendationRepo
	bioRepo            *BioRepo
	skillRepo          *SkillRepo
}

func New(fetcher Fetcher) Store {
	return Store{
		fetcher:            fetcher,
		projectRepo:        NewProjectRepo(fetcher),
		recommendationRepo: NewRecommendationRepo(fetcher),
		bioRepo:            NewBioRepo(fetcher),
		skillRepo:          NewSkillRepo(fetcher),
	}
}

func (s Store) ProjectRepo() *ProjectRepo {
	return s.projectRepo
}

func (s Store) RecommendationRepo() *RecommendationRepo {
	return s.recommendationRepo
}

func (s Store) BioRepo() *BioRepo {
	return s.bioRepo
}

func (s Store) SkillRepo() *SkillRepo {
	return s.skillRepo
}

// Ping runs a one-row query and returns the first project title, if any.
func (s Store) Ping(ctx context.Context) (string, error) {
	var rows []struct {
		Title string `json:"title"`
	}
	if err := s.fetcher.Fetch(ctx, ConnectionCheckQuery, nil, nil, &rows); err != nil {
		return "", fmt.Errorf("Store.Ping: %w", err)
	}
	if len(rows) == 0 {
		return "", nil
	}
	return rows[0].Title, nil
}
