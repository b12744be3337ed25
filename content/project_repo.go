package content

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rpupo63/zenith-portfolio/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Fetcher is the query surface repos depend on. *Client satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, q Query, params Params, tags []string, out any) error
}

type ProjectRepo struct {
	fetcher Fetcher
	logger  zerolog.Logger
}

func NewProjectRepo(fetcher Fetcher) *ProjectRepo {
	return &ProjectRepo{
		fetcher: fetcher,
		logger:  log.With().Str("repoName", "project").Logger(),
	}
}

// FindFeatured returns up to three featured projects, newest first.
func (r *ProjectRepo) FindFeatured(ctx context.Context) ([]models.Project, error) {
	return r.list(ctx, FeaturedProjectsQuery)
}

// FindAll returns every valid project, newest first.
func (r *ProjectRepo) FindAll(ctx context.Context) ([]models.Project, error) {
	return r.list(ctx, AllProjectsQuery)
}

// FindBySlug returns nil, nil when no project carries slug.
func (r *ProjectRepo) FindBySlug(ctx context.Context, slug string) (*models.Project, error) {
	tags := append([]string{ProjectTag(slug)}, ProjectBySlugQuery.Tags...)

	var raw json.RawMessage
	if err := r.fetcher.Fetch(ctx, ProjectBySlugQuery, Params{"slug": slug}, tags, &raw); err != nil {
		return nil, fmt.Errorf("ProjectRepo.FindBySlug: %w", err)
	}
	return decodeOne[models.Project](raw, ProjectBySlugQuery.Name, r.logger), nil
}

// FindSlugs lists the slug of every project that has one.
func (r *ProjectRepo) FindSlugs(ctx context.Context) ([]string, error) {
	var rows []struct {
		Slug models.Slug `json:"slug"`
	}
	if err := r.fetcher.Fetch(ctx, ProjectSlugsQuery, nil, ProjectSlugsQuery.Tags, &rows); err != nil {
		return nil, fmt.Errorf("ProjectRepo.FindSlugs: %w", err)
	}

	slugs := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.Slug.Current != "" {
			slugs = append(slugs, row.Slug.Current)
		}
	}
	return slugs, nil
}

func (r *ProjectRepo) list(ctx context.Context, q Query) ([]models.Project, error) {
	var raw []json.RawMessage
	if err := r.fetcher.Fetch(ctx, q, nil, q.Tags, &raw); err != nil {
		return nil, fmt.Errorf("ProjectRepo.%s: %w", q.Name, err)
	}
	return decodeList[models.Project](raw, q.Name, r.logger), nil
}
