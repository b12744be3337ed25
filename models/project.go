package models

import "errors"

// Slug is stored by the content store as an object, not a bare string.
type Slug struct {
	Current string `json:"current"`
}

// Project represents a portfolio project as projected by the project queries.
type Project struct {
	ID          string    `json:"_id"`
	Type        string    `json:"_type"`
	Title       string    `json:"title"`
	Slug        Slug      `json:"slug"`
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	MainImage   *ImageRef `json:"mainImage,omitempty"`
	Tech        []string  `json:"tech"`
	DemoURL     string    `json:"demoUrl,omitempty"`
	RepoURL     string    `json:"repoUrl,omitempty"`
	Featured    bool      `json:"featured"`
	PublishedAt Timestamp `json:"publishedAt"`
}

var (
	ErrMissingID    = errors.New("missing _id")
	ErrMissingTitle = errors.New("missing title")
	ErrMissingSlug  = errors.New("missing slug")
)

// Validate checks the fields every page relies on.
func (p Project) Validate() error {
	switch {
	case p.ID == "":
		return ErrMissingID
	case p.Title == "":
		return ErrMissingTitle
	case p.Slug.Current == "":
		return ErrMissingSlug
	}
	return nil
}

// Path is the detail page route for the project.
func (p Project) Path() string {
	return "/projects/" + p.Slug.Current
}
