package models

import "errors"

// Recommendation is a testimonial shown on the home page.
type Recommendation struct {
	ID         string    `json:"_id"`
	Type       string    `json:"_type"`
	AuthorName string    `json:"authorName"`
	Position   string    `json:"position"`
	Company    string    `json:"company"`
	Quote      string    `json:"quote"`
	Avatar     *ImageRef `json:"avatar,omitempty"`
	Featured   bool      `json:"featured"`
}

var ErrMissingAuthor = errors.New("missing authorName")

func (r Recommendation) Validate() error {
	if r.ID == "" {
		return ErrMissingID
	}
	if r.AuthorName == "" {
		return ErrMissingAuthor
	}
	return nil
}
