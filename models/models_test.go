package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProficiencyOrdering(t *testing.T) {
	assert.Less(t, Beginner.Rank(), Intermediate.Rank())
	assert.Less(t, Intermediate.Rank(), Advanced.Rank())
	assert.Less(t, Advanced.Rank(), Expert.Rank())
	assert.Equal(t, 0, Proficiency("guru").Rank())

	assert.True(t, Expert.Mastered())
	assert.True(t, Advanced.Mastered())
	assert.False(t, Intermediate.Mastered())
	assert.Equal(t, "EXPERT", Expert.Label())
}

func TestProjectDecodeAndValidate(t *testing.T) {
	raw := `{
		"_id": "p1",
		"_type": "project",
		"title": "Churn Model",
		"slug": {"current": "churn-model"},
		"summary": "Predicts churn",
		"mainImage": {"_type": "image", "asset": {"_ref": "image-abc-800x600-png", "_type": "reference"}},
		"tech": ["https://cdn.jsdelivr.net/gh/devicons/devicon/icons/python/python-original.svg"],
		"featured": true,
		"publishedAt": "2024-05-01T10:00:00Z"
	}`

	var p Project
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	require.NoError(t, p.Validate())

	assert.Equal(t, "/projects/churn-model", p.Path())
	assert.False(t, p.MainImage.IsZero())
	assert.Equal(t, "image-abc-800x600-png", p.MainImage.Asset.Ref)
	assert.Equal(t, 2024, p.PublishedAt.Year())

	p.Slug.Current = ""
	assert.ErrorIs(t, p.Validate(), ErrMissingSlug)
}

func TestValidateMissingFields(t *testing.T) {
	assert.ErrorIs(t, Project{}.Validate(), ErrMissingID)
	assert.ErrorIs(t, Project{ID: "x"}.Validate(), ErrMissingTitle)
	assert.ErrorIs(t, Recommendation{ID: "r"}.Validate(), ErrMissingAuthor)
	assert.ErrorIs(t, Bio{}.Validate(), ErrMissingID)
	assert.ErrorIs(t, Skill{ID: "s"}.Validate(), ErrMissingName)
	assert.Error(t, Skill{ID: "s", Name: "Go", Proficiency: "guru"}.Validate())
	assert.NoError(t, Skill{ID: "s", Name: "Go", Proficiency: Expert}.Validate())
}

func TestImageRefIsZero(t *testing.T) {
	var missing *ImageRef
	assert.True(t, missing.IsZero())
	assert.True(t, (&ImageRef{}).IsZero())

	var cv *FileRef
	assert.True(t, cv.IsZero())
	assert.False(t, (&FileRef{Asset: Reference{Ref: "file-1-pdf"}}).IsZero())
}

func TestTimestamp(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
	}{
		{`"2024-05-01T10:00:00Z"`, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
		{`"2024-05-01T10:00:00.250+02:00"`, time.Date(2024, 5, 1, 8, 0, 0, 250e6, time.UTC)},
		{`"2024-05-01"`, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{`""`, time.Time{}},
		{`"last spring"`, time.Time{}},
		{`null`, time.Time{}},
		{`20240501`, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var p Project
			require.NoError(t, json.Unmarshal([]byte(`{"publishedAt":`+tt.raw+`}`), &p))
			assert.True(t, tt.want.Equal(p.PublishedAt.Time), p.PublishedAt.Time)
		})
	}
}
