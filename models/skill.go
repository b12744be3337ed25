package models

import (
	"errors"
	"fmt"
	"strings"
)

// Proficiency is an ordered skill level: beginner < intermediate < advanced < expert.
type Proficiency string

const (
	Beginner     Proficiency = "beginner"
	Intermediate Proficiency = "intermediate"
	Advanced     Proficiency = "advanced"
	Expert       Proficiency = "expert"
)

// Proficiencies lists every level in ascending order.
var Proficiencies = []Proficiency{Beginner, Intermediate, Advanced, Expert}

// Rank is 1 for beginner through 4 for expert, 0 for an unknown level.
func (p Proficiency) Rank() int {
	for i, level := range Proficiencies {
		if p == level {
			return i + 1
		}
	}
	return 0
}

func (p Proficiency) Valid() bool {
	return p.Rank() > 0
}

// Mastered is true for advanced and expert.
func (p Proficiency) Mastered() bool {
	return p.Rank() >= Advanced.Rank()
}

func (p Proficiency) Label() string {
	return strings.ToUpper(string(p))
}

// Skill is one entry of the skills showcase.
type Skill struct {
	ID          string      `json:"_id"`
	Type        string      `json:"_type"`
	Name        string      `json:"name"`
	Icon        string      `json:"icon"`
	Proficiency Proficiency `json:"proficiency"`
	Category    string      `json:"category"`
	Description string      `json:"description,omitempty"`
}

var ErrMissingName = errors.New("missing name")

func (s Skill) Validate() error {
	switch {
	case s.ID == "":
		return ErrMissingID
	case s.Name == "":
		return ErrMissingName
	case !s.Proficiency.Valid():
		return fmt.Errorf("unknown proficiency %q", s.Proficiency)
	}
	return nil
}
