package render

import (
	"sort"

	"github.com/rpupo63/zenith-portfolio/models"
)

type SkillView struct {
	Name        string
	Description string
	IconURL     string
	Level       string
	Rank        int
	// Bars holds four entries, filled up to Rank.
	Bars []bool
}

type SkillCategory struct {
	Name   string
	Skills []SkillView
}

type SkillsSection struct {
	Categories   []SkillCategory
	Technologies int
	Domains      int
	Mastered     int
}

// GroupSkills buckets skills by category. Categories follow preferred, then any others in
// the order first seen. Within a category skills go from most to least proficient, keeping
// input order on ties. It returns nil when there are no skills.
func GroupSkills(skills []models.Skill, preferred []string) *SkillsSection {
	if len(skills) == 0 {
		return nil
	}

	byCategory := make(map[string][]models.Skill)
	var seen []string
	mastered := 0
	for _, skill := range skills {
		if _, ok := byCategory[skill.Category]; !ok {
			seen = append(seen, skill.Category)
		}
		byCategory[skill.Category] = append(byCategory[skill.Category], skill)
		if skill.Proficiency.Mastered() {
			mastered++
		}
	}

	position := make(map[string]int, len(preferred))
	for i, name := range preferred {
		if _, dup := position[name]; !dup {
			position[name] = i
		}
	}
	rank := func(name string) int {
		if i, ok := position[name]; ok {
			return i
		}
		return len(preferred)
	}
	sort.SliceStable(seen, func(i, j int) bool {
		return rank(seen[i]) < rank(seen[j])
	})

	section := &SkillsSection{
		Technologies: len(skills),
		Domains:      len(seen),
		Mastered:     mastered,
	}
	for _, name := range seen {
		group := byCategory[name]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Proficiency.Rank() > group[j].Proficiency.Rank()
		})

		category := SkillCategory{Name: name, Skills: make([]SkillView, 0, len(group))}
		for _, skill := range group {
			category.Skills = append(category.Skills, skillView(skill))
		}
		section.Categories = append(section.Categories, category)
	}
	return section
}

func skillView(skill models.Skill) SkillView {
	icon := skill.Icon
	if icon == "" {
		icon = DefaultTechIcon
	}

	rank := skill.Proficiency.Rank()
	bars := make([]bool, len(models.Proficiencies))
	for i := range bars {
		bars[i] = i < rank
	}

	return SkillView{
		Name:        skill.Name,
		Description: skill.Description,
		IconURL:     icon,
		Level:       skill.Proficiency.Label(),
		Rank:        rank,
		Bars:        bars,
	}
}
