package ui

import (
	"math"
	"strings"
)

// Skill is one entry of a skill category.
type Skill struct {
	Name  string
	Level int
}

// SkillCategory groups skills under a heading.
type SkillCategory struct {
	Icon   string
	Title  string
	Skills []Skill
}

// Bar renders level (0-100) as a bar of width cells.
func Bar(level, width int) string {
	if width <= 0 {
		return ""
	}
	level = max(0, min(100, level))
	filled := int(math.Round(float64(level) * float64(width) / 100))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
