// Package report turns match results into suggestions, action plans and plain-text documents.
//
// Every function in this package is pure: the same inputs always produce the same output.
package report

import (
	"slices"
	"strings"
)

// Score thresholds shared by suggestions and action plans.
const (
	thresholdStrong      = 80
	thresholdCompetitive = 60
	thresholdDeveloping  = 40
)

const (
	maxRecommendedSkills = 5
	recommendationPrefix = "Recommended skills to learn: "
)

var tierSuggestions = [...]string{
	"You are highly aligned with this role. Focus on advanced system design and leadership skills.",
	"You are moderately aligned. Strengthen the missing technical skills to improve your profile.",
	"You have some relevant skills but significant gaps remain. Prioritize the missing skills below.",
	"Your resume needs significant improvement for this role. Focus on building the core required skills.",
}

// skillTips are appended when the skill is missing, in this order.
var skillTips = []struct {
	skill string
	tip   string
}{
	{"react", "Consider strengthening frontend skills for roles like Frontend Developer."},
	{"python", "Improving Python can open Backend and Data roles."},
	{"sql", "Database skills are critical for Backend and Data Engineering roles."},
	{"machine learning", "Machine Learning skills are in high demand for AI/Data Science roles."},
	{"docker", "Docker knowledge is essential for DevOps and Backend Engineering roles."},
}

// tierIndex maps a score to 0 (strong) through 3 (early).
func tierIndex(score float64) int {
	switch {
	case score >= thresholdStrong:
		return 0
	case score >= thresholdCompetitive:
		return 1
	case score >= thresholdDeveloping:
		return 2
	default:
		return 3
	}
}

// Suggestions returns career suggestions for a score and its missing skills:
// one tier message, a recommendation line naming up to five missing skills,
// then a fixed tip for each well-known missing skill.
func Suggestions(score float64, missing []string) []string {
	suggestions := []string{tierSuggestions[tierIndex(score)]}

	if len(missing) > 0 {
		suggestions = append(suggestions, recommendationPrefix+strings.Join(firstN(missing, maxRecommendedSkills), ", "))
	}

	for _, st := range skillTips {
		if slices.Contains(missing, st.skill) {
			suggestions = append(suggestions, st.tip)
		}
	}

	return suggestions
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
