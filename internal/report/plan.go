package report

import "fmt"

// FitLevel is one of the four score bands.
type FitLevel string

const (
	LevelStrong      FitLevel = "Strong Fit"
	LevelCompetitive FitLevel = "Competitive Fit"
	LevelDeveloping  FitLevel = "Developing Fit"
	LevelEarly       FitLevel = "Early Fit"
)

// ActionPlan is a staged improvement plan derived from a match.
type ActionPlan struct {
	Level           FitLevel `json:"level"`
	Headline        string   `json:"headline"`
	Strengths       []string `json:"strengths"`
	FocusSkills     []string `json:"focus_skills"`
	PriorityActions []string `json:"priority_actions"`
	WeekPlan        []string `json:"week_plan"`
	ResumeEdits     []string `json:"resume_edits"`
}

var tiers = [...]struct {
	level    FitLevel
	headline string
}{
	{LevelStrong, "You are ready to apply. Polish leadership and impact stories."},
	{LevelCompetitive, "You are close. Close the top skill gaps before applying."},
	{LevelDeveloping, "Build targeted proof for the missing skills over the next month."},
	{LevelEarly, "Focus on foundational skills and one portfolio project first."},
}

const (
	planListSize       = 5
	priorityActionSize = 3
	priorityActionFmt  = "Build and document one project outcome using %s"
)

// priorityPadding fills priority actions when fewer than three focus skills exist.
// The metrics line always comes first.
var priorityPadding = []string{
	"Add measurable results (%, time saved, revenue, users) to your top three resume bullets",
	"Tailor your professional summary to the core requirements of the role",
	"Ask a peer in the target role to review your resume against the job description",
}

var weekPlan = []string{
	"Week 1: Map each focus skill to one course or tutorial and start the first one.",
	"Week 2: Finish the learning track for your top focus skill and take notes on real use cases.",
	"Week 3: Build a small project that applies your focus skills and publish it with a clear README.",
	"Week 4: Add the project and new skills to your resume, then apply to roles that match this profile.",
}

var resumeEdits = []string{
	"Mirror the exact skill keywords from the job description in your skills section.",
	"Start each experience bullet with a strong action verb.",
	"Quantify the impact of your top achievements with concrete numbers.",
}

// BuildActionPlan derives the action plan for a score and its skill lists.
func BuildActionPlan(score float64, matched, missing []string) ActionPlan {
	tier := tiers[tierIndex(score)]
	focus := cloneStrings(firstN(missing, planListSize))

	priority := make([]string, 0, priorityActionSize)
	for _, skill := range firstN(focus, priorityActionSize) {
		priority = append(priority, fmt.Sprintf(priorityActionFmt, skill))
	}
	for i := 0; len(priority) < priorityActionSize; i++ {
		priority = append(priority, priorityPadding[i])
	}

	return ActionPlan{
		Level:           tier.level,
		Headline:        tier.headline,
		Strengths:       cloneStrings(firstN(matched, planListSize)),
		FocusSkills:     focus,
		PriorityActions: priority,
		WeekPlan:        cloneStrings(weekPlan),
		ResumeEdits:     cloneStrings(resumeEdits),
	}
}

func cloneStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
