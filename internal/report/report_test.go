package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestions(t *testing.T) {
	t.Run("tiers", func(t *testing.T) {
		tests := []struct {
			score float64
			want  string
		}{
			{95, "You are highly aligned with this role. Focus on advanced system design and leadership skills."},
			{80, "You are highly aligned with this role. Focus on advanced system design and leadership skills."},
			{60, "You are moderately aligned. Strengthen the missing technical skills to improve your profile."},
			{40, "You have some relevant skills but significant gaps remain. Prioritize the missing skills below."},
			{39.99, "Your resume needs significant improvement for this role. Focus on building the core required skills."},
		}
		for _, tt := range tests {
			got := Suggestions(tt.score, nil)
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0])
		}
	})

	t.Run("recommends at most five missing skills", func(t *testing.T) {
		got := Suggestions(50, []string{"a", "b", "c", "d", "e", "f"})
		require.Len(t, got, 2)
		assert.Equal(t, "Recommended skills to learn: a, b, c, d, e", got[1])
	})

	t.Run("skill tips in fixed order", func(t *testing.T) {
		got := Suggestions(20, []string{"docker", "sql", "machine learning", "python", "react"})
		require.Len(t, got, 7)
		assert.Equal(t, []string{
			"Consider strengthening frontend skills for roles like Frontend Developer.",
			"Improving Python can open Backend and Data roles.",
			"Database skills are critical for Backend and Data Engineering roles.",
			"Machine Learning skills are in high demand for AI/Data Science roles.",
			"Docker knowledge is essential for DevOps and Backend Engineering roles.",
		}, got[2:])
	})

	t.Run("tip requires exact skill", func(t *testing.T) {
		got := Suggestions(20, []string{"react native"})
		assert.Len(t, got, 2)
	})
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "50.0", FormatScore(50))
	assert.Equal(t, "0.0", FormatScore(0))
	assert.Equal(t, "100.0", FormatScore(100))
	assert.Equal(t, "66.67", FormatScore(66.67))
	assert.Equal(t, "33.3", FormatScore(33.3))
}

func TestBuildReportText(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 7, 0, 0, time.FixedZone("EST", -5*3600))
	matched := []string{"python", "sql"}
	missing := []string{"react"}
	plan := BuildActionPlan(66.67, matched, missing)

	text := buildReportText("jane@example.com", 66.67, matched, missing, plan, now)

	assert.True(t, strings.HasPrefix(text, "RESUME ANALYSIS REPORT\n======================\n"))
	assert.Contains(t, text, "Candidate: jane@example.com\n")
	assert.Contains(t, text, "Generated: 2024-03-05 19:07 UTC\n")
	assert.Contains(t, text, "Match Score: 66.67%\n")
	assert.Contains(t, text, "Fit Level: Competitive Fit\n")
	assert.Contains(t, text, "Summary: You are close. Close the top skill gaps before applying.\n")
	assert.Contains(t, text, "Matched Skills:\n- python\n- sql\n\n")
	assert.Contains(t, text, "Missing Skills:\n- react\n\n")
	assert.Contains(t, text, "Priority Actions:\n1. Build and document one project outcome using react\n2. Add measurable results")
	assert.Contains(t, text, "4-Week Plan:\n- Week 1:")
	assert.Contains(t, text, "Resume Edits:\n- Mirror")
}

func TestBuildReportText_EmptyListsAndLimit(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var many []string
	for i := 0; i < 12; i++ {
		many = append(many, string(rune('a'+i)))
	}
	plan := BuildActionPlan(50, many, nil)

	text := buildReportText("x@y.z", 50, many, nil, plan, now)

	assert.Contains(t, text, "Match Score: 50.0%\n")
	assert.Contains(t, text, "Missing Skills:\n- None identified\n")
	assert.Contains(t, text, "- j\n")
	assert.NotContains(t, text, "- k\n")
}

func TestFilenames(t *testing.T) {
	assert.Equal(t, "jane_doe_at_example_com_resume_report.txt", ReportFilename("jane.doe@example.com"))
	assert.Equal(t, "jane_doe_ats_resume", BaseFilename("  Jane Doe ", "ats_resume"))
	assert.Equal(t, "candidate_cover_letter", BaseFilename("   ", "cover_letter"))
}

func TestBuildResumeText(t *testing.T) {
	t.Run("full layout", func(t *testing.T) {
		text := BuildResumeText(ResumeFields{
			FullName:       "Jane Doe",
			Email:          "jane@example.com",
			Phone:          "555-0100",
			Location:       "Berlin",
			GitHub:         "github.com/jane",
			Summary:        "Backend engineer.\n\n",
			Skills:         "Go,  Python ,\nSQL",
			Experience:     "  Acme Corp - Engineer \n\n- Built APIs",
			Education:      "BSc Computer Science",
			Certifications: "",
		})

		want := "JANE DOE\n" +
			"jane@example.com | 555-0100 | Berlin | github.com/jane\n\n" +
			"PROFESSIONAL SUMMARY\nBackend engineer.\n\n" +
			"SKILLS\nGo, Python, SQL\n\n" +
			"EXPERIENCE\nAcme Corp - Engineer\n- Built APIs\n\n" +
			"EDUCATION\nBSc Computer Science"
		assert.Equal(t, want, text)
	})

	t.Run("all empty", func(t *testing.T) {
		assert.Empty(t, BuildResumeText(ResumeFields{}))
	})
}

func TestBuildCoverLetterText(t *testing.T) {
	now := time.Date(2024, 7, 9, 23, 30, 0, 0, time.UTC)

	t.Run("all fields", func(t *testing.T) {
		text := buildCoverLetterText(CoverLetterFields{
			FullName:        "Jane Doe",
			Email:           "jane@example.com",
			Company:         "Acme",
			Role:            "Backend Engineer",
			HiringManager:   "Ms. Smith",
			YearsExperience: "5",
			TopSkills:       "Go, SQL",
			Achievements:    "Cut latency by 40%.\nLed a team of 4",
		}, now)

		assert.True(t, strings.HasPrefix(text, "Jane Doe\njane@example.com\n\nJuly 9, 2024\n\nDear Ms. Smith,\n\n"))
		assert.Contains(t, text, "I am excited to apply for the Backend Engineer role at Acme.")
		assert.Contains(t, text, "With 5 years of experience and strengths in Go, SQL,")
		assert.Contains(t, text, "Highlights of my recent work include: Cut latency by 40%.; Led a team of 4.")
		assert.Contains(t, text, "help Acme succeed.")
		assert.True(t, strings.HasSuffix(text, "Sincerely,\nJane Doe"))
	})

	t.Run("defaults", func(t *testing.T) {
		text := buildCoverLetterText(CoverLetterFields{}, now)

		assert.True(t, strings.HasPrefix(text, "July 9, 2024\n\nDear Hiring Manager,"))
		assert.Contains(t, text, "apply for the open position at your company.")
		assert.NotContains(t, text, "years of experience")
		assert.NotContains(t, text, "Highlights")
		assert.True(t, strings.HasSuffix(text, "Sincerely,\nCandidate"))
	})

	t.Run("skills only", func(t *testing.T) {
		text := buildCoverLetterText(CoverLetterFields{TopSkills: "Go"}, now)
		assert.Contains(t, text, "With strengths in Go, I am ready")
	})
}

func TestAuditResumeQuality(t *testing.T) {
	t.Run("well structured resume", func(t *testing.T) {
		var sb strings.Builder
		sb.WriteString("Jane Doe\njane@example.com | +1 555 010 0199 | linkedin.com/in/jane\n")
		sb.WriteString("Summary\nBackend engineer focused on reliable services.\n")
		sb.WriteString("Experience\n")
		sb.WriteString("- Led migration of 12 services, reducing costs by 30%\n")
		sb.WriteString("- Built a billing API serving 2m requests per day\n")
		sb.WriteString("- Improved p99 latency by 45 percent\n")
		sb.WriteString("- Mentored 4 engineers\n")
		sb.WriteString("Education\nBSc Computer Science\n")
		sb.WriteString("Skills:\nGo, Python, SQL\n")
		sb.WriteString("Projects\nOpen source contributor\n")
		sb.WriteString("Certifications\nAWS Solutions Architect\n")
		sb.WriteString(strings.Repeat("experienced engineer shipping production systems ", 60))

		audit := AuditResumeQuality(sb.String())

		assert.True(t, audit.HasEmail)
		assert.True(t, audit.HasPhone)
		assert.True(t, audit.HasLinkedIn)
		for _, s := range audit.Sections {
			assert.True(t, s.Present, s.Name)
		}
		assert.Equal(t, 4, audit.ActionVerbs)
		assert.Equal(t, 3, audit.QuantifiedLines)
		assert.GreaterOrEqual(t, audit.Score, 80)
		assert.LessOrEqual(t, audit.Score, 100)
		assert.Empty(t, audit.Tips)
	})

	t.Run("bare text", func(t *testing.T) {
		audit := AuditResumeQuality("just some words")

		assert.False(t, audit.HasEmail)
		assert.False(t, audit.HasPhone)
		assert.Equal(t, 3, audit.WordCount)
		assert.Equal(t, 0, audit.Score)
		assert.Contains(t, audit.Tips, "Add a phone number to your contact details.")
		assert.Contains(t, audit.Tips, "Add a clearly labeled Experience section.")
		assert.Contains(t, audit.Tips, "Expand your resume with more detail about your experience and impact.")
	})

	t.Run("deterministic", func(t *testing.T) {
		text := "Experience\n- Built things 50% faster"
		assert.Equal(t, AuditResumeQuality(text), AuditResumeQuality(text))
	})
}
