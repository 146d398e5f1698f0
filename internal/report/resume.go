package report

import (
	"strings"
	"time"
)

// ResumeFields are the form inputs of the ATS resume builder.
type ResumeFields struct {
	FullName       string `json:"full_name" validate:"max=200"`
	Email          string `json:"email" validate:"omitempty,email"`
	Phone          string `json:"phone" validate:"max=50"`
	Location       string `json:"location" validate:"max=200"`
	LinkedIn       string `json:"linkedin" validate:"max=300"`
	GitHub         string `json:"github" validate:"max=300"`
	Summary        string `json:"summary"`
	Skills         string `json:"skills"`
	Experience     string `json:"experience"`
	Projects       string `json:"projects"`
	Education      string `json:"education"`
	Certifications string `json:"certifications"`
}

// CoverLetterFields are the form inputs of the cover letter builder.
type CoverLetterFields struct {
	FullName        string `json:"full_name" validate:"max=200"`
	Email           string `json:"email" validate:"omitempty,email"`
	Phone           string `json:"phone" validate:"max=50"`
	LinkedIn        string `json:"linkedin" validate:"max=300"`
	Company         string `json:"company" validate:"max=200"`
	Role            string `json:"role" validate:"max=200"`
	HiringManager   string `json:"hiring_manager" validate:"max=200"`
	YearsExperience string `json:"years_experience" validate:"max=20"`
	TopSkills       string `json:"top_skills"`
	Achievements    string `json:"achievements"`
}

// BuildResumeText lays out an ATS-friendly plain-text resume. Empty fields and sections are omitted.
func BuildResumeText(f ResumeFields) string {
	var blocks []string

	var header []string
	if name := strings.TrimSpace(f.FullName); name != "" {
		header = append(header, strings.ToUpper(name))
	}
	if contact := joinNonEmpty(" | ", f.Email, f.Phone, f.Location, f.LinkedIn, f.GitHub); contact != "" {
		header = append(header, contact)
	}
	if len(header) > 0 {
		blocks = append(blocks, strings.Join(header, "\n"))
	}

	sections := []struct {
		title string
		body  string
	}{
		{"PROFESSIONAL SUMMARY", strings.Join(nonEmptyLines(f.Summary), "\n")},
		{"SKILLS", strings.Join(splitList(f.Skills), ", ")},
		{"EXPERIENCE", strings.Join(nonEmptyLines(f.Experience), "\n")},
		{"PROJECTS", strings.Join(nonEmptyLines(f.Projects), "\n")},
		{"EDUCATION", strings.Join(nonEmptyLines(f.Education), "\n")},
		{"CERTIFICATIONS", strings.Join(nonEmptyLines(f.Certifications), "\n")},
	}
	for _, s := range sections {
		if s.body == "" {
			continue
		}
		blocks = append(blocks, s.title+"\n"+s.body)
	}

	return strings.Join(blocks, "\n\n")
}

// BuildCoverLetterText writes a cover letter dated today (UTC).
func BuildCoverLetterText(f CoverLetterFields) string {
	return buildCoverLetterText(f, time.Now())
}

func buildCoverLetterText(f CoverLetterFields, now time.Time) string {
	name := strings.TrimSpace(f.FullName)
	company := strings.TrimSpace(f.Company)
	if company == "" {
		company = "your company"
	}
	position := "the open position"
	if role := strings.TrimSpace(f.Role); role != "" {
		position = "the " + role + " role"
	}
	manager := strings.TrimSpace(f.HiringManager)
	if manager == "" {
		manager = "Hiring Manager"
	}

	var blocks []string

	var contact []string
	for _, v := range []string{name, f.Email, f.Phone, f.LinkedIn} {
		if v = strings.TrimSpace(v); v != "" {
			contact = append(contact, v)
		}
	}
	if len(contact) > 0 {
		blocks = append(blocks, strings.Join(contact, "\n"))
	}

	blocks = append(blocks,
		now.UTC().Format("January 2, 2006"),
		"Dear "+manager+",",
		"I am excited to apply for "+position+" at "+company+". "+
			"I believe my background makes me a strong match for what your team needs.",
	)

	years := strings.TrimSpace(f.YearsExperience)
	skills := strings.Join(splitList(f.TopSkills), ", ")
	switch {
	case years != "" && skills != "":
		blocks = append(blocks, "With "+years+" years of experience and strengths in "+skills+", I am ready to contribute from day one.")
	case years != "":
		blocks = append(blocks, "With "+years+" years of experience, I am ready to contribute from day one.")
	case skills != "":
		blocks = append(blocks, "With strengths in "+skills+", I am ready to contribute from day one.")
	}

	if achievements := nonEmptyLines(f.Achievements); len(achievements) > 0 {
		blocks = append(blocks, "Highlights of my recent work include: "+strings.TrimRight(strings.Join(achievements, "; "), ".")+".")
	}

	blocks = append(blocks,
		"Thank you for considering my application. I would welcome the opportunity to discuss how I can help "+company+" succeed.",
	)

	signature := name
	if signature == "" {
		signature = "Candidate"
	}
	blocks = append(blocks, "Sincerely,\n"+signature)

	return strings.Join(blocks, "\n\n")
}

func joinNonEmpty(sep string, values ...string) string {
	var parts []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, sep)
}

// nonEmptyLines trims every line and drops blank ones.
func nonEmptyLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// splitList splits on commas and newlines, trimming items and dropping empty ones.
func splitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '\n' })
	var items []string
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			items = append(items, f)
		}
	}
	return items
}
