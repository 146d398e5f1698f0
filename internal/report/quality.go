package report

import (
	"regexp"
	"strings"
)

// SectionCheck records whether a conventional resume section was found.
type SectionCheck struct {
	Name    string `json:"name"`
	Present bool   `json:"present"`
}

// QualityAudit is a structural review of a resume independent of any job description.
type QualityAudit struct {
	Score           int            `json:"score"`
	WordCount       int            `json:"word_count"`
	HasEmail        bool           `json:"has_email"`
	HasPhone        bool           `json:"has_phone"`
	HasLinkedIn     bool           `json:"has_linkedin"`
	Sections        []SectionCheck `json:"sections"`
	ActionVerbs     int            `json:"action_verbs"`
	QuantifiedLines int            `json:"quantified_lines"`
	Tips            []string       `json:"tips"`
}

var (
	emailPattern      = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phonePattern      = regexp.MustCompile(`\+?\d[\d\s().\-]{7,}\d`)
	quantifiedPattern = regexp.MustCompile(`(?i)\d+(\.\d+)?\s*%|\$\s?\d|\b\d+(\.\d+)?\s*(x|k|m|percent|users|customers|clients|hours|days|weeks|ms|requests)\b`)
)

var auditSections = []struct {
	name     string
	headings []string
}{
	{"Summary", []string{"summary", "professional summary", "profile", "objective", "about me"}},
	{"Experience", []string{"experience", "work experience", "professional experience", "employment", "work history"}},
	{"Education", []string{"education", "academic background"}},
	{"Skills", []string{"skills", "technical skills", "core competencies"}},
	{"Projects", []string{"projects", "personal projects", "selected projects"}},
	{"Certifications", []string{"certifications", "certificates", "licenses"}},
}

var actionVerbs = map[string]bool{
	"led": true, "built": true, "developed": true, "designed": true, "implemented": true,
	"improved": true, "increased": true, "reduced": true, "managed": true, "created": true,
	"launched": true, "delivered": true, "optimized": true, "automated": true, "architected": true,
	"mentored": true, "drove": true, "achieved": true, "streamlined": true, "migrated": true,
	"owned": true, "scaled": true, "shipped": true, "coordinated": true, "analyzed": true,
}

const (
	idealMinWords   = 300
	idealMaxWords   = 900
	lowerBoundWords = 150
	upperBoundWords = 1200
	maxHeadingLen   = 40
	countCap        = 5
)

// AuditResumeQuality scores resume structure out of 100:
// contact details 25, sections 30, action verbs 15, quantified bullets 15, length 15.
func AuditResumeQuality(text string) QualityAudit {
	audit := QualityAudit{
		WordCount:   len(strings.Fields(text)),
		HasEmail:    emailPattern.MatchString(text),
		HasPhone:    phonePattern.MatchString(text),
		HasLinkedIn: strings.Contains(strings.ToLower(text), "linkedin.com"),
		Tips:        []string{},
	}

	lines := nonEmptyLines(text)
	present := make(map[string]bool)
	for _, line := range lines {
		if name, ok := sectionHeading(line); ok {
			present[name] = true
		}
		if startsWithActionVerb(line) {
			audit.ActionVerbs++
		}
		if quantifiedPattern.MatchString(line) {
			audit.QuantifiedLines++
		}
	}

	score := 0
	if audit.HasEmail {
		score += 10
	} else {
		audit.Tips = append(audit.Tips, "Add a professional email address to your contact details.")
	}
	if audit.HasPhone {
		score += 10
	} else {
		audit.Tips = append(audit.Tips, "Add a phone number to your contact details.")
	}
	if audit.HasLinkedIn {
		score += 5
	} else {
		audit.Tips = append(audit.Tips, "Add your LinkedIn profile URL.")
	}

	for _, s := range auditSections {
		found := present[s.name]
		audit.Sections = append(audit.Sections, SectionCheck{Name: s.name, Present: found})
		if found {
			score += 5
		} else {
			audit.Tips = append(audit.Tips, "Add a clearly labeled "+s.name+" section.")
		}
	}

	score += min(audit.ActionVerbs, countCap) * 3
	if audit.ActionVerbs < 3 {
		audit.Tips = append(audit.Tips, "Start more bullet points with strong action verbs such as led or built.")
	}
	score += min(audit.QuantifiedLines, countCap) * 3
	if audit.QuantifiedLines < 3 {
		audit.Tips = append(audit.Tips, "Quantify achievements with numbers such as percentages or time saved.")
	}

	switch {
	case audit.WordCount >= idealMinWords && audit.WordCount <= idealMaxWords:
		score += 15
	case audit.WordCount >= lowerBoundWords && audit.WordCount <= upperBoundWords:
		score += 8
	}
	if audit.WordCount < idealMinWords {
		audit.Tips = append(audit.Tips, "Expand your resume with more detail about your experience and impact.")
	} else if audit.WordCount > idealMaxWords {
		audit.Tips = append(audit.Tips, "Trim your resume to the most relevant one or two pages.")
	}

	audit.Score = score
	return audit
}

func sectionHeading(line string) (string, bool) {
	if len(line) > maxHeadingLen {
		return "", false
	}
	heading := strings.TrimRight(strings.ToLower(strings.TrimSpace(line)), ":")
	for _, s := range auditSections {
		for _, h := range s.headings {
			if heading == h {
				return s.name, true
			}
		}
	}
	return "", false
}

func startsWithActionVerb(line string) bool {
	line = strings.TrimLeft(line, "-*•· \t")
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	return actionVerbs[strings.ToLower(strings.Trim(fields[0], ",.;:"))]
}
