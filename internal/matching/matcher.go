// Package matching scores a resume against a job description using a skill vocabulary.
package matching

import (
	"math"
	"strings"
)

// Vocabulary supplies the ordered list of known skills.
type Vocabulary interface {
	Skills() []string
}

// SkillList is a Vocabulary backed by a plain slice, in the given order.
type SkillList []string

// Skills returns the list itself.
func (l SkillList) Skills() []string {
	return l
}

// Result is the outcome of one match.
type Result struct {
	// Score is in [0, 100], rounded to two decimals
	Score float64 `json:"score"`
	// Matched skills appear in both the job description and the resume
	Matched []string `json:"matched"`
	// Missing skills appear in the job description only
	Missing []string `json:"missing"`
	// Fallback is set when no vocabulary skill occurs in the job description
	// and the score comes from word overlap
	Fallback bool `json:"fallback"`
}

// stopWords are removed from the job description before word overlap scoring.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "is": {}, "in": {}, "of": {}, "to": {}, "a": {}, "for": {},
	"with": {}, "on": {}, "at": {}, "by": {}, "an": {}, "be": {}, "or": {}, "that": {},
	"this": {}, "are": {}, "we": {}, "you": {}, "it": {}, "as": {}, "your": {}, "our": {},
}

// Normalize lower-cases text. No stemming or stop-word removal happens here.
func Normalize(text string) string {
	return strings.ToLower(text)
}

// Score matches resumeText against jobDescription.
//
// Every vocabulary skill contained in the normalized job description is
// matched when the normalized resume also contains it and missing otherwise.
// The score is the matched share of those skills. When the job description
// contains no vocabulary skill the score falls back to the share of
// non-stop-word job description words that also occur in the resume.
func Score(resumeText, jobDescription string, vocab Vocabulary) Result {
	resume := Normalize(resumeText)
	jd := Normalize(jobDescription)

	result := Result{Matched: []string{}, Missing: []string{}}
	for _, skill := range vocab.Skills() {
		if !strings.Contains(jd, skill) {
			continue
		}
		if strings.Contains(resume, skill) {
			result.Matched = append(result.Matched, skill)
		} else {
			result.Missing = append(result.Missing, skill)
		}
	}

	total := len(result.Matched) + len(result.Missing)
	if total == 0 {
		result.Fallback = true
		result.Score = wordOverlap(resume, jd)
		return result
	}

	result.Score = round2(float64(len(result.Matched)) / float64(total) * 100)
	return result
}

// wordOverlap scores the share of distinct non-stop-word job description words present in the resume.
func wordOverlap(resume, jd string) float64 {
	jdWords := make(map[string]struct{})
	for _, w := range strings.Fields(jd) {
		if _, stop := stopWords[w]; stop {
			continue
		}
		jdWords[w] = struct{}{}
	}
	if len(jdWords) == 0 {
		return 0
	}

	resumeWords := make(map[string]struct{})
	for _, w := range strings.Fields(resume) {
		resumeWords[w] = struct{}{}
	}

	common := 0
	for w := range jdWords {
		if _, ok := resumeWords[w]; ok {
			common++
		}
	}

	return math.Min(round2(float64(common)/float64(len(jdWords))*100), 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
