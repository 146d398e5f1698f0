// Package skills provides the static skill vocabulary used to match resumes against job descriptions.
package skills

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/schemas"
	bundled "github.com/jonathan/resume-analyzer/schemas"
)

//go:embed data/default.json
var defaultVocabulary []byte

// Category names a group of skills in the vocabulary
type Category string

const (
	CategoryTechnical  Category = "technical"
	CategorySoftSkills Category = "soft_skills"
	CategoryTools      Category = "tools"
	CategoryBusiness   Category = "business"
)

// Categories lists the categories in matching order.
var Categories = []Category{CategoryTechnical, CategorySoftSkills, CategoryTools, CategoryBusiness}

// Vocabulary is an ordered, immutable set of known skills.
// Skills are lower-cased and trimmed; the first occurrence of a duplicate wins.
type Vocabulary struct {
	byCategory map[Category][]string
	ordered    []string
}

type vocabularyFile struct {
	Technical  []string `json:"technical"`
	SoftSkills []string `json:"soft_skills"`
	Tools      []string `json:"tools"`
	Business   []string `json:"business"`
}

// Default returns the vocabulary bundled with the binary.
func Default() *Vocabulary {
	v, err := Parse(defaultVocabulary)
	if err != nil {
		panic(fmt.Sprintf("bundled skill vocabulary is invalid: %v", err))
	}
	return v
}

// LoadFile reads and validates a custom vocabulary file.
func LoadFile(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read skill vocabulary %s: %w", path, err)
	}
	v, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid skill vocabulary %s: %w", path, err)
	}
	return v, nil
}

// Load returns the vocabulary from path, or the bundled default when path is empty.
func Load(path string) (*Vocabulary, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// Parse validates vocabulary JSON against the bundled schema and builds a Vocabulary.
func Parse(data []byte) (*Vocabulary, error) {
	if err := schemas.Validate(bundled.SkillVocabulary, data); err != nil {
		return nil, err
	}

	var f vocabularyFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode skill vocabulary: %w", err)
	}

	return New(map[Category][]string{
		CategoryTechnical:  f.Technical,
		CategorySoftSkills: f.SoftSkills,
		CategoryTools:      f.Tools,
		CategoryBusiness:   f.Business,
	}), nil
}

// New builds a vocabulary from per-category skill lists. Unknown categories are ignored.
func New(byCategory map[Category][]string) *Vocabulary {
	v := &Vocabulary{byCategory: make(map[Category][]string, len(Categories))}
	seen := make(map[string]bool)

	for _, category := range Categories {
		for _, raw := range byCategory[category] {
			skill := NormalizeSkill(raw)
			if skill == "" || seen[skill] {
				continue
			}
			seen[skill] = true
			v.byCategory[category] = append(v.byCategory[category], skill)
			v.ordered = append(v.ordered, skill)
		}
	}
	return v
}

// NormalizeSkill lower-cases and trims a skill name.
func NormalizeSkill(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}

// Skills returns every skill, categories concatenated in matching order.
func (v *Vocabulary) Skills() []string {
	out := make([]string, len(v.ordered))
	copy(out, v.ordered)
	return out
}

// Category returns the skills of one category.
func (v *Vocabulary) Category(c Category) []string {
	out := make([]string, len(v.byCategory[c]))
	copy(out, v.byCategory[c])
	return out
}

// Len returns the number of distinct skills.
func (v *Vocabulary) Len() int {
	return len(v.ordered)
}
