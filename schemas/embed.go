// Package schemas bundles the JSON Schema documents for data files the application accepts.
package schemas

import (
	"embed"
	"fmt"
)

// SkillVocabulary is the schema for custom skill vocabulary files.
const SkillVocabulary = "skill_vocabulary.schema.json"

//go:embed *.schema.json
var files embed.FS

// Get returns the content of a bundled schema by file name.
func Get(name string) (string, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("failed to read schema %s: %w", name, err)
	}
	return string(data), nil
}
