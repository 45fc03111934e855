// Package schemas embeds the JSON Schemas for the matcher's data files and outputs.
package schemas

import "embed"

// Schema file names.
const (
	MatchResult     = "match_result.schema.json"
	SkillVocabulary = "skill_vocabulary.schema.json"
)

// Files holds every schema in this directory.
//
//go:embed *.schema.json
var Files embed.FS

// Load returns the content of the named schema.
func Load(name string) ([]byte, error) {
	return Files.ReadFile(name)
}
