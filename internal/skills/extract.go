// Package skills recognizes skill mentions in free text using a canonical vocabulary.
package skills

import (
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/types"
)

// Extractor scans text for vocabulary skills. It keeps no state between calls.
type Extractor struct {
	vocabulary *Vocabulary
	logger     *zap.Logger
}

// NewExtractor creates an Extractor over the given vocabulary. A nil
// vocabulary matches nothing.
func NewExtractor(vocabulary *Vocabulary, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{vocabulary: vocabulary, logger: logger}
}

// Vocabulary returns the vocabulary the extractor matches against.
func (e *Extractor) Vocabulary() *Vocabulary {
	return e.vocabulary
}

// Extract returns the canonical skills mentioned in text.
func (e *Extractor) Extract(text string) types.SkillSet {
	found := ExtractSkills(text, e.vocabulary)
	e.logger.Debug("skills extracted",
		zap.Int("skills", found.Len()),
		zap.String("vocabulary", e.vocabulary.Source()),
	)
	return found
}

// ExtractSkills returns the canonical skills mentioned in text. Every n-gram of
// up to vocabulary.MaxWords() tokens is compared for exact equality against the
// vocabulary's names and aliases; overlapping matches are all reported.
func ExtractSkills(text string, vocabulary *Vocabulary) types.SkillSet {
	found := make(types.SkillSet)
	if vocabulary == nil {
		return found
	}

	for _, run := range tokenize(text) {
		for start := range run {
			limit := min(len(run), start+vocabulary.maxWords)
			for end := start + 1; end <= limit; end++ {
				if canonical, ok := vocabulary.index[strings.Join(run[start:end], " ")]; ok {
					found.Add(canonical)
				}
			}
		}
	}

	return found
}
