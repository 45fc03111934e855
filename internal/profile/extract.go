// Package profile extracts contact and education facts from resume text.
package profile

import (
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/types"
)

// PersonTagger finds person names in text, in document order.
type PersonTagger interface {
	PersonNames(text string) []string
}

// SentenceSplitter splits text into sentences.
type SentenceSplitter interface {
	Sentences(text string) []string
}

// Analyzer is the language pipeline the extractor needs.
type Analyzer interface {
	PersonTagger
	SentenceSplitter
}

// Extractor derives an ExtractedProfile from cleaned resume text.
type Extractor struct {
	analyzer Analyzer
	logger   *zap.Logger
}

// NewExtractor creates an Extractor. A nil analyzer disables the tagged-person
// rule and sentence splitting; the pattern rules still apply.
func NewExtractor(analyzer Analyzer, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{analyzer: analyzer, logger: logger}
}

// Extract never fails: facts that cannot be found are left nil.
func (e *Extractor) Extract(text string) types.ExtractedProfile {
	lines := nonEmptyLines(text)

	var tagger PersonTagger
	var splitter SentenceSplitter
	if e.analyzer != nil {
		tagger, splitter = e.analyzer, e.analyzer
	}

	name, rule := findName(lines, tagger)
	profile := types.ExtractedProfile{
		Name:      types.StringPtr(name),
		Email:     types.StringPtr(FindEmail(text)),
		Phone:     types.StringPtr(FindPhone(text)),
		Education: findEducation(lines, splitter),
	}

	e.logger.Debug("profile extracted",
		zap.Bool("name", profile.Name != nil),
		zap.String("name_rule", rule),
		zap.Bool("email", profile.Email != nil),
		zap.Bool("phone", profile.Phone != nil),
		zap.Int("education", len(profile.Education)),
	)

	return profile
}

func nonEmptyLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
