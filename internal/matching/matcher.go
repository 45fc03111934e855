// Package matching runs the full resume-to-job analysis: text extraction,
// profile and skill extraction, similarity scoring and gap analysis.
package matching

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/gap"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/nlp"
	"github.com/jonathan/resume-matcher/internal/profile"
	"github.com/jonathan/resume-matcher/internal/similarity"
	"github.com/jonathan/resume-matcher/internal/types"
)

// TextExtractor turns a raw document into cleaned text plus metadata.
type TextExtractor interface {
	ExtractWithMetadata(doc types.RawDocument) (string, *ingestion.Metadata, error)
}

// SkillExtractor finds canonical skills in text.
type SkillExtractor interface {
	Extract(text string) types.SkillSet
}

// AnalyzerSource hands out the shared language pipeline.
type AnalyzerSource interface {
	Analyzer() (profile.Analyzer, error)
}

// ScoreFunc scores the lexical similarity of two texts in [0, 1].
type ScoreFunc func(resumeText, jobText string) float64

type loaderSource struct {
	loader *nlp.Loader
}

func (s loaderSource) Analyzer() (profile.Analyzer, error) {
	pipeline, err := s.loader.Pipeline()
	if err != nil {
		return nil, err
	}
	return pipeline, nil
}

// FromLoader adapts an nlp.Loader to an AnalyzerSource.
func FromLoader(loader *nlp.Loader) AnalyzerSource {
	return loaderSource{loader: loader}
}

// Matcher sequences the analysis stages. It is safe for concurrent use as
// long as its collaborators are.
type Matcher struct {
	text   TextExtractor
	models AnalyzerSource
	skills SkillExtractor
	score  ScoreFunc
	now    func() time.Time
	newID  func() uuid.UUID
	logger *zap.Logger
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Matcher) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithTextExtractor replaces the document text extractor.
func WithTextExtractor(text TextExtractor) Option {
	return func(m *Matcher) { m.text = text }
}

// WithScorer replaces the similarity scorer.
func WithScorer(score ScoreFunc) Option {
	return func(m *Matcher) { m.score = score }
}

// WithClock replaces the clock used for AnalyzedAt.
func WithClock(now func() time.Time) Option {
	return func(m *Matcher) { m.now = now }
}

// WithIDs replaces the result ID generator.
func WithIDs(newID func() uuid.UUID) Option {
	return func(m *Matcher) { m.newID = newID }
}

// New creates a Matcher over the given skill extractor and language pipeline.
func New(skills SkillExtractor, models AnalyzerSource, opts ...Option) *Matcher {
	m := &Matcher{
		models: models,
		skills: skills,
		score:  similarity.Score,
		now:    time.Now,
		newID:  uuid.New,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.text == nil {
		m.text = ingestion.NewExtractor(m.logger)
	}
	return m
}

// AnalyzeMatch analyzes one resume against one job description. It returns
// either a complete result or a single error: a document error from text
// extraction (*ingestion.UnsupportedFormatError, *ingestion.CorruptDocumentError,
// *ingestion.EmptyDocumentError), a *nlp.ModelUnavailableError, or the
// context's error.
func (m *Matcher) AnalyzeMatch(ctx context.Context, doc types.RawDocument, jobDescription string) (*types.MatchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := m.now()

	text, meta, err := m.text.ExtractWithMetadata(doc)
	if err != nil {
		m.logger.Warn("resume rejected", append(logger.DocumentFields(doc), zap.Error(err))...)
		return nil, err
	}

	analyzer, err := m.models.Analyzer()
	if err != nil {
		m.logger.Error("analysis aborted", zap.Error(err))
		return nil, err
	}

	jobText := ingestion.CleanText(jobDescription)

	extracted := profile.NewExtractor(analyzer, m.logger).Extract(text)
	resumeSkills := m.skills.Extract(text)
	jobSkills := m.skills.Extract(jobText)
	score := m.score(text, jobText)
	report := gap.Analyze(resumeSkills, jobSkills)

	result := &types.MatchResult{
		ID:           m.newID(),
		Score:        score,
		ScorePercent: similarity.Percent(score),
		Profile:      extracted,
		Gap:          report,
		ResumeSkills: resumeSkills.Sorted(),
		JobSkills:    jobSkills.Sorted(),
		Document:     meta.DocumentInfo(),
		AnalyzedAt:   m.now().UTC(),
	}

	m.logger.Info("analysis complete",
		append(logger.ResultFields(result), zap.Duration("elapsed", m.now().Sub(start)))...)

	return result, nil
}
