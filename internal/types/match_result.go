package types

import (
	"time"

	"github.com/google/uuid"
)

// GapReport reconciles resume skills against job skills.
// Matched and Missing are disjoint, sorted, and together equal the job skills.
type GapReport struct {
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
}

// DocumentInfo describes the resume a result was computed from.
type DocumentInfo struct {
	Format     Format `json:"format"`
	Hash       string `json:"hash"`     // SHA256 hex digest of the raw bytes
	Sections   int    `json:"sections"` // PDF pages or DOCX paragraphs
	Characters int    `json:"characters"`
}

// MatchResult is the complete outcome of matching one resume against one job description.
type MatchResult struct {
	ID           uuid.UUID        `json:"id"`
	Score        float64          `json:"score"`         // TF-IDF cosine similarity in [0, 1]
	ScorePercent float64          `json:"score_percent"` // Score * 100, rounded to 2 decimals
	Profile      ExtractedProfile `json:"profile"`
	Gap          GapReport        `json:"gap"`
	ResumeSkills []string         `json:"resume_skills"`
	JobSkills    []string         `json:"job_skills"`
	Document     DocumentInfo     `json:"document"`
	AnalyzedAt   time.Time        `json:"analyzed_at"`
}
