package logger

import (
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/types"
)

// Structured log field keys shared across packages.
const (
	FieldResultID = "result_id"
	FieldFormat   = "format"
	FieldHash     = "hash"
	FieldScore    = "score"
	FieldMatched  = "matched"
	FieldMissing  = "missing"
	FieldSource   = "source"
)

// WithFields safely attaches the provided fields to the logger.
// A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// DocumentFields describes a resume document by format and size.
func DocumentFields(doc types.RawDocument) []zap.Field {
	return []zap.Field{
		zap.String(FieldFormat, string(doc.Format)),
		zap.Int("bytes", len(doc.Content)),
	}
}

// ResultFields summarizes a match result. A nil result yields no fields.
func ResultFields(result *types.MatchResult) []zap.Field {
	if result == nil {
		return nil
	}
	return []zap.Field{
		zap.String(FieldResultID, result.ID.String()),
		zap.String(FieldFormat, string(result.Document.Format)),
		zap.Float64(FieldScore, result.Score),
		zap.Int(FieldMatched, len(result.Gap.Matched)),
		zap.Int(FieldMissing, len(result.Gap.Missing)),
	}
}
