package matching

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-matcher/internal/nlp"
	"github.com/jonathan/resume-matcher/internal/types"
)

// DefaultConcurrency bounds AnalyzeBatch when no limit is given.
const DefaultConcurrency = 4

// BatchItem is one resume in a batch run.
type BatchItem struct {
	Name     string
	Document types.RawDocument
}

// BatchResult is the outcome for one BatchItem. Exactly one of Result and Err is set.
type BatchResult struct {
	Name   string             `json:"name"`
	Result *types.MatchResult `json:"result,omitempty"`
	Err    error              `json:"-"`
	Error  string             `json:"error,omitempty"`
}

// AnalyzeBatch analyzes many resumes against one job description, at most
// concurrency at a time. Results are returned in input order. Per-document
// failures are recorded on their BatchResult; a model failure or context
// cancellation stops the batch and is returned.
func (m *Matcher) AnalyzeBatch(ctx context.Context, items []BatchItem, jobDescription string, concurrency int) ([]BatchResult, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]BatchResult, len(items))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, item := range items {
		g.Go(func() error {
			result, err := m.AnalyzeMatch(ctx, item.Document, jobDescription)
			var modelErr *nlp.ModelUnavailableError
			switch {
			case errors.As(err, &modelErr):
				return err
			case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
				return err
			}

			results[i] = BatchResult{Name: item.Name, Result: result, Err: err}
			if err != nil {
				results[i].Error = err.Error()
				m.logger.Warn("batch item failed", zap.String("name", item.Name), zap.Error(err))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
