package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/nlp"
	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	// DefaultAttempts bounds resume download attempts.
	DefaultAttempts = 3
	// DefaultBackoff is the base delay between download attempts.
	DefaultBackoff = 500 * time.Millisecond
)

// Analyzer runs a full resume analysis.
type Analyzer interface {
	AnalyzeMatch(ctx context.Context, doc types.RawDocument, jobDescription string) (*types.MatchResult, error)
}

// Worker processes analysis requests.
type Worker struct {
	matcher   Analyzer
	store     ObjectStore
	publisher Publisher
	logger    *zap.Logger
	attempts  int
	backoff   time.Duration
	now       func() time.Time
}

// Option configures a Worker.
type Option func(*Worker)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(w *Worker) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithRetry sets the download attempts and base backoff.
func WithRetry(attempts int, backoff time.Duration) Option {
	return func(w *Worker) {
		w.attempts = max(1, attempts)
		w.backoff = backoff
	}
}

// WithClock replaces the clock used for response timestamps.
func WithClock(now func() time.Time) Option {
	return func(w *Worker) { w.now = now }
}

// New creates a Worker.
func New(matcher Analyzer, store ObjectStore, publisher Publisher, opts ...Option) *Worker {
	w := &Worker{
		matcher:   matcher,
		store:     store,
		publisher: publisher,
		logger:    zap.NewNop(),
		attempts:  DefaultAttempts,
		backoff:   DefaultBackoff,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run starts consumer goroutines reading from deliveries. It returns when
// deliveries is closed, ctx is done, or a consumer hits a fatal error.
func (w *Worker) Run(ctx context.Context, deliveries <-chan amqp.Delivery, consumers int) error {
	g, ctx := errgroup.WithContext(ctx)
	for i := range max(1, consumers) {
		g.Go(func() error {
			w.logger.Info("consumer started", zap.Int("consumer", i+1))
			for {
				select {
				case <-ctx.Done():
					return nil
				case d, ok := <-deliveries:
					if !ok {
						return nil
					}
					if err := w.Handle(ctx, d); err != nil {
						return err
					}
				}
			}
		})
	}
	return g.Wait()
}

// Handle processes one delivery and acknowledges it. Only a model failure or
// context cancellation is returned; every other failure is reported on the
// results exchange.
func (w *Worker) Handle(ctx context.Context, d amqp.Delivery) error {
	var req AnalysisRequest
	if err := json.Unmarshal(d.Body, &req); err != nil {
		w.logger.Warn("malformed analysis request", zap.Error(err))
		w.fail(ctx, req.ID, fmt.Errorf("malformed request: %w", err), "invalid_request")
		w.settle(d, false, false)
		return nil
	}
	if err := req.Validate(); err != nil {
		w.logger.Warn("invalid analysis request", zap.String("id", req.ID), zap.Error(err))
		w.fail(ctx, req.ID, err, "invalid_request")
		w.settle(d, false, false)
		return nil
	}

	log := logger.WithFields(w.logger, zap.String("id", req.ID), zap.String("object_key", req.ObjectKey))
	log.Debug("analysis request received",
		zap.String("format", string(req.DocumentFormat())),
		zap.String("job_description", logger.TruncateForLog(req.JobDescription, 120)))
	_ = w.publish(ctx, AnalysisResponse{ID: req.ID, Status: StatusProcessing})

	content, err := retry(ctx, w.attempts, w.backoff, func() ([]byte, error) {
		data, err := w.store.Get(ctx, req.ObjectKey)
		if errors.Is(err, ErrObjectNotFound) {
			return nil, Permanent(err)
		}
		return data, err
	})
	if err != nil {
		if ctx.Err() != nil {
			w.settle(d, false, true)
			return ctx.Err()
		}
		log.Warn("resume download failed", zap.Error(err))
		w.fail(ctx, req.ID, fmt.Errorf("file download error: %w", err), "download_failed")
		// Transient failures get one more delivery.
		w.settle(d, false, !d.Redelivered && !errors.Is(err, ErrObjectNotFound))
		return nil
	}

	doc := types.RawDocument{Content: content, Format: req.DocumentFormat()}
	result, err := w.matcher.AnalyzeMatch(ctx, doc, req.JobDescription)
	if err != nil {
		var modelErr *nlp.ModelUnavailableError
		switch {
		case errors.As(err, &modelErr):
			log.Error("language model unavailable, stopping", zap.Error(err))
			w.settle(d, false, true)
			return err
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			w.settle(d, false, true)
			return err
		}

		log.Warn("analysis failed", zap.Error(err))
		w.fail(ctx, req.ID, err, errorCode(err))
		w.settle(d, true, false)
		return nil
	}

	if err := w.publish(ctx, AnalysisResponse{ID: req.ID, Status: StatusCompleted, Result: result}); err != nil {
		w.settle(d, false, true)
		return nil
	}
	log.Info("analysis published", zap.Float64("score", result.Score))
	w.settle(d, true, false)
	return nil
}

func (w *Worker) fail(ctx context.Context, id string, err error, code string) {
	_ = w.publish(ctx, AnalysisResponse{ID: id, Status: StatusFailed, Error: err.Error(), ErrorCode: code})
}

func (w *Worker) publish(ctx context.Context, resp AnalysisResponse) error {
	resp.Timestamp = w.now().UTC()
	body, err := json.Marshal(resp)
	if err != nil {
		w.logger.Error("failed to encode response", zap.String("id", resp.ID), zap.Error(err))
		return err
	}
	if err := w.publisher.Publish(ctx, RoutingKey(resp.ID), body); err != nil {
		w.logger.Error("failed to publish response",
			zap.String("id", resp.ID), zap.String("status", resp.Status), zap.Error(err))
		return err
	}
	return nil
}

// settle acks or nacks the delivery, logging acknowledgement failures.
func (w *Worker) settle(d amqp.Delivery, ack, requeue bool) {
	var err error
	if ack {
		err = d.Ack(false)
	} else {
		err = d.Nack(false, requeue)
	}
	if err != nil {
		w.logger.Warn("failed to settle delivery", zap.Uint64("tag", d.DeliveryTag), zap.Error(err))
	}
}

func errorCode(err error) string {
	var (
		unsupported *ingestion.UnsupportedFormatError
		corrupt     *ingestion.CorruptDocumentError
		empty       *ingestion.EmptyDocumentError
	)
	switch {
	case errors.As(err, &unsupported):
		return "unsupported_format"
	case errors.As(err, &corrupt):
		return "corrupt_document"
	case errors.As(err, &empty):
		return "empty_document"
	default:
		return "internal_error"
	}
}
