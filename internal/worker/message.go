// Package worker consumes analysis requests from an AMQP queue, downloads the
// resume from object storage, runs the matcher and publishes the outcome.
package worker

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-matcher/internal/types"
)

// Response statuses.
const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// AnalysisRequest is one queued analysis job.
type AnalysisRequest struct {
	ID             string `json:"id" validate:"required"`
	JobDescription string `json:"job_description" validate:"required"`
	ObjectKey      string `json:"object_key" validate:"required"`
	Format         string `json:"format,omitempty"`
	MIME           string `json:"mime,omitempty"`
}

// DocumentFormat resolves the resume format from the explicit format, then
// the MIME type, then the object key's extension.
func (r AnalysisRequest) DocumentFormat() types.Format {
	switch {
	case r.Format != "":
		return types.ParseFormat(r.Format)
	case r.MIME != "":
		return types.FormatFromMIME(r.MIME)
	default:
		return types.FormatFromFilename(r.ObjectKey)
	}
}

var validate = validator.New()

// Validate checks that the required fields are present.
func (r AnalysisRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid analysis request: %w", err)
	}
	return nil
}

// AnalysisResponse reports progress or the outcome of an AnalysisRequest.
type AnalysisResponse struct {
	ID        string             `json:"id"`
	Status    string             `json:"status"`
	Result    *types.MatchResult `json:"result,omitempty"`
	Error     string             `json:"error,omitempty"`
	ErrorCode string             `json:"error_code,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
}

// RoutingKey is the topic routing key responses for id are published under.
func RoutingKey(id string) string {
	return "analysis." + id
}
