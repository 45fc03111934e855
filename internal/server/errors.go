package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/nlp"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrPayloadTooLarge indicates the request body exceeded the upload limit
type ErrPayloadTooLarge struct {
	Limit int64
}

func (e *ErrPayloadTooLarge) Error() string {
	return fmt.Sprintf("request body exceeds %d bytes", e.Limit)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		unsupported *ingestion.UnsupportedFormatError
		corrupt     *ingestion.CorruptDocumentError
		empty       *ingestion.EmptyDocumentError
		model       *nlp.ModelUnavailableError
		validation  *ErrValidation
		tooLarge    *ErrPayloadTooLarge
	)
	switch {
	case errors.As(err, &unsupported):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &corrupt), errors.As(err, &empty):
		return http.StatusUnprocessableEntity
	case errors.As(err, &model):
		return http.StatusServiceUnavailable
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// ErrorCode returns the machine-readable code reported alongside an error message.
func ErrorCode(err error) string {
	var (
		unsupported *ingestion.UnsupportedFormatError
		corrupt     *ingestion.CorruptDocumentError
		empty       *ingestion.EmptyDocumentError
		model       *nlp.ModelUnavailableError
		validation  *ErrValidation
		tooLarge    *ErrPayloadTooLarge
	)
	switch {
	case errors.As(err, &unsupported):
		return "unsupported_format"
	case errors.As(err, &corrupt):
		return "corrupt_document"
	case errors.As(err, &empty):
		return "empty_document"
	case errors.As(err, &model):
		return "model_unavailable"
	case errors.As(err, &validation):
		return "invalid_request"
	case errors.As(err, &tooLarge):
		return "payload_too_large"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "internal_error"
	}
}
