package ingestion

import (
	"errors"
	"fmt"

	"github.com/jonathan/resume-matcher/internal/types"
)

// UnsupportedFormatError is returned when a document declares a format the extractor does not handle
type UnsupportedFormatError struct {
	Format types.Format
}

func (e *UnsupportedFormatError) Error() string {
	if e.Format == "" {
		return "unsupported document format: (none)"
	}
	return fmt.Sprintf("unsupported document format: %s", e.Format)
}

// CorruptDocumentError is returned when bytes cannot be parsed as the declared format
type CorruptDocumentError struct {
	Format types.Format
	Reason string
	Cause  error
}

func (e *CorruptDocumentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("corrupt %s document: %s: %v", e.Format, e.Reason, e.Cause)
	}
	return fmt.Sprintf("corrupt %s document: %s", e.Format, e.Reason)
}

func (e *CorruptDocumentError) Unwrap() error {
	return e.Cause
}

// EmptyDocumentError is returned when a document parses but contains no extractable text
type EmptyDocumentError struct {
	Format types.Format
}

func (e *EmptyDocumentError) Error() string {
	return fmt.Sprintf("no extractable text in %s document", e.Format)
}

// IsDocumentError reports whether err is one of the per-request document errors.
func IsDocumentError(err error) bool {
	var unsupported *UnsupportedFormatError
	var corrupt *CorruptDocumentError
	var empty *EmptyDocumentError
	return errors.As(err, &unsupported) || errors.As(err, &corrupt) || errors.As(err, &empty)
}
