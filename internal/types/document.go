// Package types provides type definitions for structured data used throughout the resume-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"path/filepath"
	"strings"
)

// Format identifies the container format of an uploaded resume.
type Format string

const (
	// FormatPDF is a Portable Document Format file.
	FormatPDF Format = "pdf"
	// FormatDOCX is an Office Open XML word-processing document.
	FormatDOCX Format = "docx"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// SupportedFormats lists every format the text extractor accepts.
func SupportedFormats() []Format {
	return []Format{FormatPDF, FormatDOCX}
}

// IsSupported reports whether the format is one the text extractor accepts.
func (f Format) IsSupported() bool {
	switch f {
	case FormatPDF, FormatDOCX:
		return true
	default:
		return false
	}
}

// MIMEType returns the canonical MIME type for the format, or "" if unknown.
func (f Format) MIMEType() string {
	switch f {
	case FormatPDF:
		return mimePDF
	case FormatDOCX:
		return mimeDOCX
	default:
		return ""
	}
}

// ParseFormat normalizes a user-supplied format tag ("PDF", ".docx", " pdf ").
// The result is returned even when unsupported so callers can report it.
func ParseFormat(tag string) Format {
	tag = strings.ToLower(strings.TrimSpace(tag))
	return Format(strings.TrimPrefix(tag, "."))
}

// FormatFromFilename derives the format from a file name extension.
func FormatFromFilename(name string) Format {
	return ParseFormat(filepath.Ext(name))
}

// FormatFromMIME derives the format from a MIME type, ignoring parameters.
func FormatFromMIME(mime string) Format {
	mime = strings.ToLower(strings.TrimSpace(mime))
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	switch mime {
	case mimePDF:
		return FormatPDF
	case mimeDOCX:
		return FormatDOCX
	default:
		return Format(mime)
	}
}

// RawDocument is an uploaded resume: its bytes plus the declared format.
// It is owned by the caller and never modified by the extractor.
type RawDocument struct {
	Content []byte
	Format  Format
}
