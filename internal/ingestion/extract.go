package ingestion

import (
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/types"
)

// Extractor converts raw resume documents into cleaned plain text.
// It holds no per-document state and is safe for concurrent use.
type Extractor struct {
	logger *zap.Logger
}

// NewExtractor creates an Extractor. A nil logger disables logging.
func NewExtractor(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger}
}

// Extract returns the cleaned text of the document.
func (e *Extractor) Extract(doc types.RawDocument) (string, error) {
	text, _, err := e.ExtractWithMetadata(doc)
	return text, err
}

// ExtractWithMetadata returns the cleaned text of the document along with its metadata.
// Errors are *UnsupportedFormatError, *CorruptDocumentError or *EmptyDocumentError.
func (e *Extractor) ExtractWithMetadata(doc types.RawDocument) (string, *Metadata, error) {
	if !doc.Format.IsSupported() {
		return "", nil, &UnsupportedFormatError{Format: doc.Format}
	}
	if len(doc.Content) == 0 {
		return "", nil, &CorruptDocumentError{Format: doc.Format, Reason: "empty byte stream"}
	}

	var (
		raw      string
		sections int
		err      error
	)
	switch doc.Format {
	case types.FormatPDF:
		raw, sections, err = extractPDFText(doc.Content)
	case types.FormatDOCX:
		raw, sections, err = extractDOCXText(doc.Content)
	}
	if err != nil {
		e.logger.Debug("document extraction failed",
			zap.String("format", string(doc.Format)),
			zap.Int("bytes", len(doc.Content)),
			zap.Error(err),
		)
		return "", nil, err
	}

	text := CleanText(raw)
	if text == "" {
		return "", nil, &EmptyDocumentError{Format: doc.Format}
	}

	metadata := NewMetadata(doc, text, sections)
	e.logger.Debug("document extracted",
		zap.String("format", string(doc.Format)),
		zap.Int("sections", sections),
		zap.Int("characters", metadata.Characters),
	)

	return text, metadata, nil
}
