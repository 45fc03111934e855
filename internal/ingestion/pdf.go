package ingestion

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/jonathan/resume-matcher/internal/types"
)

// extractPDFText returns the raw text of every non-null page and the page count.
// The PDF reader panics on some malformed streams; those panics become CorruptDocumentError.
func extractPDFText(data []byte) (text string, pages int, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, pages = "", 0
			err = &CorruptDocumentError{
				Format: types.FormatPDF,
				Reason: "malformed PDF stream",
				Cause:  fmt.Errorf("%v", r),
			}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, &CorruptDocumentError{Format: types.FormatPDF, Reason: "failed to read PDF", Cause: err}
	}

	var sb strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", 0, &CorruptDocumentError{
				Format: types.FormatPDF,
				Reason: fmt.Sprintf("failed to read page %d", i),
				Cause:  err,
			}
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}

	return sb.String(), numPages, nil
}
