package ingestion

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"

	"github.com/jonathan/resume-matcher/internal/types"
)

// extractDOCXText opens the archive, then walks word/document.xml so that each
// w:p paragraph becomes one line. Returns the text and the non-empty paragraph count.
func extractDOCXText(data []byte) (string, int, error) {
	archive, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, &CorruptDocumentError{Format: types.FormatDOCX, Reason: "failed to open DOCX archive", Cause: err}
	}
	defer func() { _ = archive.Close() }()

	paragraphs, err := parseDocumentXML(archive.Editable().GetContent())
	if err != nil {
		return "", 0, &CorruptDocumentError{Format: types.FormatDOCX, Reason: "malformed document.xml", Cause: err}
	}

	return strings.Join(paragraphs, "\n"), len(paragraphs), nil
}

// parseDocumentXML decodes WordprocessingML body content into paragraph strings.
// Only w:t text runs contribute text; w:tab and w:br become whitespace.
// Paragraphs nested in text boxes become their own lines, after the paragraph
// that anchors them. mc:Fallback copies of text boxes are skipped.
func parseDocumentXML(content string) ([]string, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))

	// slots holds one entry per w:p in start order; open is the stack of
	// unfinished paragraphs, innermost last.
	var slots []string
	var open []*paragraphBuilder
	inText := false

	write := func(s string) {
		if len(open) > 0 {
			open[len(open)-1].WriteString(s)
		}
	}

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "Fallback":
				if err := decoder.Skip(); err != nil {
					return nil, err
				}
			case "p":
				open = append(open, &paragraphBuilder{slot: len(slots)})
				slots = append(slots, "")
			case "t":
				inText = true
			case "tab":
				write("\t")
			case "br", "cr":
				write("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if len(open) == 0 {
					continue
				}
				current := open[len(open)-1]
				open = open[:len(open)-1]
				slots[current.slot] = strings.TrimSpace(current.String())
			}
		case xml.CharData:
			if inText {
				write(string(t))
			}
		}
	}

	paragraphs := make([]string, 0, len(slots))
	for _, text := range slots {
		if text != "" {
			paragraphs = append(paragraphs, text)
		}
	}
	return paragraphs, nil
}

type paragraphBuilder struct {
	strings.Builder
	slot int
}
