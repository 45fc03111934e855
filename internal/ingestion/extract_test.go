package ingestion

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jonathan/resume-matcher/internal/types"
)

func TestExtract_DOCX(t *testing.T) {
	data := createTestDOCX(t,
		"Jane   Doe",
		"Email: jane.doe@example.com",
		"Skills: Python, Java",
	)

	text, metadata, err := NewExtractor(nil).ExtractWithMetadata(types.RawDocument{Content: data, Format: types.FormatDOCX})
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe\nEmail: jane.doe@example.com\nSkills: Python, Java", text)
	assert.Equal(t, types.FormatDOCX, metadata.Format)
	assert.Equal(t, 3, metadata.Sections)
	assert.Len(t, metadata.Hash, 64)
	assert.Equal(t, len([]rune(text)), metadata.Characters)
}

func TestExtract_DOCX_TabsAndBreaks(t *testing.T) {
	body := `<w:p><w:r><w:t>Skills</w:t><w:tab/><w:t>Go</w:t><w:br/><w:t>Docker</w:t></w:r></w:p>` +
		`<w:p></w:p>` +
		`<w:p><w:r><w:t>Bachelor of Science</w:t></w:r><w:r><w:t xml:space="preserve">, State University</w:t></w:r></w:p>`
	data := createTestDOCXWithBody(t, body)

	text, err := NewExtractor(nil).Extract(types.RawDocument{Content: data, Format: types.FormatDOCX})
	require.NoError(t, err)

	assert.Equal(t, "Skills Go\nDocker\nBachelor of Science, State University", text)
}

func TestExtract_DOCX_TextBox(t *testing.T) {
	sidebar := `<w:txbxContent><w:p><w:r><w:t>Sidebar: Docker</w:t></w:r></w:p></w:txbxContent>`
	body := `<w:p><w:r><w:t xml:space="preserve">Jane Doe, Python developer </w:t></w:r>` +
		`<w:r><mc:AlternateContent xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006">` +
		`<mc:Choice Requires="wps"><w:drawing>` + sidebar + `</w:drawing></mc:Choice>` +
		`<mc:Fallback><w:pict>` + sidebar + `</w:pict></mc:Fallback>` +
		`</mc:AlternateContent></w:r>` +
		`<w:r><w:t>and Kubernetes engineer</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Skills: SQL</w:t></w:r></w:p>`
	data := createTestDOCXWithBody(t, body)

	text, metadata, err := NewExtractor(nil).ExtractWithMetadata(types.RawDocument{Content: data, Format: types.FormatDOCX})
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe, Python developer and Kubernetes engineer\nSidebar: Docker\nSkills: SQL", text)
	assert.Equal(t, 3, metadata.Sections)
}

func TestExtract_DOCX_Empty(t *testing.T) {
	data := createTestDOCX(t)

	_, err := NewExtractor(nil).Extract(types.RawDocument{Content: data, Format: types.FormatDOCX})
	require.Error(t, err)

	var emptyErr *EmptyDocumentError
	require.ErrorAs(t, err, &emptyErr)
	assert.Equal(t, types.FormatDOCX, emptyErr.Format)
	assert.True(t, IsDocumentError(err))
}

func TestExtract_DOCX_WhitespaceOnly(t *testing.T) {
	data := createTestDOCX(t, "   ", "\t")

	_, err := NewExtractor(nil).Extract(types.RawDocument{Content: data, Format: types.FormatDOCX})

	var emptyErr *EmptyDocumentError
	assert.ErrorAs(t, err, &emptyErr)
}

func TestExtract_DOCX_NotAZip(t *testing.T) {
	_, err := NewExtractor(nil).Extract(types.RawDocument{Content: []byte("this is not a zip archive"), Format: types.FormatDOCX})
	require.Error(t, err)

	var corruptErr *CorruptDocumentError
	require.ErrorAs(t, err, &corruptErr)
	assert.Equal(t, types.FormatDOCX, corruptErr.Format)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestExtract_DOCX_MalformedXML(t *testing.T) {
	data := createTestDOCXWithBody(t, `<w:p><w:r><w:t>unterminated`)

	_, err := NewExtractor(nil).Extract(types.RawDocument{Content: data, Format: types.FormatDOCX})

	var corruptErr *CorruptDocumentError
	require.ErrorAs(t, err, &corruptErr)
	assert.Contains(t, corruptErr.Reason, "document.xml")
}

func TestExtract_PDF(t *testing.T) {
	data := createTestPDF(t, "Jane Doe", "Python developer")

	text, metadata, err := NewExtractor(nil).ExtractWithMetadata(types.RawDocument{Content: data, Format: types.FormatPDF})
	require.NoError(t, err)

	assert.Contains(t, text, "Jane Doe")
	assert.Contains(t, text, "Python developer")
	assert.Equal(t, 1, metadata.Sections)
	assert.Equal(t, types.FormatPDF, metadata.Format)
}

func TestExtract_PDF_NoText(t *testing.T) {
	data := createTestPDF(t)

	_, err := NewExtractor(nil).Extract(types.RawDocument{Content: data, Format: types.FormatPDF})

	var emptyErr *EmptyDocumentError
	assert.ErrorAs(t, err, &emptyErr)
}

func TestExtract_PDF_Garbage(t *testing.T) {
	_, err := NewExtractor(nil).Extract(types.RawDocument{Content: []byte("%PDF-1.4 garbage without structure"), Format: types.FormatPDF})

	var corruptErr *CorruptDocumentError
	require.ErrorAs(t, err, &corruptErr)
	assert.Equal(t, types.FormatPDF, corruptErr.Format)
}

func TestExtract_EmptyBytes(t *testing.T) {
	for _, format := range types.SupportedFormats() {
		t.Run(string(format), func(t *testing.T) {
			text, err := NewExtractor(nil).Extract(types.RawDocument{Content: nil, Format: format})
			require.Error(t, err)
			assert.Empty(t, text)

			var corruptErr *CorruptDocumentError
			assert.ErrorAs(t, err, &corruptErr)
		})
	}
}

func TestExtract_UnsupportedFormat(t *testing.T) {
	_, err := NewExtractor(nil).Extract(types.RawDocument{Content: []byte("hello"), Format: "txt"})
	require.Error(t, err)

	var unsupported *UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, types.Format("txt"), unsupported.Format)
	assert.Contains(t, err.Error(), "txt")
	assert.True(t, IsDocumentError(err))
}

func TestExtract_LogsFailures(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	extractor := NewExtractor(zap.New(core))

	_, err := extractor.Extract(types.RawDocument{Content: []byte("garbage"), Format: types.FormatDOCX})
	require.Error(t, err)

	entries := logs.FilterMessage("document extraction failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "docx", entries[0].ContextMap()["format"])
}

func TestIsDocumentError_Other(t *testing.T) {
	assert.False(t, IsDocumentError(errors.New("boom")))
	assert.False(t, IsDocumentError(nil))
}
