package services

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"careercraft/resume-generator/internal/models"
)

func newTestExtractor() DocumentExtractor {
	return NewDocumentExtractor(zap.NewNop())
}

// buildDocx assembles a minimal DOCX container with the given paragraphs.
func buildDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)

	var doc bytes.Buffer
	doc.WriteString(`<?xml version="1.0"?><w:document><w:body>`)
	for _, p := range paragraphs {
		doc.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}
	doc.WriteString(`</w:body></w:document>`)

	_, err = w.Write(doc.Bytes())
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	return buf.Bytes()
}

func TestExtractTxt(t *testing.T) {
	e := newTestExtractor()

	text, format := e.Extract([]byte("  5 years Python backend  \n"), "resume.txt")
	assert.Equal(t, "5 years Python backend", text)
	assert.Equal(t, models.FormatTXT, format)
}

func TestExtractTxtInvalidUTF8(t *testing.T) {
	e := newTestExtractor()

	text, format := e.Extract([]byte{'o', 'k', 0xff, 0xfe, '!'}, "resume.TXT")
	assert.Equal(t, models.FormatTXT, format)
	assert.Contains(t, text, "ok")
	assert.Contains(t, text, "!")
}

func TestExtractUnknownExtension(t *testing.T) {
	e := newTestExtractor()

	text, format := e.Extract([]byte("plain content"), "resume.rtf")
	assert.Equal(t, "plain content", text)
	assert.Equal(t, models.FormatUnknown, format)
}

func TestExtractDocx(t *testing.T) {
	e := newTestExtractor()
	data := buildDocx(t, "First paragraph", "Second paragraph")

	text, format := e.Extract(data, "resume.docx")
	assert.Equal(t, models.FormatDOCX, format)
	assert.Contains(t, text, "First paragraph")
	assert.Contains(t, text, "Second paragraph")
	// Paragraph order must survive extraction.
	assert.Less(t,
		bytes.Index([]byte(text), []byte("First paragraph")),
		bytes.Index([]byte(text), []byte("Second paragraph")),
	)
}

func TestExtractMalformedDocxFallsBack(t *testing.T) {
	e := newTestExtractor()

	text, format := e.Extract([]byte("not a zip archive at all"), "broken.docx")
	// Format tag reflects the declared type even when extraction fell back.
	assert.Equal(t, models.FormatDOCX, format)
	assert.Equal(t, "not a zip archive at all", text)
}

func TestExtractDocxWithoutDocumentXMLFallsBack(t *testing.T) {
	e := newTestExtractor()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/other.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte("<x/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, format := e.Extract(buf.Bytes(), "odd.docx")
	assert.Equal(t, models.FormatDOCX, format)
}

func TestExtractMalformedPdfFallsBack(t *testing.T) {
	e := newTestExtractor()

	text, format := e.Extract([]byte("%PDF-1.4 truncated garbage"), "broken.pdf")
	assert.Equal(t, models.FormatPDF, format)
	assert.Equal(t, "%PDF-1.4 truncated garbage", text)
}

func TestExtractNeverPanics(t *testing.T) {
	e := newTestExtractor()

	inputs := [][]byte{nil, {}, {0x00}, []byte("%PDF-"), bytes.Repeat([]byte{0xde, 0xad}, 512)}
	names := []string{"a.pdf", "b.docx", "c.txt", "d"}

	for _, data := range inputs {
		for _, name := range names {
			assert.NotPanics(t, func() {
				e.Extract(data, name)
			})
		}
	}
}
