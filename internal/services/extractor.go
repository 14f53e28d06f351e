package services

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"careercraft/resume-generator/internal/models"
)

type DocumentExtractor interface {
	// Extract pulls best-effort plain text out of raw document bytes. It never
	// fails: when the structured parse of a PDF or DOCX breaks, the raw bytes
	// are decoded permissively instead. The format tag reflects the declared
	// filename extension regardless of extraction success.
	Extract(data []byte, filename string) (string, models.DocumentFormat)
}

type documentExtractor struct {
	logger *zap.Logger
}

func NewDocumentExtractor(logger *zap.Logger) DocumentExtractor {
	return &documentExtractor{logger: logger}
}

func (e *documentExtractor) Extract(data []byte, filename string) (string, models.DocumentFormat) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".txt":
		return decodePermissive(data), models.FormatTXT
	case ".pdf":
		text, err := extractPDF(data)
		if err != nil {
			e.logger.Warn("pdf extraction failed, falling back to raw decode",
				zap.String("filename", filename), zap.Error(err))
			return decodePermissive(data), models.FormatPDF
		}
		return strings.TrimSpace(text), models.FormatPDF
	case ".docx":
		text, err := extractDOCX(data)
		if err != nil {
			e.logger.Warn("docx extraction failed, falling back to raw decode",
				zap.String("filename", filename), zap.Error(err))
			return decodePermissive(data), models.FormatDOCX
		}
		return strings.TrimSpace(text), models.FormatDOCX
	default:
		return decodePermissive(data), models.FormatUnknown
	}
}

// decodePermissive interprets bytes as UTF-8, replacing invalid sequences.
func decodePermissive(data []byte) string {
	return strings.TrimSpace(strings.ToValidUTF8(string(data), "�"))
}

// extractPDF extracts text page by page in page order. Pages that fail to
// render are skipped rather than aborting the document. The pdf library can
// panic on malformed cross-reference tables, so the whole pass is recovered.
func extractPDF(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		if textBuilder.Len() > 0 {
			textBuilder.WriteString("\n")
		}
		textBuilder.WriteString(pageText)
	}

	return textBuilder.String(), nil
}

var docxTags = regexp.MustCompile(`<[^>]+>`)

// extractDOCX reads word/document.xml out of the zip container and strips the
// markup, turning paragraph boundaries into newlines.
func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX container: %w", err)
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				return "", fmt.Errorf("failed to open document.xml: %w", err)
			}
			docXML, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return "", fmt.Errorf("failed to read document.xml: %w", err)
			}
			break
		}
	}

	if len(docXML) == 0 {
		return "", fmt.Errorf("no document.xml found in DOCX")
	}

	xml := string(docXML)
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
	return docxTags.ReplaceAllString(xml, " "), nil
}
