package models

// DocumentFormat tags the declared type of an uploaded document. The tag
// reflects the filename extension, not whether structured extraction succeeded.
type DocumentFormat string

const (
	FormatTXT     DocumentFormat = "txt"
	FormatPDF     DocumentFormat = "pdf"
	FormatDOCX    DocumentFormat = "docx"
	FormatUnknown DocumentFormat = "unknown"
)

// ExtractedDocument is the best-effort plain text pulled out of an upload.
// Text is always populated, even when the structured parse failed and the
// extractor fell back to a permissive raw decode.
type ExtractedDocument struct {
	Text   string         `json:"text"`
	Format DocumentFormat `json:"format"`
}
