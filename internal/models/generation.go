package models

// Temperature bounds accepted by the generation client.
const (
	MinTemperature float32 = 0.0
	MaxTemperature float32 = 1.2
)

// GenerationRequest is a single-turn request to the remote generation
// capability. A fresh request is built per invocation and never reused.
type GenerationRequest struct {
	SystemInstruction string
	Prompt            string
	Model             string
	Temperature       float32
	// MaxOutputTokens of 0 lets the remote capability pick its default.
	MaxOutputTokens int32
}

// AtsScoreResult is the structured form of an ATS scoring response. Any field
// the model omits stays at its zero value; the producer does not enforce the
// 0-100 score range.
type AtsScoreResult struct {
	Score               float64  `json:"score"`
	Strengths           []string `json:"strengths,omitempty"`
	Gaps                []string `json:"gaps,omitempty"`
	MissingKeywords     []string `json:"missing_keywords,omitempty"`
	Recommendations     []string `json:"recommendations,omitempty"`
	RecommendedKeywords []string `json:"recommended_keywords,omitempty"`
	Summary             string   `json:"summary,omitempty"`
}

// GenerateParams carries the caller-supplied inputs for one pipeline action.
// Model, Temperature and MaxOutputTokens override config defaults when set.
type GenerateParams struct {
	ResumeText      string
	JobDescription  string
	CandidateName   string
	Model           string
	Temperature     *float32
	MaxOutputTokens int32
}

// Artifact is the outcome of a text-producing action. ExportError is non-empty
// when persisting the artifact failed; the content itself is still valid.
type Artifact struct {
	ID          string `json:"id"`
	Content     string `json:"content"`
	ExportPath  string `json:"export_path,omitempty"`
	ExportError string `json:"export_error,omitempty"`
}

// AtsOutcome is the outcome of the ATS scoring action. When Parsed is false
// the raw model output is surfaced verbatim in RawText and Result is nil.
type AtsOutcome struct {
	ID          string          `json:"id"`
	Parsed      bool            `json:"parsed"`
	Result      *AtsScoreResult `json:"result,omitempty"`
	RawText     string          `json:"raw_text,omitempty"`
	ExportPath  string          `json:"export_path,omitempty"`
	ExportError string          `json:"export_error,omitempty"`
}
