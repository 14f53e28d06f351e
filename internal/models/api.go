package models

type ExtractResponse struct {
	Text   string `json:"text"`
	Format string `json:"format"`
}

type OptimizeResumeRequest struct {
	ResumeText      string   `json:"resume_text" validate:"required"`
	JobDescription  string   `json:"job_description" validate:"required"`
	Model           string   `json:"model"`
	Temperature     *float32 `json:"temperature" validate:"omitempty,gte=0,lte=1.2"`
	MaxOutputTokens int32    `json:"max_output_tokens" validate:"gte=0"`
}

type CoverLetterRequest struct {
	ResumeText      string   `json:"resume_text" validate:"required"`
	JobDescription  string   `json:"job_description" validate:"required"`
	CandidateName   string   `json:"candidate_name"`
	Model           string   `json:"model"`
	Temperature     *float32 `json:"temperature" validate:"omitempty,gte=0,lte=1.2"`
	MaxOutputTokens int32    `json:"max_output_tokens" validate:"gte=0"`
}

type AtsScoreRequest struct {
	ResumeText      string   `json:"resume_text" validate:"required"`
	JobDescription  string   `json:"job_description" validate:"required"`
	Model           string   `json:"model"`
	Temperature     *float32 `json:"temperature" validate:"omitempty,gte=0,lte=1.2"`
	MaxOutputTokens int32    `json:"max_output_tokens" validate:"gte=0"`
}
