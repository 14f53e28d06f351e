package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"careercraft/resume-generator/internal/config"
	"careercraft/resume-generator/internal/models"
)

type stubClient struct {
	output   string
	err      error
	requests []*models.GenerationRequest
}

func (s *stubClient) Generate(_ context.Context, req *models.GenerationRequest) (string, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return "", s.err
	}
	return s.output, nil
}

func newTestGenerator(t *testing.T, client GenerationClient) (GeneratorService, string) {
	t.Helper()

	promptsDir := t.TempDir()
	templates := map[string]string{
		TemplateOptimizeResume: "RESUME:\n{{resume_text}}\nJOB:\n{{job_description}}",
		TemplateCoverLetter:    "NAME: {{candidate_name}}\nRESUME:\n{{resume_text}}\nJOB:\n{{job_description}}",
		TemplateAtsScore:       "Score RESUME:\n{{resume_text}}\nagainst JOB:\n{{job_description}}",
	}
	for name, content := range templates {
		require.NoError(t, os.WriteFile(filepath.Join(promptsDir, name+".txt"), []byte(content), 0644))
	}

	exportsDir := t.TempDir()

	gen := NewGeneratorService(
		NewPromptService(promptsDir),
		client,
		NewExportService(exportsDir),
		config.GenerationConfig{DefaultTemperature: 0.7},
		"gemini-2.5-flash",
		zap.NewNop(),
	)

	return gen, exportsDir
}

func listExports(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestOptimizeResumeEndToEnd(t *testing.T) {
	client := &stubClient{output: "OPTIMIZED RESUME TEXT"}
	gen, exportsDir := newTestGenerator(t, client)

	artifact, err := gen.OptimizeResume(context.Background(), &models.GenerateParams{
		ResumeText:     "5 years Python backend",
		JobDescription: "Seeking Python backend engineer",
	})
	require.NoError(t, err)

	assert.Equal(t, "OPTIMIZED RESUME TEXT", artifact.Content)
	assert.NotEmpty(t, artifact.ID)
	assert.Empty(t, artifact.ExportError)

	exports := listExports(t, exportsDir)
	require.Len(t, exports, 1)

	data, err := os.ReadFile(artifact.ExportPath)
	require.NoError(t, err)
	assert.Equal(t, "OPTIMIZED RESUME TEXT", string(data))

	// The rendered prompt carries both normalized inputs.
	require.Len(t, client.requests, 1)
	req := client.requests[0]
	assert.Contains(t, req.Prompt, "5 years Python backend")
	assert.Contains(t, req.Prompt, "Seeking Python backend engineer")
	assert.Equal(t, "gemini-2.5-flash", req.Model)
	assert.InDelta(t, 0.7, req.Temperature, 0.001)
}

func TestGenerateParamsOverrideDefaults(t *testing.T) {
	client := &stubClient{output: "out"}
	gen, _ := newTestGenerator(t, client)

	temperature := float32(0.2)
	_, err := gen.OptimizeResume(context.Background(), &models.GenerateParams{
		ResumeText:      "R",
		JobDescription:  "J",
		Model:           "gemini-2.5-pro",
		Temperature:     &temperature,
		MaxOutputTokens: 2048,
	})
	require.NoError(t, err)

	req := client.requests[0]
	assert.Equal(t, "gemini-2.5-pro", req.Model)
	assert.InDelta(t, 0.2, req.Temperature, 0.001)
	assert.Equal(t, int32(2048), req.MaxOutputTokens)
}

func TestCoverLetterDefaultsCandidateName(t *testing.T) {
	client := &stubClient{output: "letter"}
	gen, _ := newTestGenerator(t, client)

	_, err := gen.CoverLetter(context.Background(), &models.GenerateParams{
		ResumeText:     "R",
		JobDescription: "J",
	})
	require.NoError(t, err)
	assert.Contains(t, client.requests[0].Prompt, "NAME: Your Name")

	_, err = gen.CoverLetter(context.Background(), &models.GenerateParams{
		ResumeText:     "R",
		JobDescription: "J",
		CandidateName:  "Dana Smith",
	})
	require.NoError(t, err)
	assert.Contains(t, client.requests[1].Prompt, "NAME: Dana Smith")
}

func TestATSScoreParsedOutcome(t *testing.T) {
	client := &stubClient{output: `{"score": 81, "strengths": ["Go"], "gaps": ["SQL"]}`}
	gen, exportsDir := newTestGenerator(t, client)

	outcome, err := gen.ATSScore(context.Background(), &models.GenerateParams{
		ResumeText:     "R",
		JobDescription: "J",
	})
	require.NoError(t, err)

	assert.True(t, outcome.Parsed)
	require.NotNil(t, outcome.Result)
	assert.Equal(t, 81.0, outcome.Result.Score)
	assert.Equal(t, []string{"Go"}, outcome.Result.Strengths)
	assert.Empty(t, outcome.RawText)

	exports := listExports(t, exportsDir)
	require.Len(t, exports, 1)
	assert.True(t, strings.HasSuffix(exports[0], ".json"))
}

func TestATSScoreUnparsableOutcomeIsNotAnError(t *testing.T) {
	client := &stubClient{output: "I cannot answer in JSON, sorry."}
	gen, exportsDir := newTestGenerator(t, client)

	outcome, err := gen.ATSScore(context.Background(), &models.GenerateParams{
		ResumeText:     "R",
		JobDescription: "J",
	})
	require.NoError(t, err)

	assert.False(t, outcome.Parsed)
	assert.Nil(t, outcome.Result)
	assert.Equal(t, "I cannot answer in JSON, sorry.", outcome.RawText)

	// The raw text is still exported for the user.
	exports := listExports(t, exportsDir)
	require.Len(t, exports, 1)
	assert.True(t, strings.HasSuffix(exports[0], ".txt"))
}

func TestGenerationFailurePropagates(t *testing.T) {
	client := &stubClient{err: &GenerationError{Attempts: 3, Err: assert.AnError}}
	gen, exportsDir := newTestGenerator(t, client)

	_, err := gen.OptimizeResume(context.Background(), &models.GenerateParams{
		ResumeText:     "R",
		JobDescription: "J",
	})
	require.Error(t, err)

	var genErr *GenerationError
	assert.ErrorAs(t, err, &genErr)

	// Nothing is exported for a failed generation.
	assert.Empty(t, listExports(t, exportsDir))
}

func TestIndependentInvocationsDoNotInterfere(t *testing.T) {
	client := &stubClient{output: "ok"}
	gen, exportsDir := newTestGenerator(t, client)

	first, err := gen.OptimizeResume(context.Background(), &models.GenerateParams{
		ResumeText:     "R",
		JobDescription: "J",
	})
	require.NoError(t, err)

	// A later failing action leaves the earlier artifact untouched.
	client.err = &GenerationError{Attempts: 3, Err: assert.AnError}
	_, err = gen.CoverLetter(context.Background(), &models.GenerateParams{
		ResumeText:     "R",
		JobDescription: "J",
	})
	require.Error(t, err)

	data, err := os.ReadFile(first.ExportPath)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(data))
	assert.Len(t, listExports(t, exportsDir), 1)
}
