package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"careercraft/resume-generator/internal/config"
	"careercraft/resume-generator/internal/models"
)

// System instructions, one per generation task.
const (
	systemOptimizeResume = "You are an expert resume writer. You rewrite resumes to match a target job description without inventing experience."
	systemCoverLetter    = "You are an expert career coach. You write concise, specific cover letters grounded in the candidate's actual resume."
	systemAtsScore       = "You are an ATS compatibility analyst. You respond with a single JSON object and nothing else."
)

const defaultCandidateName = "Your Name"

type GeneratorService interface {
	OptimizeResume(ctx context.Context, params *models.GenerateParams) (*models.Artifact, error)
	CoverLetter(ctx context.Context, params *models.GenerateParams) (*models.Artifact, error)
	ATSScore(ctx context.Context, params *models.GenerateParams) (*models.AtsOutcome, error)
}

type generatorService struct {
	prompts  PromptService
	client   GenerationClient
	exporter ExportService
	cfg      config.GenerationConfig
	model    string
	logger   *zap.Logger
}

func NewGeneratorService(
	prompts PromptService,
	client GenerationClient,
	exporter ExportService,
	cfg config.GenerationConfig,
	defaultModel string,
	logger *zap.Logger,
) GeneratorService {
	return &generatorService{
		prompts:  prompts,
		client:   client,
		exporter: exporter,
		cfg:      cfg,
		model:    defaultModel,
		logger:   logger,
	}
}

func (g *generatorService) OptimizeResume(ctx context.Context, params *models.GenerateParams) (*models.Artifact, error) {
	id := uuid.NewString()
	output, err := g.generate(ctx, id, TemplateOptimizeResume, systemOptimizeResume, params, map[string]string{
		"resume_text":     NormalizePreserveParagraphs(params.ResumeText),
		"job_description": NormalizePreserveParagraphs(params.JobDescription),
	})
	if err != nil {
		return nil, err
	}

	return g.exportArtifact(id, output, "optimized_resume", ".txt"), nil
}

func (g *generatorService) CoverLetter(ctx context.Context, params *models.GenerateParams) (*models.Artifact, error) {
	name := strings.TrimSpace(params.CandidateName)
	if name == "" {
		name = defaultCandidateName
	}

	id := uuid.NewString()
	output, err := g.generate(ctx, id, TemplateCoverLetter, systemCoverLetter, params, map[string]string{
		"resume_text":     NormalizePreserveParagraphs(params.ResumeText),
		"job_description": NormalizePreserveParagraphs(params.JobDescription),
		"candidate_name":  name,
	})
	if err != nil {
		return nil, err
	}

	return g.exportArtifact(id, output, "cover_letter", ".txt"), nil
}

func (g *generatorService) ATSScore(ctx context.Context, params *models.GenerateParams) (*models.AtsOutcome, error) {
	id := uuid.NewString()
	output, err := g.generate(ctx, id, TemplateAtsScore, systemAtsScore, params, map[string]string{
		"resume_text":     NormalizePreserveParagraphs(params.ResumeText),
		"job_description": NormalizePreserveParagraphs(params.JobDescription),
	})
	if err != nil {
		return nil, err
	}

	outcome := &models.AtsOutcome{ID: id}

	result, err := InterpretAtsResult(output)
	if err != nil {
		// Not a pipeline failure: the raw text is shown to the user as-is.
		g.logger.Warn("ats response is not parseable JSON, surfacing raw text",
			zap.String("generation_id", id))
		outcome.RawText = output

		artifact := g.exportArtifact(id, output, "ats_score", ".txt")
		outcome.ExportPath = artifact.ExportPath
		outcome.ExportError = artifact.ExportError
		return outcome, nil
	}

	outcome.Parsed = true
	outcome.Result = result

	pretty, _ := json.MarshalIndent(result, "", "  ")
	artifact := g.exportArtifact(id, string(pretty), "ats_score", ".json")
	outcome.ExportPath = artifact.ExportPath
	outcome.ExportError = artifact.ExportError

	return outcome, nil
}

// generate renders the task template and runs one generation round trip.
func (g *generatorService) generate(
	ctx context.Context,
	id, template, systemInstruction string,
	params *models.GenerateParams,
	vars map[string]string,
) (string, error) {
	prompt, err := g.prompts.Render(template, vars)
	if err != nil {
		return "", err
	}

	req := &models.GenerationRequest{
		SystemInstruction: systemInstruction,
		Prompt:            prompt,
		Model:             g.model,
		Temperature:       g.cfg.DefaultTemperature,
		MaxOutputTokens:   params.MaxOutputTokens,
	}
	if params.Model != "" {
		req.Model = params.Model
	}
	if params.Temperature != nil {
		req.Temperature = *params.Temperature
	}

	output, err := g.client.Generate(ctx, req)
	if err != nil {
		return "", err
	}

	g.logger.Info("generation completed",
		zap.String("generation_id", id),
		zap.String("template", template),
		zap.String("model", req.Model),
		zap.Int("output_chars", len(output)),
	)

	return output, nil
}

// exportArtifact persists generated content. A failed write is reported on
// the artifact but never voids the generation: the content stays available.
func (g *generatorService) exportArtifact(id, content, taskPrefix, ext string) *models.Artifact {
	artifact := &models.Artifact{ID: id, Content: content}

	path, err := g.exporter.Write(taskPrefix, ext, content)
	if err != nil {
		g.logger.Error("failed to export artifact",
			zap.String("generation_id", id),
			zap.String("task", taskPrefix), zap.Error(err))
		artifact.ExportError = err.Error()
		return artifact
	}

	artifact.ExportPath = path
	return artifact
}
