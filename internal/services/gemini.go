package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"careercraft/resume-generator/internal/logger"
	"careercraft/resume-generator/internal/models"
)

type GenerationClient interface {
	// Generate issues one single-turn generation request, retrying transient
	// remote failures per the configured backoff schedule. It returns the
	// model's raw text output with surrounding whitespace stripped; an empty
	// response is a valid outcome, not an error.
	Generate(ctx context.Context, req *models.GenerationRequest) (string, error)
}

// textTransport issues a single raw generation call. Tests substitute a fake.
type textTransport interface {
	generateText(ctx context.Context, req *models.GenerationRequest) (string, error)
}

type geminiService struct {
	transport textTransport
	retry     RetryConfig
	logger    *zap.Logger
}

// NewGeminiService creates the shared generation client. The underlying genai
// client is constructed once here and reused by every call.
func NewGeminiService(ctx context.Context, apiKey string, retry RetryConfig, log *zap.Logger) (GenerationClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY is not set", ErrConfiguration)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create gemini client: %v", ErrConfiguration, err)
	}

	return &geminiService{
		transport: &genaiTransport{client: client},
		retry:     retry,
		logger:    log,
	}, nil
}

func (g *geminiService) Generate(ctx context.Context, req *models.GenerationRequest) (string, error) {
	if err := validateRequest(req); err != nil {
		return "", err
	}

	g.logger.Debug("generation request",
		zap.String("model", req.Model),
		zap.Float32("temperature", req.Temperature),
		zap.Int32("max_output_tokens", req.MaxOutputTokens),
		zap.String("prompt_preview", logger.TruncateForLog(req.Prompt, 200)),
	)

	text, err := retryGenerate(ctx, g.retry, func() (string, error) {
		return g.transport.generateText(ctx, req)
	})
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(text), nil
}

// validateRequest rejects malformed requests before any remote call; these
// are configuration-class errors and are never retried.
func validateRequest(req *models.GenerationRequest) error {
	if strings.TrimSpace(req.Prompt) == "" {
		return fmt.Errorf("%w: prompt must not be empty", ErrConfiguration)
	}
	if strings.TrimSpace(req.Model) == "" {
		return fmt.Errorf("%w: model identifier must not be empty", ErrConfiguration)
	}
	if req.Temperature < models.MinTemperature || req.Temperature > models.MaxTemperature {
		return fmt.Errorf("%w: temperature %.2f outside [%.1f, %.1f]",
			ErrConfiguration, req.Temperature, models.MinTemperature, models.MaxTemperature)
	}
	if req.MaxOutputTokens < 0 {
		return fmt.Errorf("%w: max output tokens must not be negative", ErrConfiguration)
	}
	return nil
}

type genaiTransport struct {
	client *genai.Client
}

func (t *genaiTransport) generateText(ctx context.Context, req *models.GenerationRequest) (string, error) {
	temperature := req.Temperature
	config := &genai.GenerateContentConfig{
		Temperature: &temperature,
	}
	if req.MaxOutputTokens > 0 {
		config.MaxOutputTokens = req.MaxOutputTokens
	}
	if req.SystemInstruction != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemInstruction}},
		}
	}

	resp, err := t.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if resp == nil {
		return "", nil
	}

	text := resp.Text()
	if text == "" {
		// No extractable text is a valid empty result, not a failure.
		return "", nil
	}

	return text, nil
}
