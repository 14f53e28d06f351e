package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"careercraft/resume-generator/internal/models"
	"careercraft/resume-generator/internal/services"
)

type GenerationHandler struct {
	generator services.GeneratorService
	validate  *validator.Validate
}

func NewGenerationHandler(generator services.GeneratorService) *GenerationHandler {
	return &GenerationHandler{
		generator: generator,
		validate:  validator.New(),
	}
}

// HandleOptimizeResume handles POST /resume/optimize.
func (h *GenerationHandler) HandleOptimizeResume(c *fiber.Ctx) error {
	var req models.OptimizeResumeRequest
	if ok, err := h.parse(c, &req); !ok {
		return err
	}

	artifact, err := h.generator.OptimizeResume(c.Context(), &models.GenerateParams{
		ResumeText:      req.ResumeText,
		JobDescription:  req.JobDescription,
		Model:           req.Model,
		Temperature:     req.Temperature,
		MaxOutputTokens: req.MaxOutputTokens,
	})
	if err != nil {
		return h.generationError(c, err)
	}

	return c.JSON(artifact)
}

// HandleCoverLetter handles POST /cover-letter.
func (h *GenerationHandler) HandleCoverLetter(c *fiber.Ctx) error {
	var req models.CoverLetterRequest
	if ok, err := h.parse(c, &req); !ok {
		return err
	}

	artifact, err := h.generator.CoverLetter(c.Context(), &models.GenerateParams{
		ResumeText:      req.ResumeText,
		JobDescription:  req.JobDescription,
		CandidateName:   req.CandidateName,
		Model:           req.Model,
		Temperature:     req.Temperature,
		MaxOutputTokens: req.MaxOutputTokens,
	})
	if err != nil {
		return h.generationError(c, err)
	}

	return c.JSON(artifact)
}

// HandleAtsScore handles POST /ats-score. An unparsable model response is a
// valid outcome: the raw text is returned with parsed=false.
func (h *GenerationHandler) HandleAtsScore(c *fiber.Ctx) error {
	var req models.AtsScoreRequest
	if ok, err := h.parse(c, &req); !ok {
		return err
	}

	outcome, err := h.generator.ATSScore(c.Context(), &models.GenerateParams{
		ResumeText:      req.ResumeText,
		JobDescription:  req.JobDescription,
		Model:           req.Model,
		Temperature:     req.Temperature,
		MaxOutputTokens: req.MaxOutputTokens,
	})
	if err != nil {
		return h.generationError(c, err)
	}

	return c.JSON(outcome)
}

// parse decodes and validates the request body. When ok is false the 400
// response has already been written and the handler must return err as-is.
func (h *GenerationHandler) parse(c *fiber.Ctx, req any) (ok bool, err error) {
	if err := c.BodyParser(req); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request payload",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return true, nil
}

// generationError maps pipeline errors onto HTTP statuses with enough detail
// for the user to act on.
func (h *GenerationHandler) generationError(c *fiber.Ctx, err error) error {
	var genErr *services.GenerationError

	switch {
	case errors.Is(err, services.ErrConfiguration):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, services.ErrTemplateNotFound),
		errors.Is(err, services.ErrMissingVariable):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.As(err, &genErr):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": genErr.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}
