package handlers

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"careercraft/resume-generator/internal/models"
	"careercraft/resume-generator/internal/services"
)

type DocumentHandler struct {
	extractor   services.DocumentExtractor
	maxFileSize int64
}

func NewDocumentHandler(extractor services.DocumentExtractor, maxFileSize int64) *DocumentHandler {
	return &DocumentHandler{
		extractor:   extractor,
		maxFileSize: maxFileSize,
	}
}

// HandleExtract handles POST /documents/extract. The upload is read fully
// into memory, extracted and normalized; nothing is kept on disk.
func (h *DocumentHandler) HandleExtract(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("document")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing 'document' file field",
		})
	}

	if fileHeader.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to open uploaded file",
		})
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to read uploaded file",
		})
	}

	text, format := h.extractor.Extract(data, fileHeader.Filename)

	return c.JSON(models.ExtractResponse{
		Text:   services.NormalizePreserveParagraphs(text),
		Format: string(format),
	})
}
