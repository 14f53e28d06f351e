package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"careercraft/resume-generator/internal/config"
	"careercraft/resume-generator/internal/handlers"
	"careercraft/resume-generator/internal/logger"
	"careercraft/resume-generator/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zlog, err := logger.New(cfg.Server.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()
	zlog.Info("config loaded", zap.String("env", cfg.Server.Env))

	// Initialize services
	extractor := services.NewDocumentExtractor(zlog)
	prompts := services.NewPromptService(cfg.Prompts.Dir)

	exporter := services.NewExportService(cfg.Exports.Dir)
	if err := exporter.EnsureExportDir(); err != nil {
		zlog.Fatal("failed to create export directory", zap.Error(err))
	}

	retryCfg := services.RetryConfig{
		MaxAttempts:  cfg.Generation.MaxAttempts,
		InitialDelay: cfg.Generation.InitialDelay,
		MaxDelay:     cfg.Generation.MaxDelay,
		Multiplier:   2.0,
	}

	ctx := context.Background()
	client, err := services.NewGeminiService(ctx, cfg.Gemini.APIKey, retryCfg, zlog)
	if err != nil {
		zlog.Fatal("failed to initialize generation client", zap.Error(err))
	}
	zlog.Info("generation client initialized", zap.String("model", cfg.Gemini.Model))

	generator := services.NewGeneratorService(
		prompts,
		client,
		exporter,
		cfg.Generation,
		cfg.Gemini.Model,
		zlog,
	)

	// Initialize handlers
	documentHandler := handlers.NewDocumentHandler(extractor, cfg.Server.MaxFileSize)
	generationHandler := handlers.NewGenerationHandler(generator)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Smart Resume Generator API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		BodyLimit:    int(cfg.Server.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/documents/extract", documentHandler.HandleExtract)
	api.Post("/resume/optimize", generationHandler.HandleOptimizeResume)
	api.Post("/cover-letter", generationHandler.HandleCoverLetter)
	api.Post("/ats-score", generationHandler.HandleAtsScore)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Smart Resume Generator API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/documents/extract",
				"POST /api/v1/resume/optimize",
				"POST /api/v1/cover-letter",
				"POST /api/v1/ats-score",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zlog.Info("shutting down server")
		if err := app.Shutdown(); err != nil {
			zlog.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zlog.Info("server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
