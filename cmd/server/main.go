package main

import (
	"context"
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/resumatch/backend/config"
	httpDelivery "github.com/resumatch/backend/internal/delivery/http"
	"github.com/resumatch/backend/internal/infrastructure/cache"
	"github.com/resumatch/backend/internal/infrastructure/gemini"
	"github.com/resumatch/backend/internal/infrastructure/pdfext"
	"github.com/resumatch/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	logger.Info("starting resumatch backend",
		zap.String("version", "1.0.0"),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("model", cfg.Gemini.Model),
		zap.Int("cache_capacity", cfg.Cache.Capacity),
	)

	// Initialize infrastructure dependencies
	ctx := context.Background()

	geminiClient, err := gemini.NewClient(ctx, gemini.Config{
		APIKey:            cfg.Gemini.APIKey,
		Model:             cfg.Gemini.Model,
		RequestsPerMinute: cfg.Gemini.RequestsPerMinute,
	}, logger)
	if err != nil {
		logger.Fatal("failed to create gemini client", zap.Error(err))
	}

	jobCache := cache.NewFIFOCache(cfg.Cache.Capacity)
	extractor := pdfext.NewExtractor(cfg.Limits.MaxResumeSizeBytes, cfg.Limits.MinResumeChars)

	// Initialize usecase layer
	analysisService := usecase.NewAnalysisService(
		geminiClient,
		jobCache,
		logger,
		usecase.AnalysisServiceConfig{
			MinJobDescriptionChars: cfg.Limits.MinJobChars,
		},
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(analysisService, extractor, logger)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info("server listening", zap.String("addr", addr))

	if err := router.Run(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

// newLogger builds a development or production zap logger depending on the
// configured environment.
func newLogger(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
