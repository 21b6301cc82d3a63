package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zunxo7/DentalCare-AI/internal/api"
	"github.com/zunxo7/DentalCare-AI/internal/config"
	"github.com/zunxo7/DentalCare-AI/internal/logger"
	"github.com/zunxo7/DentalCare-AI/internal/repository"
	"github.com/zunxo7/DentalCare-AI/internal/service"
	"github.com/zunxo7/DentalCare-AI/internal/storage"
)

func main() {
	// Initialize logger first (with env defaults)
	appLogger := logger.NewDefault()
	logger.SetDefaultLogger(appLogger)
	defer logger.Sync()

	// Load configuration
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	// Initialize database
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}

	// Initialize repositories
	messageRepo := repository.NewMessageRepository(db)
	faqRepo := repository.NewFAQRepository(db)
	mediaRepo := repository.NewMediaRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// Initialize media storage when an endpoint is configured. Without it the
	// pipeline still serves media rows that carry a full URL.
	var urls service.URLResolver
	if cfg.Storage.Endpoint != "" {
		objectStorage, err := storage.NewStorage(&storage.S3Config{
			Type:      storage.StorageType(cfg.Storage.Type),
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			UseSSL:    cfg.Storage.UseSSL,
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			PublicURL: cfg.Storage.PublicURL,
		})
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to initialize storage")
		}
		urls = objectStorage
	}

	// Initialize services
	llm := service.NewLLMClient(&service.LLMConfig{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
	})

	embedder := service.NewEmbeddingService(&service.EmbeddingConfig{
		Provider:   cfg.Embedding.Provider,
		Model:      cfg.Embedding.Model,
		APIKey:     cfg.Embedding.APIKey,
		Dimensions: cfg.Embedding.Dimensions,
	})

	translator := service.NewTranslator(llm, cfg.LLM.Model)
	intents := service.NewIntentNormalizer(llm, cfg.LLM.Model)
	strictRouter := service.NewStrictRouter(llm, &service.RouterConfig{
		PrimaryModel:   cfg.LLM.Model,
		SecondaryModel: cfg.LLM.FallbackModel,
	})
	matcher := service.NewFAQMatcher(llm, embedder, cfg.LLM.Model)
	cache := service.NewCacheManager(messageRepo, settingRepo, cfg.Pipeline.CacheDefault)

	pipeline := service.NewPipeline(
		messageRepo,
		faqRepo,
		mediaRepo,
		cache,
		translator,
		intents,
		strictRouter,
		matcher,
		llm,
		urls,
		&service.PipelineConfig{
			Model:        cfg.LLM.Model,
			TraceInReply: cfg.Pipeline.TraceInReply,
		},
	)

	// Setup router
	router := api.SetupRouter(pipeline, messageRepo, &cfg.Server)

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		appLogger.WithFields(logger.Fields{
			"port": cfg.Server.Port,
			"mode": cfg.Server.Mode,
		}).Info("Starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Fatal("Server forced to shutdown")
	}

	appLogger.Info("Server exited")
}
