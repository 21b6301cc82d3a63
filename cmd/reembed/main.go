package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/zunxo7/DentalCare-AI/internal/config"
	"github.com/zunxo7/DentalCare-AI/internal/logger"
	"github.com/zunxo7/DentalCare-AI/internal/repository"
	"github.com/zunxo7/DentalCare-AI/internal/service"
)

// reembed refreshes stored FAQ embeddings. Run it after changing the
// embedding model or dimensions, or after bulk-importing FAQs without
// vectors.
func main() {
	// Initialize logger first (with defaults)
	appLogger := logger.New(&logger.Config{
		Level:       "info",
		Format:      "json",
		ServiceName: "dentalcare-reembed",
	})
	logger.SetDefaultLogger(appLogger)
	defer logger.Sync()

	// Parse command line flags
	force := flag.Bool("force", false, "Re-embed every FAQ, not just missing or mismatched vectors")
	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	// Initialize database
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}
	faqRepo := repository.NewFAQRepository(db)

	embedder := service.NewEmbeddingService(&service.EmbeddingConfig{
		Provider:   cfg.Embedding.Provider,
		Model:      cfg.Embedding.Model,
		APIKey:     cfg.Embedding.APIKey,
		Dimensions: cfg.Embedding.Dimensions,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Stop cleanly on interrupt; already-written embeddings stay valid.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		appLogger.Info("Interrupt received, stopping after current FAQ")
		cancel()
	}()

	faqs, err := faqRepo.List(ctx)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to list FAQs")
	}

	appLogger.WithFields(logger.Fields{
		"total":      len(faqs),
		"force":      *force,
		"dimensions": embedder.Dimensions(),
	}).Info("Starting FAQ re-embedding")

	var updated, skipped, failed int
	for _, faq := range faqs {
		if ctx.Err() != nil {
			break
		}

		if !*force && len(faq.Embedding) == embedder.Dimensions() {
			skipped++
			continue
		}

		// FAQ intents are the passage side of retrieval.
		vec, err := embedder.EmbedPassage(ctx, faq.Intent)
		if err != nil {
			appLogger.WithError(err).WithField("faq_id", faq.ID).Error("Failed to embed FAQ")
			failed++
			continue
		}

		if err := faqRepo.UpdateEmbedding(ctx, faq.ID, vec); err != nil {
			appLogger.WithError(err).WithField("faq_id", faq.ID).Error("Failed to store embedding")
			failed++
			continue
		}
		updated++
	}

	appLogger.WithFields(logger.Fields{
		"updated": updated,
		"skipped": skipped,
		"failed":  failed,
	}).Info("Re-embedding finished")

	if failed > 0 {
		os.Exit(1)
	}
}
