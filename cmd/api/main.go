package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog-api/internal/config"
	"catalog-api/internal/event"
	"catalog-api/internal/handler"
	"catalog-api/internal/router"
	"catalog-api/internal/seed"
	"catalog-api/internal/service"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().
		Str("environment", cfg.Environment.String()).
		Str("driver", cfg.Database.Driver).
		Msg("starting catalog API server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := openStore(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer st.close()

	publisher := newPublisher(cfg.Events, logger)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close event publisher")
		}
	}()

	// Initialize services
	productService := service.NewProductService(st.products, st.reviews, logger)
	aggregator := service.NewRatingAggregator(st.products, st.reviews, publisher, logger)
	reviewService := service.NewReviewService(st.products, st.reviews, aggregator, logger)

	if cfg.Seed.File != "" {
		if err := seedCatalog(ctx, cfg.Seed, productService, logger); err != nil {
			return fmt.Errorf("failed to seed catalog: %w", err)
		}
	}

	production := cfg.IsProduction()
	mux := router.New(
		handler.NewProductHandler(productService, production, logger),
		handler.NewReviewHandler(reviewService, production, logger),
		handler.NewHealthHandler(st.pinger, logger),
		router.Options{
			AllowedOrigins: cfg.CORS.AllowedOrigins(production),
			Production:     production,
		},
		logger,
	)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

func newPublisher(cfg config.EventsConfig, logger zerolog.Logger) event.Publisher {
	if !cfg.Enabled() {
		logger.Info().Msg("no Kafka brokers configured, rating events disabled")
		return event.NewNopPublisher()
	}
	return event.NewKafkaPublisher(cfg.Brokers, cfg.RatingTopic, logger)
}

// seedCatalog imports the seed file when the catalog is empty. S3 is tried
// first when enabled, with the local file system as fallback.
func seedCatalog(ctx context.Context, cfg config.SeedConfig, products service.ProductService, logger zerolog.Logger) error {
	var s3Loader seed.Loader
	if cfg.S3Enabled {
		loader, err := seed.NewS3Loader(ctx, cfg.S3Bucket, cfg.S3Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			s3Loader = loader
		}
	} else {
		logger.Info().Msg("using local file system for the seed file (S3 disabled)")
	}

	loader := seed.NewFallbackLoader(s3Loader, seed.NewFileLoader(logger), cfg.S3Prefix, logger)

	_, err := seed.NewImporter(loader, products, logger).Run(ctx, cfg.File)
	return err
}
