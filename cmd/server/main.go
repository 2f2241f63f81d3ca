package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"everywhere/internal/config"
	"everywhere/internal/handler"
	"everywhere/internal/logging"
	"everywhere/internal/repository"
	"everywhere/internal/service"

	"github.com/gin-gonic/gin"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: os.Stdout,
	})

	logging.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("git_commit", GitCommit).
		Msg("Everywhere space recommendation server")

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Candidate catalog
	provider, closeCatalog, err := newCatalog(cfg)
	if err != nil {
		logging.Fatal().Err(err).Str("source", cfg.Catalog.Source).Msg("Failed to initialize space catalog")
	}
	defer closeCatalog()

	// AI server client
	aiClient := service.NewAIServerClient(&cfg.AIServer)
	logging.Info().
		Str("base_url", cfg.AIServer.BaseURL).
		Dur("timeout", cfg.AIServer.AITimeout()).
		Bool("circuit_breaker", cfg.AIServer.BreakerEnabled).
		Msg("AI server client initialized")

	// Initialize services
	recommendationService := service.NewRecommendationService(
		provider,
		aiClient,
		service.FeatureDefaults{
			PurposeScore: cfg.Recommend.PlaceholderPurposeScore,
			PredictCount: cfg.Recommend.PlaceholderPredictCount,
		},
		nil,
	)
	congestionService := service.NewCongestionService(provider, aiClient)

	// Initialize handlers
	router := handler.NewRouter(
		handler.RouterOptions{
			AllowedOrigins: cfg.Server.AllowedOrigins,
			AllowedMethods: cfg.Server.AllowedMethods,
			AllowedHeaders: cfg.Server.AllowedHeaders,
			MetricsPath:    metricsPath(cfg),
		},
		handler.NewSystemHandler(handler.BuildInfo{
			Version:   Version,
			BuildTime: BuildTime,
			GitCommit: GitCommit,
		}, cfg.Server.Port),
		handler.NewCongestionHandler(congestionService),
		handler.NewRecommendationHandler(recommendationService),
	)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server
	go func() {
		logging.Info().Str("addr", addr).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("Server forced to shut down")
	}
	logging.Info().Msg("Server stopped")
}

// newCatalog opens the configured candidate provider and returns its closer
func newCatalog(cfg *config.Config) (service.CandidateProvider, func(), error) {
	if cfg.Catalog.Source == config.CatalogStatic {
		logging.Info().Int("spaces", len(repository.DefaultSpaces)).Msg("Using built-in space catalog")
		return repository.NewStaticCatalog(repository.DefaultSpaces), func() {}, nil
	}

	repo, err := repository.NewPostgresRepository(
		cfg.GetPostgreSQLDSN(),
		cfg.PostgreSQL.MaxConnections,
		cfg.PostgreSQL.MaxIdleConnections,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := repo.Migrate(ctx); err != nil {
		repo.Close()
		return nil, nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	if cfg.Catalog.SeedDefaults {
		if err := repo.UpsertSpaces(ctx, repository.DefaultSpaces); err != nil {
			repo.Close()
			return nil, nil, fmt.Errorf("failed to seed spaces: %w", err)
		}
		logging.Info().Int("spaces", len(repository.DefaultSpaces)).Msg("Seeded built-in spaces")
	}

	logging.Info().Msg("Connected to PostgreSQL space catalog")
	return repo, func() { repo.Close() }, nil
}

func metricsPath(cfg *config.Config) string {
	if !cfg.Metrics.Enabled {
		return ""
	}
	return cfg.Metrics.Path
}
