package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	httpSwagger "github.com/swaggo/http-swagger"
	_ "github.com/syllablegame/backend/docs"
	"github.com/syllablegame/backend/internal/cache"
	"github.com/syllablegame/backend/internal/config"
	"github.com/syllablegame/backend/internal/database"
	"github.com/syllablegame/backend/internal/handlers"
	"github.com/syllablegame/backend/internal/logger"
	"github.com/syllablegame/backend/internal/middleware"
	"github.com/syllablegame/backend/internal/models"
	"github.com/syllablegame/backend/internal/repositories"
	"github.com/syllablegame/backend/internal/services"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting syllable game server")

	// Connect to database
	db, err := database.Connect(ctx, cfg.DSN(), cfg.Database.ConnectAttempts, cfg.Database.ConnectDelay, logger.Logger)
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := database.Migrate(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Load word catalog
	words, err := repositories.LoadWordCatalog(cfg.Catalog.WordsFile)
	if err != nil {
		logger.Logger.Fatal("Failed to load word catalog", zap.Error(err))
	}
	logger.Logger.Info("Word catalog loaded", zap.Int("words", len(words)))

	// Optional statistics cache
	var statsCache services.StatisticsCache
	if cfg.Redis.URL != "" {
		client, err := cache.Connect(ctx, cfg.Redis.URL)
		if err != nil {
			logger.Logger.Warn("Redis unavailable, statistics cache disabled", zap.Error(err))
		} else {
			defer client.Close()
			statsCache = cache.NewStatisticsCache(client, cfg.Redis.StatisticsTTL)
			logger.Logger.Info("Statistics cache enabled", zap.Duration("ttl", cfg.Redis.StatisticsTTL))
		}
	}

	r := newRouter(cfg, db, words, statsCache, logger.Logger)

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// newRouter wires repositories, services and handlers behind the shared middleware
func newRouter(cfg *config.Config, db *sqlx.DB, words []models.WordEntry, statsCache services.StatisticsCache, appLogger *zap.Logger) chi.Router {
	// Initialize repositories
	wordsRepo := repositories.NewWordsRepository(words)
	progressRepo := repositories.NewProgressRepository(db, appLogger)

	// Initialize services
	wordsService := services.NewWordsService(wordsRepo, appLogger)
	progressService := services.NewProgressService(progressRepo, statsCache, appLogger)

	// Initialize handlers
	gameHandler := handlers.NewGameHandler(wordsService, progressService, appLogger)
	pageHandler := handlers.NewPageHandler(wordsService, appLogger)
	healthHandler := handlers.NewHealthHandler(db, appLogger)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(appLogger))
	r.Use(middleware.Recovery(appLogger))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(cfg.RateLimit.RequestsPerMinute, time.Minute))
	r.Use(middleware.RequestSizeLimit(middleware.DefaultMaxRequestSize))

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	healthHandler.RegisterRoutes(r)
	pageHandler.RegisterRoutes(r)
	gameHandler.RegisterRoutes(r)

	return r
}
