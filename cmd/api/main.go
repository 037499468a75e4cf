package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"lead-pipeline-api/internal/client"
	"lead-pipeline-api/internal/config"
	"lead-pipeline-api/internal/database"
	"lead-pipeline-api/internal/job"
	"lead-pipeline-api/internal/metrics"
	"lead-pipeline-api/internal/repository"
	"lead-pipeline-api/internal/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Logger.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Set Gin mode
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting Lead Pipeline Service",
		zap.String("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("base_path", cfg.Server.BasePath),
		zap.String("scoring_api_url", cfg.ScoringAPI.BaseURL),
	)

	// Initialize database, retrying in the background until it comes up
	dbConfig := database.Config{
		DSN:             cfg.Database.GetDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime.Std(),
	}

	db, err := database.New(dbConfig)
	if err != nil {
		logger.Warn("Failed to connect to database on startup, retrying in background",
			zap.Error(err))
		connected := make(chan *gorm.DB, 1)
		database.NewAsync(dbConfig, 5*time.Second, func(db *gorm.DB) {
			connected <- db
		})
		db = <-connected
	}
	logger.Info("Database connected successfully")

	ctx := context.Background()

	if err := database.AutoMigrate(db); err != nil {
		logger.Warn("Failed to run database migrations", zap.Error(err))
	} else if err := database.SeedStages(ctx, db); err != nil {
		logger.Warn("Failed to seed pipeline stages", zap.Error(err))
	} else {
		logger.Info("Database migrations completed")
	}

	// Initialize metrics
	m := metrics.NewWithLogger(logger)
	logger.Info("Metrics initialized")

	database.RegisterMetricsCallbacks(db, m)
	stopStats := database.StartDBStatsCollector(db, m)
	defer close(stopStats)

	// Initialize Redis (optional, caching degrades gracefully without it)
	redisClient, err := database.NewRedis(cfg.Redis)
	if err != nil {
		logger.Warn("Failed to connect to Redis, overview caching disabled", zap.Error(err))
		redisClient = nil
	} else {
		logger.Info("Redis connected successfully")
		defer redisClient.Close()
	}

	// Initialize scoring client
	var scoringClient client.ScoringClient
	if cfg.ScoringAPI.BaseURL != "" {
		scoringClient = client.NewScoringClient(cfg.ScoringAPI.BaseURL, cfg.ScoringAPI.Timeout.Std(), logger, m)
		logger.Info("Scoring client initialized", zap.String("base_url", cfg.ScoringAPI.BaseURL))
	} else {
		logger.Warn("Scoring API not configured, lead scoring disabled")
	}

	// Schedule the business gauge refresh
	metricsJob := job.NewMetricsJob(repository.NewLeadRepository(db), cfg.App.StaleDaysDefault, m, logger)
	scheduler := cron.New()
	if _, err := scheduler.AddJob(cfg.App.MetricsRefresh, metricsJob); err != nil {
		logger.Warn("Failed to schedule metrics job", zap.Error(err))
	} else {
		scheduler.Start()
		defer scheduler.Stop()
	}

	// Setup router with all dependencies
	r := router.Setup(cfg, db, redisClient, scoringClient, m, logger)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout.Std(),
		WriteTimeout: cfg.Server.WriteTimeout.Std(),
	}

	// Start server in goroutine
	go func() {
		logger.Info("Lead Pipeline Service started successfully",
			zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Std())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := database.Close(db); err != nil {
		logger.Error("Failed to close database", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
