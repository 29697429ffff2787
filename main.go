package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/jobfolio/profile-intake/internal/api"
	"github.com/jobfolio/profile-intake/internal/config"
	"github.com/jobfolio/profile-intake/internal/duplicate"
	"github.com/jobfolio/profile-intake/internal/handler"
	"github.com/jobfolio/profile-intake/internal/identity"
	"github.com/jobfolio/profile-intake/internal/logger"
	"github.com/jobfolio/profile-intake/internal/moderation"
	"github.com/jobfolio/profile-intake/internal/ratelimit"
	"github.com/jobfolio/profile-intake/internal/screen"
	"github.com/jobfolio/profile-intake/internal/seed"
	"github.com/jobfolio/profile-intake/internal/storage"
	"github.com/jobfolio/profile-intake/internal/telemetry"

	_ "github.com/lib/pq"
)

// Database connection timeout.
const dbPingTimeout = 5 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	log, err := createLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	db, admin := connectDatabases(cfg, log)
	if db != nil {
		defer func() { _ = db.Close() }()
	}
	if admin != nil {
		defer func() { _ = admin.Close() }()
	}

	return runServer(cfg, log, db, admin)
}

// loadConfig loads and validates configuration.
func loadConfig() (*config.Config, error) {
	configPath := config.GetConfigPath("config.yml")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if validationErr := cfg.Validate(); validationErr != nil {
		return nil, fmt.Errorf("validate config: %w", validationErr)
	}
	return cfg, nil
}

// createLogger creates a logger instance from configuration.
func createLogger(cfg *config.Config) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log.With(logger.String("service", cfg.Service.Name)), nil
}

// connectDatabases opens both credential tiers. Either may be absent; an
// unconfigured tier degrades the store rather than failing startup.
func connectDatabases(cfg *config.Config, log logger.Logger) (db, admin *sqlx.DB) {
	if cfg.Database.Configured() {
		db = connect(cfg.Database.DSN(), "public", log)
	} else {
		log.Warn("Database not configured, running with local fallback storage")
	}
	if cfg.Database.AdminConfigured() {
		admin = connect(cfg.Database.AdminDSN(), "admin", log)
	}
	return db, admin
}

func connect(dsn, tier string, log logger.Logger) *sqlx.DB {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		log.Error("Failed to open database", logger.String("tier", tier), logger.Error(err))
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbPingTimeout)
	defer cancel()

	if pingErr := db.PingContext(ctx); pingErr != nil {
		log.Error("Failed to ping database", logger.String("tier", tier), logger.Error(pingErr))
		_ = db.Close()
		return nil
	}

	log.Info("Database connected", logger.String("tier", tier))
	return db
}

// runServer creates all dependencies and starts the HTTP server.
func runServer(cfg *config.Config, log logger.Logger, db, admin *sqlx.DB) int {
	metrics := telemetry.New()
	limiter := ratelimit.New(cfg.RateLimit.MaxTrackedClients)
	screener := screen.New(screen.DefaultRiskPhrases)

	store := storage.New(db, admin, cfg.Service.AllowLocalFallback, log)
	detector := duplicate.New(store, seed.Profiles, log)

	var resolver moderation.TokenResolver
	if cfg.Identity.Configured() {
		resolver = identity.New(
			cfg.Identity.BaseURL,
			cfg.Identity.APIKey,
			time.Duration(cfg.Identity.TimeoutSeconds)*time.Second,
		)
	} else {
		log.Warn("Auth service not configured, moderation endpoints will refuse requests")
	}
	guard := moderation.NewGuard(resolver, cfg.Moderation.ModeratorEmails, log)

	handlers := api.Handlers{
		Share:    handler.NewShareHandler(store, screener, detector, metrics, log),
		Moderate: handler.NewModerateHandler(store, guard, metrics, log),
		Events:   handler.NewEventsHandler(store, metrics, log),
		Jobs:     handler.NewJobsHandler(store),
		Health:   handler.NewHealthHandler(cfg.Service.Version, store),
	}

	shareWindow := time.Duration(cfg.RateLimit.ShareWindowSeconds) * time.Second
	server := api.NewServer(
		cfg.Service.Name, cfg.Service.Version, cfg.Service.Port, cfg.Service.Debug, log,
		func(router *gin.Engine) {
			api.SetupRoutes(router, handlers, limiter,
				cfg.RateLimit.ShareMaxRequests, shareWindow, metrics)
		})

	log.Info("Profile intake starting", logger.Int("port", cfg.Service.Port))

	if err := server.RunWithGracefulShutdown(context.Background()); err != nil {
		log.Error("Server error", logger.Error(err))
		return 1
	}

	log.Info("Profile intake exited cleanly")
	return 0
}
