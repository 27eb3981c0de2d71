package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brand-site-api/internal/api"
	"github.com/brand-site-api/internal/config"
	"github.com/brand-site-api/internal/database"
	"github.com/brand-site-api/internal/repository"
	"github.com/brand-site-api/internal/service"
	"github.com/brand-site-api/pkg/logger"
	"github.com/rs/zerolog"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(&cfg.Log)
	log.Info().Msg("Starting brand site server...")

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Run migrations
	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "./migrations"
	}
	if err := db.RunMigrations(migrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize repositories
	repos := repository.New(db)

	// Initialize services
	services := service.NewServices(repos, cfg, log)

	// Seed the fixed category set; safe to re-run on every startup
	if _, err := services.Seed.SeedCategories(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed categories")
	}

	// Provision the bootstrap admin account from the environment
	if err := services.Auth.EnsureAdmin(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to provision admin account")
	}

	// Reclaim expired sessions in the background; reads already filter
	// expiry, so the interval is not correctness-sensitive
	purgeCtx, stopPurge := context.WithCancel(context.Background())
	defer stopPurge()
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-purgeCtx.Done():
				return
			case <-ticker.C:
				if _, err := services.Auth.PurgeExpiredSessions(purgeCtx); err != nil {
					log.Error().Err(err).Msg("Session purge failed")
				}
			}
		}
	}()

	// Initialize router
	router := api.NewRouter(services, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
