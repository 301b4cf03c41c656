// Package main is the entry point for the stockfolio dashboard server.
// It serves a sector-filterable portfolio table whose live quotes and daily
// history are refreshed in the background from a quote provider.
//
// The application follows the same layering throughout:
// - Domain layer is pure (no infrastructure dependencies)
// - Dependency injection via DI container
// - Service layer for business logic
// - HTTP handlers for API endpoints
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/stockfolio/internal/config"
	"github.com/aristath/stockfolio/internal/di"
	"github.com/aristath/stockfolio/internal/server"
	"github.com/aristath/stockfolio/pkg/logger"
)

// main is the application entry point. It orchestrates the startup sequence:
// 1. Loads configuration from environment variables (.env file supported)
// 2. Initializes logging
// 3. Wires all dependencies via DI container (holdings, provider, services, jobs)
// 4. Starts HTTP server for the page and API endpoints
// 5. Starts the refresh scheduler and runs one refresh immediately
// 6. Waits for shutdown signal and performs graceful shutdown
func main() {
	// Load configuration first to get log level
	cfg, err := config.Load()
	if err != nil {
		// Use fallback logger if config fails
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger with config level
	// Pretty mode enables human-readable output for development
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().
		Str("provider", cfg.QuoteProvider).
		Str("percent_mode", string(cfg.PercentMode)).
		Int("history_days", cfg.HistoryDays).
		Msg("Starting stockfolio")

	// Wire all dependencies using DI container
	// Holdings are validated here; a bad holdings file stops startup.
	container, jobs, err := di.Wire(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}

	// Initialize HTTP server
	// The HTTP server provides:
	// - The dashboard page at /
	// - Dashboard JSON, sectors and manual refresh under /api/dashboard
	// - A websocket stream pushing the view after every applied refresh
	// - The stocks endpoint (POST /api/stocks) backing remote clients
	// - Per-symbol history summaries under /api/historical
	srv, err := server.New(server.Config{
		Log:       log,
		Port:      cfg.Port,
		DevMode:   cfg.DevMode,
		Provider:  container.Provider,
		Dashboard: container.Dashboard,
		Scheduler: container.Scheduler,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create server")
	}

	// Start server in goroutine
	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Start the refresh scheduler and populate the dashboard right away
	// instead of waiting for the first tick. Until this completes the page
	// renders with zero CMPs.
	container.Scheduler.Start()
	go func() {
		if err := container.Scheduler.RunNow(jobs.Refresh); err != nil {
			log.Warn().Err(err).Msg("Initial refresh failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Stop scheduler, waiting for a running refresh to finish
	container.Scheduler.Stop()

	// Graceful shutdown
	// The HTTP server is given up to 10 seconds to finish in-flight requests.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
