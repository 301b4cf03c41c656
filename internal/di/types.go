/**
 * Package di provides dependency injection type definitions.
 *
 * This package defines the Container type which holds all application dependencies.
 * The Container is created by Wire() and handed to the HTTP server and the
 * scheduler.
 */
package di

import (
	"github.com/aristath/stockfolio/internal/domain"
	"github.com/aristath/stockfolio/internal/modules/dashboard"
	"github.com/aristath/stockfolio/internal/modules/portfolio"
	"github.com/aristath/stockfolio/internal/modules/quotes"
	"github.com/aristath/stockfolio/internal/scheduler"
)

// Container holds all dependencies for the application.
type Container struct {
	// Holdings loaded at startup, validated and immutable afterwards
	Holdings []domain.Holding

	// Clients - quote provider (mock or Yahoo Finance) and the fetcher wrapping it
	Provider domain.QuoteProvider
	Fetcher  *quotes.Fetcher

	// Services
	PortfolioService *portfolio.PortfolioService
	Dashboard        *dashboard.Dashboard

	// Background refresh
	Scheduler *scheduler.Scheduler
}

// JobInstances holds the registered jobs for manual triggering
type JobInstances struct {
	Refresh *dashboard.RefreshJob
}
