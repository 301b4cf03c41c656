package di

import (
	"github.com/rs/zerolog"

	"github.com/aristath/stockfolio/internal/config"
	"github.com/aristath/stockfolio/internal/domain"
	"github.com/aristath/stockfolio/internal/modules/dashboard"
	"github.com/aristath/stockfolio/internal/modules/holdings"
	"github.com/aristath/stockfolio/internal/modules/portfolio"
	"github.com/aristath/stockfolio/internal/modules/quotes"
)

// InitializeHoldings loads and validates the holdings file (or the embedded default)
func InitializeHoldings(container *Container, cfg *config.Config, log zerolog.Logger) error {
	var source domain.HoldingsSource = holdings.NewLoader(cfg.HoldingsFile, log)
	list, err := source.Load()
	if err != nil {
		return err
	}
	container.Holdings = list
	return nil
}

// InitializeClients creates the quote provider and the fetcher wrapping it
func InitializeClients(container *Container, cfg *config.Config, log zerolog.Logger) error {
	provider, err := quotes.NewProvider(cfg.QuoteProvider, quotes.Options{Seed: cfg.MockSeed}, log)
	if err != nil {
		return err
	}
	container.Provider = provider
	container.Fetcher = quotes.NewFetcher(provider, cfg.ProviderTimeout, log)

	log.Info().Str("provider", cfg.QuoteProvider).Msg("Quote provider initialized")
	return nil
}

// InitializeServices creates the portfolio service and the dashboard state
func InitializeServices(container *Container, cfg *config.Config, log zerolog.Logger) {
	container.PortfolioService = portfolio.NewPortfolioService(container.Holdings, cfg.PercentMode, log)

	container.Dashboard = dashboard.New(dashboard.Config{
		Portfolio:   container.PortfolioService,
		Fetcher:     container.Fetcher,
		HistoryDays: cfg.HistoryDays,
		Log:         log,
	})
}
