package portfolio

import (
	"github.com/rs/zerolog"

	"github.com/aristath/stockfolio/internal/domain"
)

// PortfolioService answers view queries over a fixed holdings list.
//
// Responsibilities:
//   - Hold the static holdings loaded at startup
//   - Derive the sector list for the filter dropdown
//   - Compute enriched rows for a sector selection using the configured percent mode
//
// The service holds no quote state; callers pass the quote map they own.
type PortfolioService struct {
	holdings []domain.Holding
	sectors  []string
	mode     PercentMode
	log      zerolog.Logger
}

// NewPortfolioService creates a new portfolio service
func NewPortfolioService(holdings []domain.Holding, mode PercentMode, log zerolog.Logger) *PortfolioService {
	if mode == "" {
		mode = PercentOfFiltered
	}

	return &PortfolioService{
		holdings: holdings,
		sectors:  DistinctSectors(holdings),
		mode:     mode,
		log:      log.With().Str("service", "portfolio").Logger(),
	}
}

// Holdings returns the holdings list
func (s *PortfolioService) Holdings() []domain.Holding {
	return s.holdings
}

// Symbols returns the symbols of all holdings in order
func (s *PortfolioService) Symbols() []string {
	symbols := make([]string, 0, len(s.holdings))
	for _, h := range s.holdings {
		symbols = append(symbols, h.Symbol)
	}
	return symbols
}

// Sectors returns the sector dropdown entries, AllSectors first
func (s *PortfolioService) Sectors() []string {
	return s.sectors
}

// Mode returns the configured percent mode
func (s *PortfolioService) Mode() PercentMode {
	return s.mode
}

// GetView computes rows for the selected sector against the given quotes
func (s *PortfolioService) GetView(sector string, quotes map[string]domain.LiveQuote) Result {
	res := ComputeView(s.holdings, sector, quotes, s.mode)

	missing := 0
	for _, row := range res.Rows {
		if !row.HasQuote {
			missing++
		}
	}

	s.log.Debug().
		Str("sector", sector).
		Str("percent_mode", string(s.mode)).
		Int("rows", len(res.Rows)).
		Int("missing_quotes", missing).
		Str("total_investment", res.TotalInvestment.String()).
		Msg("Computed portfolio view")

	return res
}
