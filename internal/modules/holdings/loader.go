// Package holdings loads the static holdings list the dashboard is built on.
package holdings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/aristath/stockfolio/internal/domain"
	"github.com/aristath/stockfolio/pkg/embedded"
)

// ErrInvalidHoldings is returned when a holdings document fails validation
var ErrInvalidHoldings = errors.New("invalid holdings")

// document is the on-disk YAML layout
type document struct {
	Holdings []entry `yaml:"holdings"`
}

type entry struct {
	StockName     string          `yaml:"stockName"`
	Exchange      string          `yaml:"exchange"`
	Symbol        string          `yaml:"symbol"`
	Sector        string          `yaml:"sector"`
	PurchasePrice decimal.Decimal `yaml:"purchasePrice"`
	Quantity      int64           `yaml:"quantity"`
}

// Loader reads holdings from a YAML file, or from the embedded default when
// no path is configured. It implements domain.HoldingsSource.
type Loader struct {
	path string
	log  zerolog.Logger
}

// NewLoader creates a new holdings loader. An empty path selects the embedded default.
func NewLoader(path string, log zerolog.Logger) *Loader {
	return &Loader{
		path: path,
		log:  log.With().Str("component", "holdings").Logger(),
	}
}

// Load reads, parses and validates the holdings list
func (l *Loader) Load() ([]domain.Holding, error) {
	var (
		data   []byte
		err    error
		source string
	)

	if l.path == "" {
		source = "embedded:" + embedded.DefaultHoldings
		data, err = fs.ReadFile(embedded.Files, embedded.DefaultHoldings)
	} else {
		source = l.path
		data, err = os.ReadFile(l.path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read holdings from %s: %w", source, err)
	}

	holdings, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load holdings from %s: %w", source, err)
	}

	l.log.Info().
		Str("source", source).
		Int("count", len(holdings)).
		Msg("Loaded holdings")

	return holdings, nil
}

// Parse decodes a YAML holdings document and validates every entry
func Parse(data []byte) ([]domain.Holding, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHoldings, err)
	}

	holdings := make([]domain.Holding, 0, len(doc.Holdings))
	for _, e := range doc.Holdings {
		holdings = append(holdings, domain.Holding{
			StockName:     strings.TrimSpace(e.StockName),
			Exchange:      strings.TrimSpace(e.Exchange),
			Symbol:        strings.TrimSpace(e.Symbol),
			Sector:        strings.TrimSpace(e.Sector),
			PurchasePrice: e.PurchasePrice,
			Quantity:      e.Quantity,
		})
	}

	if err := Validate(holdings); err != nil {
		return nil, err
	}

	return holdings, nil
}

// Validate checks the holding invariants: non-empty name and symbol, unique
// symbols, non-negative price and quantity.
func Validate(holdings []domain.Holding) error {
	seen := make(map[string]int, len(holdings))
	for i, h := range holdings {
		if h.StockName == "" {
			return fmt.Errorf("%w: entry %d has no stockName", ErrInvalidHoldings, i)
		}
		if h.Symbol == "" {
			return fmt.Errorf("%w: entry %d (%s) has no symbol", ErrInvalidHoldings, i, h.StockName)
		}
		if prev, ok := seen[h.Symbol]; ok {
			return fmt.Errorf("%w: duplicate symbol %s (entries %d and %d)", ErrInvalidHoldings, h.Symbol, prev, i)
		}
		seen[h.Symbol] = i

		if h.PurchasePrice.IsNegative() {
			return fmt.Errorf("%w: %s has negative purchasePrice %s", ErrInvalidHoldings, h.Symbol, h.PurchasePrice)
		}
		if h.Quantity < 0 {
			return fmt.Errorf("%w: %s has negative quantity %d", ErrInvalidHoldings, h.Symbol, h.Quantity)
		}
	}
	return nil
}
