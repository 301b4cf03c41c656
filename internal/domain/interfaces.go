package domain

import "context"

// QuoteProvider is the external market data source.
// Implementations may omit symbols they could not resolve.
type QuoteProvider interface {
	GetQuotes(ctx context.Context, symbols []string) ([]QuoteSnapshot, error)
	GetHistory(ctx context.Context, symbols []string, days int) ([]SymbolHistory, error)
}

// HoldingsSource loads the static holdings list
type HoldingsSource interface {
	Load() ([]Holding, error)
}
