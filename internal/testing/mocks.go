// Package testing provides test doubles and fixtures shared across packages.
package testing

import (
	"context"
	"sync"

	"github.com/aristath/stockfolio/internal/domain"
)

// MockQuoteProvider is a mock implementation of domain.QuoteProvider for testing
type MockQuoteProvider struct {
	mu         sync.RWMutex
	quotes     []domain.QuoteSnapshot
	history    []domain.SymbolHistory
	err        error
	quoteCalls int
	histCalls  int
	lastDays   int
}

// NewMockQuoteProvider creates a new mock quote provider
func NewMockQuoteProvider() *MockQuoteProvider {
	return &MockQuoteProvider{
		quotes:  make([]domain.QuoteSnapshot, 0),
		history: make([]domain.SymbolHistory, 0),
	}
}

// SetQuotes sets the snapshots to return
func (m *MockQuoteProvider) SetQuotes(quotes []domain.QuoteSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quotes = quotes
}

// SetHistory sets the histories to return
func (m *MockQuoteProvider) SetHistory(history []domain.SymbolHistory) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = history
}

// SetError sets the error to return
func (m *MockQuoteProvider) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// GetQuotes returns the configured snapshots restricted to symbols
func (m *MockQuoteProvider) GetQuotes(ctx context.Context, symbols []string) ([]domain.QuoteSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quoteCalls++
	if m.err != nil {
		return nil, m.err
	}

	wanted := toSet(symbols)
	result := make([]domain.QuoteSnapshot, 0, len(m.quotes))
	for _, q := range m.quotes {
		if _, ok := wanted[q.Symbol]; ok {
			result = append(result, q)
		}
	}
	return result, nil
}

// GetHistory returns the configured histories restricted to symbols
func (m *MockQuoteProvider) GetHistory(ctx context.Context, symbols []string, days int) ([]domain.SymbolHistory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.histCalls++
	m.lastDays = days
	if m.err != nil {
		return nil, m.err
	}

	wanted := toSet(symbols)
	result := make([]domain.SymbolHistory, 0, len(m.history))
	for _, h := range m.history {
		if _, ok := wanted[h.Symbol]; ok {
			result = append(result, h)
		}
	}
	return result, nil
}

// QuoteCalls returns the number of GetQuotes calls
func (m *MockQuoteProvider) QuoteCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.quoteCalls
}

// HistoryCalls returns the number of GetHistory calls
func (m *MockQuoteProvider) HistoryCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.histCalls
}

// LastDays returns the days argument of the last GetHistory call
func (m *MockQuoteProvider) LastDays() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastDays
}

// MockFetcher is a mock of the view-side fetch operations for testing
type MockFetcher struct {
	mu         sync.RWMutex
	quotes     map[string]domain.LiveQuote
	history    map[string][]domain.HistoricalBar
	quotesErr  error
	historyErr error
}

// NewMockFetcher creates a new mock fetcher
func NewMockFetcher() *MockFetcher {
	return &MockFetcher{
		quotes:  make(map[string]domain.LiveQuote),
		history: make(map[string][]domain.HistoricalBar),
	}
}

// SetQuotes sets the quote map to return
func (m *MockFetcher) SetQuotes(quotes map[string]domain.LiveQuote) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quotes = quotes
}

// SetHistory sets the history map to return
func (m *MockFetcher) SetHistory(history map[string][]domain.HistoricalBar) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = history
}

// SetQuotesError sets the error FetchQuotes returns
func (m *MockFetcher) SetQuotesError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quotesErr = err
}

// SetHistoryError sets the error FetchHistory returns
func (m *MockFetcher) SetHistoryError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.historyErr = err
}

// FetchQuotes returns the configured quote map
func (m *MockFetcher) FetchQuotes(ctx context.Context, symbols []string) (map[string]domain.LiveQuote, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.quotesErr != nil {
		return nil, m.quotesErr
	}
	return m.quotes, nil
}

// FetchHistory returns the configured history map
func (m *MockFetcher) FetchHistory(ctx context.Context, symbols []string, days int) (map[string][]domain.HistoricalBar, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.historyErr != nil {
		return nil, m.historyErr
	}
	return m.history, nil
}

func toSet(symbols []string) map[string]struct{} {
	set := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		set[s] = struct{}{}
	}
	return set
}
