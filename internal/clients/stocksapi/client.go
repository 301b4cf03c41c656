// Package stocksapi provides a client for the POST /api/stocks boundary.
package stocksapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/stockfolio/internal/domain"
	"github.com/aristath/stockfolio/internal/modules/quotes"
)

// ErrUnexpectedStatus is returned for any non-2xx response
var ErrUnexpectedStatus = errors.New("unexpected status")

const stocksPath = "/api/stocks"

type stocksRequest struct {
	Symbols      []string `json:"symbols"`
	FetchHistory bool     `json:"fetchHistory,omitempty"`
	Days         int      `json:"days,omitempty"`
}

// Client calls a stocks boundary over HTTP
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a new stocks boundary client for the server at baseURL
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log.With().Str("client", "stocksapi").Logger(),
	}
}

// FetchQuotes requests live snapshots and returns them keyed by symbol
func (c *Client) FetchQuotes(ctx context.Context, symbols []string) (map[string]domain.LiveQuote, error) {
	raw, err := c.doRequest(ctx, stocksRequest{Symbols: symbols})
	if err != nil {
		return nil, err
	}

	snapshots, rejected := ParseQuotes(raw)
	if rejected > 0 {
		c.log.Warn().Int("rejected", rejected).Msg("Dropped malformed quote entries")
	}

	return quotes.ToLiveQuotes(snapshots), nil
}

// FetchHistory requests daily bars and returns them keyed by symbol
func (c *Client) FetchHistory(ctx context.Context, symbols []string, days int) (map[string][]domain.HistoricalBar, error) {
	raw, err := c.doRequest(ctx, stocksRequest{Symbols: symbols, FetchHistory: true, Days: days})
	if err != nil {
		return nil, err
	}

	histories, rejected := ParseHistory(raw)
	if rejected > 0 {
		c.log.Warn().Int("rejected", rejected).Msg("Dropped malformed history entries")
	}

	return quotes.ToHistoryMap(histories), nil
}

func (c *Client) doRequest(ctx context.Context, payload stocksRequest) ([]map[string]interface{}, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+stocksPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug().
		Int("symbols", len(payload.Symbols)).
		Bool("history", payload.FetchHistory).
		Msg("Making stocks request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: status %d, body: %s", ErrUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
	}

	var raw []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return raw, nil
}
