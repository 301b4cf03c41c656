// Package handlers provides HTTP handlers for the quote boundary.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aristath/stockfolio/internal/domain"
	"github.com/aristath/stockfolio/internal/modules/quotes"
)

// DefaultHistoryDays is used when a history request omits days
const DefaultHistoryDays = 60

// maxBodyBytes bounds the request body
const maxBodyBytes = 1 << 20

// StocksRequest is the body of POST /api/stocks
type StocksRequest struct {
	Symbols      []string `json:"symbols"`
	FetchHistory bool     `json:"fetchHistory"`
	Days         int      `json:"days"`
}

// Handler serves the quote boundary
type Handler struct {
	provider domain.QuoteProvider
	log      zerolog.Logger
}

// NewHandler creates a new quote handler
func NewHandler(provider domain.QuoteProvider, log zerolog.Logger) *Handler {
	return &Handler{
		provider: provider,
		log:      log.With().Str("handler", "stocks").Logger(),
	}
}

// HandleStocks handles POST /api/stocks
func (h *Handler) HandleStocks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	req, err := decodeRequest(r.Body)
	if err != nil {
		h.log.Debug().Err(err).Msg("Rejected stocks request")
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.FetchHistory {
		h.handleHistory(w, r, req)
		return
	}

	snapshots, err := h.provider.GetQuotes(r.Context(), req.Symbols)
	if err != nil {
		h.log.Error().Err(err).Int("symbols", len(req.Symbols)).Msg("Failed to get quotes")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, snapshots)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request, req StocksRequest) {
	histories, err := h.provider.GetHistory(r.Context(), req.Symbols, req.Days)
	if err != nil {
		h.log.Error().Err(err).Int("symbols", len(req.Symbols)).Int("days", req.Days).Msg("Failed to get history")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	for i := range histories {
		histories[i].History = quotes.LatestBars(histories[i].History, req.Days)
	}

	h.writeJSON(w, http.StatusOK, histories)
}

func decodeRequest(body io.Reader) (StocksRequest, error) {
	var req StocksRequest

	dec := json.NewDecoder(io.LimitReader(body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		return req, errors.New("invalid request body")
	}
	if req.Symbols == nil {
		return req, errors.New("symbols is required")
	}

	symbols := make([]string, 0, len(req.Symbols))
	for _, s := range req.Symbols {
		s = strings.TrimSpace(s)
		if s == "" {
			return req, errors.New("symbols must not contain empty entries")
		}
		symbols = append(symbols, s)
	}
	req.Symbols = symbols

	if req.Days < 0 {
		return req, errors.New("days must not be negative")
	}
	if req.Days > quotes.MaxHistoryDays {
		return req, fmt.Errorf("days must not exceed %d", quotes.MaxHistoryDays)
	}
	if req.FetchHistory && req.Days == 0 {
		req.Days = DefaultHistoryDays
	}

	return req, nil
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
