// Package handlers provides HTTP handlers for historical data operations.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/stockfolio/internal/domain"
	"github.com/aristath/stockfolio/internal/modules/historical"
	"github.com/aristath/stockfolio/internal/modules/quotes"
)

// HistorySource exposes the daily bars currently held for a symbol.
// known is false for symbols that are not in the portfolio.
type HistorySource interface {
	History(symbol string) (bars []domain.HistoricalBar, known bool)
}

// Handler handles historical data HTTP requests
type Handler struct {
	source HistorySource
	log    zerolog.Logger
}

// NewHandler creates a new historical data handler
func NewHandler(source HistorySource, log zerolog.Logger) *Handler {
	return &Handler{
		source: source,
		log:    log.With().Str("handler", "historical").Logger(),
	}
}

// HandleGetHistory handles GET /api/historical/{symbol}
func (h *Handler) HandleGetHistory(w http.ResponseWriter, r *http.Request, symbol string) {
	bars, known := h.source.History(symbol)
	if !known {
		h.log.Debug().Str("symbol", symbol).Msg("History requested for unknown symbol")
		http.Error(w, "Symbol not found", http.StatusNotFound)
		return
	}

	limit := len(bars)
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsedLimit, err := strconv.Atoi(limitStr)
		if err != nil || parsedLimit <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = parsedLimit
	}

	bars = quotes.LatestBars(bars, limit)

	response := map[string]interface{}{
		"data": map[string]interface{}{
			"symbol":  symbol,
			"bars":    bars,
			"count":   len(bars),
			"summary": historical.Summarize(symbol, bars),
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}

	h.writeJSON(w, http.StatusOK, response)
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
