package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the quote boundary routes.
// Every method is routed so non-POST requests get the JSON 405 body.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.HandleFunc("/stocks", h.HandleStocks)
}
