package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterPageRoutes registers the HTML page
func (h *Handler) RegisterPageRoutes(r chi.Router) {
	r.Get("/", h.HandleIndex)
}

// RegisterRoutes registers the dashboard JSON routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard", h.HandleGetDashboard)
	r.Get("/dashboard/sectors", h.HandleGetSectors)
	r.Post("/dashboard/refresh", h.HandleRefresh)
}

// RegisterStreamRoutes registers the long-lived websocket route. It must be
// mounted outside any request timeout middleware.
func (h *Handler) RegisterStreamRoutes(r chi.Router) {
	r.Get("/dashboard/ws", h.HandleWebsocket)
}
