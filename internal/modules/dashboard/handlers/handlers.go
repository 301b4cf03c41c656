// Package handlers provides HTTP handlers for the dashboard page, its JSON
// view and the websocket update stream.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/aristath/stockfolio/internal/modules/dashboard"
	"github.com/aristath/stockfolio/pkg/embedded"
)

const (
	pageTemplate    = "templates/dashboard.html"
	wsWriteTimeout  = 10 * time.Second
	wsPingInterval  = 30 * time.Second
	refreshDeadline = 30 * time.Second
)

// Handler handles dashboard HTTP requests
type Handler struct {
	dashboard *dashboard.Dashboard
	page      *template.Template
	log       zerolog.Logger
}

// NewHandler creates a new dashboard handler. It fails if the embedded page
// template cannot be parsed.
func NewHandler(d *dashboard.Dashboard, log zerolog.Logger) (*Handler, error) {
	page, err := template.New("dashboard.html").Funcs(template.FuncMap{
		"gainClass": func(gain bool) string {
			if gain {
				return "gain"
			}
			return "loss"
		},
		"formatTime": func(t *time.Time) string {
			if t == nil {
				return "never"
			}
			return t.Local().Format("15:04:05")
		},
	}).ParseFS(embedded.Files, pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dashboard template: %w", err)
	}

	return &Handler{
		dashboard: d,
		page:      page,
		log:       log.With().Str("handler", "dashboard").Logger(),
	}, nil
}

// HandleIndex handles GET / and renders the dashboard page
func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	view := h.dashboard.View(r.URL.Query().Get("sector"))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.page.Execute(w, view); err != nil {
		h.log.Error().Err(err).Msg("Failed to render dashboard page")
	}
}

// HandleGetDashboard handles GET /api/dashboard
func (h *Handler) HandleGetDashboard(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.dashboard.View(r.URL.Query().Get("sector")))
}

// HandleGetSectors handles GET /api/dashboard/sectors
func (h *Handler) HandleGetSectors(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"sectors": h.dashboard.Portfolio().Sectors(),
	})
}

// HandleRefresh handles POST /api/dashboard/refresh
func (h *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), refreshDeadline)
	defer cancel()

	result := h.dashboard.Refresh(ctx)

	status := http.StatusOK
	if result.Failed() {
		status = http.StatusBadGateway
	}
	h.writeJSON(w, status, result)
}

// HandleWebsocket handles GET /api/dashboard/ws. It sends the view for the
// requested sector on connect and again after every applied update.
func (h *Handler) HandleWebsocket(w http.ResponseWriter, r *http.Request) {
	sector := r.URL.Query().Get("sector")

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to accept websocket")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "unexpected close")

	// Client messages are not expected; CloseRead handles control frames and
	// cancels ctx when the peer goes away.
	ctx := conn.CloseRead(r.Context())

	updates, unsubscribe := h.dashboard.Subscribe()
	defer unsubscribe()

	h.log.Debug().Str("sector", sector).Msg("Websocket client connected")

	if err := h.push(ctx, conn, sector); err != nil {
		return
	}

	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.log.Debug().Msg("Websocket client disconnected")
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case <-updates:
			if err := h.push(ctx, conn, sector); err != nil {
				return
			}
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, wsWriteTimeout)
			err := conn.Ping(pingCtx)
			cancel()
			if err != nil {
				h.log.Debug().Err(err).Msg("Websocket ping failed")
				return
			}
		}
	}
}

func (h *Handler) push(ctx context.Context, conn *websocket.Conn, sector string) error {
	writeCtx, cancel := context.WithTimeout(ctx, wsWriteTimeout)
	defer cancel()

	if err := wsjson.Write(writeCtx, conn, h.dashboard.View(sector)); err != nil {
		h.log.Debug().Err(err).Msg("Failed to push dashboard view")
		return err
	}
	return nil
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
