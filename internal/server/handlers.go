package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shirou/gopsutil/v3/mem"

	"github.com/aristath/stockfolio/internal/modules/dashboard"
)

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":         "healthy",
		"version":        Version,
		"service":        "stockfolio",
		"uptime_seconds": int64(time.Since(s.startedAt).Seconds()),
		"holdings":       len(s.dashboard.Portfolio().Holdings()),
	}

	if last := s.dashboard.LastRefresh(); last != nil {
		response["last_refresh"] = map[string]interface{}{
			"id":         last.ID,
			"started_at": last.StartedAt.Format(time.RFC3339),
			"quotes_ok":  last.Quotes.OK,
			"history_ok": last.History.OK,
		}
	}

	if s.scheduler != nil {
		if next, ok := s.scheduler.NextRun(dashboard.RefreshJobName); ok {
			response["next_refresh"] = next.Format(time.RFC3339)
		}
	}

	// Get memory statistics (instant, no blocking)
	if memStat, err := mem.VirtualMemory(); err != nil {
		s.log.Warn().Err(err).Msg("Failed to get memory statistics")
	} else {
		response["memory_used_percent"] = memStat.UsedPercent
	}

	s.writeJSON(w, http.StatusOK, response)
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
