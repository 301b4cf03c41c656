package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/aristath/stockfolio/internal/domain"
	"github.com/aristath/stockfolio/internal/modules/dashboard"
	"github.com/aristath/stockfolio/internal/modules/portfolio"
	testutil "github.com/aristath/stockfolio/internal/testing"
)

func newTestHandler(t *testing.T) (*Handler, *dashboard.Dashboard, *testutil.MockFetcher) {
	t.Helper()

	logger := zerolog.New(nil).Level(zerolog.Disabled)
	fetcher := testutil.NewMockFetcher()
	service := portfolio.NewPortfolioService(testutil.NewHoldingFixtures(), portfolio.PercentOfFiltered, logger)
	d := dashboard.New(dashboard.Config{
		Portfolio:   service,
		Fetcher:     fetcher,
		HistoryDays: 60,
		Log:         logger,
	})

	handler, err := NewHandler(d, logger)
	require.NoError(t, err)
	return handler, d, fetcher
}

func TestHandleIndex(t *testing.T) {
	handler, d, _ := newTestHandler(t)
	pe := 28.5
	d.ReplaceQuotes(d.NextGeneration(), map[string]domain.LiveQuote{
		"TCS.NS":  {CMP: decimal.NewFromInt(3300), PERatio: &pe, LatestEarnings: "Jul 24 2026"},
		"INFY.NS": {CMP: decimal.NewFromInt(1400)},
	})

	tests := []struct {
		name        string
		query       string
		contains    []string
		notContains []string
	}{
		{
			name:     "all sectors",
			query:    "",
			contains: []string{"Tata Consultancy Services", "Reliance Industries", `<option value="All Sectors" selected>`, "28.50", "Jul 24 2026", `class="gain">300.00`, `class="loss">-200.00`},
		},
		{
			name:        "tech only",
			query:       "?sector=Tech",
			contains:    []string{"Infosys", `<option value="Tech" selected>`, "50.00%"},
			notContains: []string{"Reliance Industries"},
		},
		{
			name:     "unknown sector",
			query:    "?sector=Healthcare",
			contains: []string{"No holdings in this sector."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/"+tt.query, nil)
			w := httptest.NewRecorder()

			handler.HandleIndex(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
			body := w.Body.String()
			for _, s := range tt.contains {
				assert.Contains(t, body, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, body, s)
			}
		})
	}
}

func TestHandleGetDashboard(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	req := httptest.NewRequest("GET", "/api/dashboard?sector=Energy", nil)
	w := httptest.NewRecorder()

	handler.HandleGetDashboard(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var view dashboard.View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "Energy", view.SelectedSector)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, "RELIANCE.NS", view.Rows[0].Symbol)
	assert.Equal(t, 100.0, view.Rows[0].PortfolioPercent)
	assert.Equal(t, "-", view.Rows[0].Display.PERatio)
}

func TestHandleGetSectors(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	req := httptest.NewRequest("GET", "/api/dashboard/sectors", nil)
	w := httptest.NewRecorder()

	handler.HandleGetSectors(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"sectors":["All Sectors","Energy","Tech"]}`, w.Body.String())
}

func TestHandleRefresh(t *testing.T) {
	handler, d, fetcher := newTestHandler(t)
	fetcher.SetQuotes(map[string]domain.LiveQuote{"TCS.NS": {CMP: decimal.NewFromInt(1)}})

	req := httptest.NewRequest("POST", "/api/dashboard/refresh", nil)
	w := httptest.NewRecorder()

	handler.HandleRefresh(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var result dashboard.RefreshResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.NotEmpty(t, result.ID)
	assert.True(t, result.Quotes.OK)
	assert.Len(t, d.Quotes(), 1)
}

func TestHandleRefresh_BothFetchesFail(t *testing.T) {
	handler, _, fetcher := newTestHandler(t)
	fetcher.SetQuotesError(errors.New("down"))
	fetcher.SetHistoryError(errors.New("down"))

	req := httptest.NewRequest("POST", "/api/dashboard/refresh", nil)
	w := httptest.NewRecorder()

	handler.HandleRefresh(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)

	var result dashboard.RefreshResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "down", result.Quotes.Error)
	assert.Equal(t, "down", result.History.Error)
}

func TestHandleWebsocket(t *testing.T) {
	handler, d, _ := newTestHandler(t)

	router := chi.NewRouter()
	router.Route("/api", handler.RegisterStreamRoutes)
	server := httptest.NewServer(router)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/dashboard/ws?sector=Tech"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	var initial dashboard.View
	require.NoError(t, wsjson.Read(ctx, conn, &initial))
	assert.Equal(t, "Tech", initial.SelectedSector)
	require.Len(t, initial.Rows, 2)
	assert.False(t, initial.Rows[0].HasQuote)

	d.ReplaceQuotes(d.NextGeneration(), map[string]domain.LiveQuote{
		"TCS.NS": {CMP: decimal.NewFromInt(3300)},
	})

	var updated dashboard.View
	require.NoError(t, wsjson.Read(ctx, conn, &updated))
	require.Len(t, updated.Rows, 2)
	assert.True(t, updated.Rows[0].HasQuote)
	assert.Equal(t, 3300.0, updated.Rows[0].CMP)
}
