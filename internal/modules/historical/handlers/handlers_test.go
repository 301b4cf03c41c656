package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/stockfolio/internal/domain"
	testutil "github.com/aristath/stockfolio/internal/testing"
)

type stubHistorySource map[string][]domain.HistoricalBar

func (s stubHistorySource) History(symbol string) ([]domain.HistoricalBar, bool) {
	bars, ok := s[symbol]
	return bars, ok
}

func newTestHandler() *Handler {
	source := stubHistorySource{
		"TCS.NS":  testutil.NewHistoryFixtures(60, "TCS.NS")[0].History,
		"INFY.NS": nil,
	}
	return NewHandler(source, zerolog.New(nil).Level(zerolog.Disabled))
}

func TestHandleGetHistory(t *testing.T) {
	handler := newTestHandler()

	tests := []struct {
		name           string
		symbol         string
		queryParams    string
		expectedStatus int
		expectedCount  int
	}{
		{
			name:           "all bars",
			symbol:         "TCS.NS",
			expectedStatus: http.StatusOK,
			expectedCount:  60,
		},
		{
			name:           "with limit",
			symbol:         "TCS.NS",
			queryParams:    "?limit=10",
			expectedStatus: http.StatusOK,
			expectedCount:  10,
		},
		{
			name:           "held but not fetched yet",
			symbol:         "INFY.NS",
			expectedStatus: http.StatusOK,
			expectedCount:  0,
		},
		{
			name:           "unknown symbol",
			symbol:         "NOPE",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "invalid limit",
			symbol:         "TCS.NS",
			queryParams:    "?limit=abc",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "zero limit",
			symbol:         "TCS.NS",
			queryParams:    "?limit=0",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/historical/"+tt.symbol+tt.queryParams, nil)
			w := httptest.NewRecorder()

			handler.HandleGetHistory(w, req, tt.symbol)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var response struct {
				Data struct {
					Symbol  string                 `json:"symbol"`
					Bars    []domain.HistoricalBar `json:"bars"`
					Count   int                    `json:"count"`
					Summary map[string]interface{} `json:"summary"`
				} `json:"data"`
				Metadata map[string]interface{} `json:"metadata"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

			assert.Equal(t, tt.symbol, response.Data.Symbol)
			assert.Equal(t, tt.expectedCount, response.Data.Count)
			assert.Len(t, response.Data.Bars, tt.expectedCount)
			assert.Equal(t, float64(tt.expectedCount), response.Data.Summary["points"])
			assert.NotEmpty(t, response.Metadata["timestamp"])
		})
	}
}

func TestHandleGetHistory_LimitKeepsMostRecent(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest("GET", "/api/historical/TCS.NS?limit=3", nil)
	w := httptest.NewRecorder()

	handler.HandleGetHistory(w, req, "TCS.NS")

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	summary := response["data"]["summary"].(map[string]interface{})
	assert.Equal(t, 157.0, summary["firstClose"])
	assert.Equal(t, 159.0, summary["lastClose"])
}
