package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func TestRegisterRoutes(t *testing.T) {
	handler, _ := newTestHandler()
	router := chi.NewRouter()

	// Should not panic
	assert.NotPanics(t, func() {
		router.Route("/api", handler.RegisterRoutes)
	}, "RegisterRoutes should not panic")

	for _, method := range []string{"GET", "DELETE", "PATCH"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(method, "/api/stocks", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code, method)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/api/stocks", strings.NewReader(`{"symbols":["TCS.NS"]}`)))
	assert.Equal(t, http.StatusOK, w.Code)
}
