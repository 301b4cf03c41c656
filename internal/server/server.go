// Package server provides the HTTP server and routing for the dashboard.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/aristath/stockfolio/internal/domain"
	"github.com/aristath/stockfolio/internal/modules/dashboard"
	dashboardhandlers "github.com/aristath/stockfolio/internal/modules/dashboard/handlers"
	historicalhandlers "github.com/aristath/stockfolio/internal/modules/historical/handlers"
	quotehandlers "github.com/aristath/stockfolio/internal/modules/quotes/handlers"
	"github.com/aristath/stockfolio/internal/scheduler"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// Config holds server configuration
type Config struct {
	Log       zerolog.Logger
	Port      int
	DevMode   bool
	Provider  domain.QuoteProvider
	Dashboard *dashboard.Dashboard
	Scheduler *scheduler.Scheduler // optional, reports the next refresh
}

// Server represents the HTTP server
type Server struct {
	router    *chi.Mux
	server    *http.Server
	log       zerolog.Logger
	port      int
	startedAt time.Time

	dashboard         *dashboard.Dashboard
	scheduler         *scheduler.Scheduler
	dashboardHandler  *dashboardhandlers.Handler
	quoteHandler      *quotehandlers.Handler
	historicalHandler *historicalhandlers.Handler
}

// New creates a new HTTP server
func New(cfg Config) (*Server, error) {
	dashboardHandler, err := dashboardhandlers.NewHandler(cfg.Dashboard, cfg.Log)
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:            chi.NewRouter(),
		log:               cfg.Log.With().Str("component", "server").Logger(),
		port:              cfg.Port,
		startedAt:         time.Now(),
		dashboard:         cfg.Dashboard,
		scheduler:         cfg.Scheduler,
		dashboardHandler:  dashboardHandler,
		quoteHandler:      quotehandlers.NewHandler(cfg.Provider, cfg.Log),
		historicalHandler: historicalhandlers.NewHandler(cfg.Dashboard, cfg.Log),
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Port),
		Handler:     s.router,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	return s, nil
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	// Recovery from panics
	s.router.Use(middleware.Recoverer)

	// Request ID
	s.router.Use(middleware.RequestID)

	// Real IP
	s.router.Use(middleware.RealIP)

	// Logging
	s.router.Use(s.loggingMiddleware)

	// CORS
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Compress responses
	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.dashboardHandler.RegisterPageRoutes(s.router)

	s.router.Route("/api", func(r chi.Router) {
		// Websocket stream lives outside the request timeout
		s.dashboardHandler.RegisterStreamRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))
			s.quoteHandler.RegisterRoutes(r)
			s.dashboardHandler.RegisterRoutes(r)
			s.historicalHandler.RegisterRoutes(r)
		})
	})
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	s.log.Info().Int("port", s.port).Msg("Starting HTTP server")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
