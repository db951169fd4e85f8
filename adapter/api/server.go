// Package api provides the HTTP API for whatsnext.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	activityCommands "github.com/manumorante/whats-next/internal/activities/application/commands"
	activityQueries "github.com/manumorante/whats-next/internal/activities/application/queries"
	suggestionQueries "github.com/manumorante/whats-next/internal/suggestions/application/queries"
	"github.com/manumorante/whats-next/pkg/observability"
)

// Handlers are the application handlers the API serves.
type Handlers struct {
	CreateActivity   *activityCommands.CreateActivityHandler
	UpdateActivity   *activityCommands.UpdateActivityHandler
	DeleteActivity   *activityCommands.DeleteActivityHandler
	CompleteActivity *activityCommands.CompleteActivityHandler
	ToggleActivity   *activityCommands.ToggleActivityHandler
	Contexts         *activityCommands.ContextHandler
	Categories       *activityCommands.CategoryHandler

	ListActivities  *activityQueries.ListActivitiesHandler
	GetActivity     *activityQueries.GetActivityHandler
	ListCompletions *activityQueries.ListCompletionsHandler
	ListContexts    *activityQueries.ListContextsHandler
	ListCategories  *activityQueries.ListCategoriesHandler

	GetSuggestions        *suggestionQueries.GetSuggestionsHandler
	GetActiveContexts     *suggestionQueries.GetActiveContextsHandler
	ActivitiesByTimeOfDay *suggestionQueries.ActivitiesByTimeOfDayHandler

	Health  *observability.HealthRegistry
	Metrics *observability.InMemoryMetrics
}

// Server is the HTTP API server.
type Server struct {
	mux      *http.ServeMux
	server   *http.Server
	logger   *slog.Logger
	handlers Handlers
	metrics  observability.Metrics
}

// ServerConfig holds configuration for the API server.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultServerConfig returns the default server configuration.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:         "127.0.0.1:8080",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// NewServer creates a new API server.
func NewServer(cfg ServerConfig, handlers Handlers, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		mux:      http.NewServeMux(),
		logger:   logger,
		handlers: handlers,
		metrics:  observability.NoopMetrics{},
	}
	if handlers.Metrics != nil {
		s.metrics = handlers.Metrics
	}

	s.registerRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// registerRoutes sets up the API routes.
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /metrics", s.handleMetrics)

	// Suggestions
	s.mux.HandleFunc("GET /api/suggestions", s.getSuggestions)
	s.mux.HandleFunc("GET /api/suggestions/time-of-day/{period}", s.getActivitiesByTimeOfDay)

	// Activities
	s.mux.HandleFunc("GET /api/activities", s.listActivities)
	s.mux.HandleFunc("POST /api/activities", s.createActivity)
	s.mux.HandleFunc("GET /api/activities/{id}", s.getActivity)
	s.mux.HandleFunc("PUT /api/activities/{id}", s.updateActivity)
	s.mux.HandleFunc("DELETE /api/activities/{id}", s.deleteActivity)
	s.mux.HandleFunc("POST /api/activities/{id}/complete", s.completeActivity)
	s.mux.HandleFunc("POST /api/activities/{id}/toggle", s.toggleActivity)
	s.mux.HandleFunc("GET /api/activities/{id}/completions", s.listCompletions)

	// Contexts
	s.mux.HandleFunc("GET /api/contexts", s.listContexts)
	s.mux.HandleFunc("POST /api/contexts", s.createContext)
	s.mux.HandleFunc("PUT /api/contexts/{id}", s.updateContext)
	s.mux.HandleFunc("DELETE /api/contexts/{id}", s.deleteContext)

	// Categories
	s.mux.HandleFunc("GET /api/categories", s.listCategories)
	s.mux.HandleFunc("POST /api/categories", s.createCategory)
	s.mux.HandleFunc("PUT /api/categories/{id}", s.updateCategory)
	s.mux.HandleFunc("DELETE /api/categories/{id}", s.deleteCategory)
}

// Handler returns the routes wrapped in the request middleware.
func (s *Server) Handler() http.Handler {
	return s.withRequestContext(s.mux)
}

// handleHealth reports the health of the store and the optional services.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.handlers.Health == nil {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": string(observability.HealthStatusHealthy),
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	health := s.handlers.Health.GetOverallHealth(r.Context())
	status := http.StatusOK
	if health.Status == observability.HealthStatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, health)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if s.handlers.Metrics == nil {
		writeError(w, http.StatusNotFound, "metrics are not enabled")
		return
	}
	writeJSON(w, http.StatusOK, s.handlers.Metrics.Snapshot())
}

// Start starts the API server.
func (s *Server) Start() error {
	s.logger.Info("starting API server",
		"addr", s.server.Addr,
	)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")
	return s.server.Shutdown(ctx)
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Log error but can't do much at this point
			slog.Error("failed to encode JSON response", "error", err)
		}
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error":   http.StatusText(status),
		"message": message,
	})
}
