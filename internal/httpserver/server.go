package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/costcompass/costcompass/internal/config"
	"github.com/costcompass/costcompass/internal/httpserver/middleware"
	"github.com/costcompass/costcompass/internal/metrics"
	"github.com/costcompass/costcompass/internal/observability"
)

// Server represents the HTTP server.
type Server struct {
	config      config.ServerConfig
	handler     *Handler
	middlewares middleware.Middleware
	srv         *http.Server
}

// NewServer creates a new HTTP server.
func NewServer(
	cfg *config.ServerConfig,
	handler *Handler,
	middlewares middleware.Middleware,
) *Server {
	return &Server{
		config:      *cfg,
		handler:     handler,
		middlewares: middlewares,
		srv:         nil,
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	mux := http.NewServeMux()

	// Register routes.
	mux.HandleFunc("/api/calculate", s.handler.HandleCalculate)
	mux.HandleFunc("/api/cost-customizations/calculate", s.handler.HandleCustomization)
	mux.HandleFunc("/api/schedule-templates", s.handler.HandleScheduleTemplates)
	mux.HandleFunc("/api/pricing/cache/clear", s.handler.HandleCacheClear)
	mux.HandleFunc("/health", s.handler.HandleHealth)
	mux.Handle("/metrics", metrics.Handler())

	// Apply middleware chain.
	handlerWithMiddleware := s.middlewares(mux)

	// Create server with timeouts.
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      handlerWithMiddleware,
		ReadTimeout:  time.Duration(s.config.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.config.WriteTimeout) * time.Second,
	}

	ctx := context.Background()
	observability.FromContext(ctx).Info("starting HTTP server", observability.Int("port", s.config.Port))

	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	observability.FromContext(ctx).Info("shutting down HTTP server")

	if s.srv == nil {
		return nil
	}

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
