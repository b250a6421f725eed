package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/jackzampolin/promptshelf/internal/api"
	"github.com/jackzampolin/promptshelf/internal/catalog"
	"github.com/jackzampolin/promptshelf/internal/config"
	"github.com/jackzampolin/promptshelf/internal/generate"
	"github.com/jackzampolin/promptshelf/internal/home"
	"github.com/jackzampolin/promptshelf/internal/metrics"
	"github.com/jackzampolin/promptshelf/internal/prompts"
	"github.com/jackzampolin/promptshelf/internal/server/endpoints"
	"github.com/jackzampolin/promptshelf/internal/svcctx"
)

// Server is the promptshelf HTTP server. It serves one prompt library; the
// caller opens the library and closes it after Start returns.
type Server struct {
	httpServer *http.Server
	library    *prompts.Library
	configMgr  *config.Manager
	limiter    *rate.Limiter
	metrics    *metrics.Metrics
	logger     *slog.Logger

	// services holds all core services for context enrichment
	services *svcctx.Services

	// endpoints registry for HTTP routes
	endpointRegistry *api.Registry

	mu      sync.RWMutex
	running bool
}

// Config holds server configuration.
type Config struct {
	// Host is the address to bind to (default: 127.0.0.1)
	Host string
	// Port is the port to listen on (default: 8080)
	Port string
	// Library is the prompt library to serve. Endpoints that need it
	// answer 503 while it is nil.
	Library *prompts.Library
	// Generator drafts prompts for POST /api/generate.
	Generator generate.Generator
	// Catalog overrides the embedded builder catalog.
	Catalog *catalog.Catalog
	// Home is where single-prompt exports are written.
	Home *home.Dir
	// ConfigManager provides configuration with hot-reload support
	ConfigManager *config.Manager
	// Metrics receives HTTP and domain counters. Nil disables /metrics.
	Metrics *metrics.Metrics
	// Logger is the structured logger to use
	Logger *slog.Logger
}

// New creates a new Server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Catalog == nil {
		cfg.Catalog = catalog.Default()
	}

	s := &Server{
		library:   cfg.Library,
		configMgr: cfg.ConfigManager,
		metrics:   cfg.Metrics,
		logger:    cfg.Logger,
	}

	perMinute := 0
	if cfg.ConfigManager != nil {
		perMinute = cfg.ConfigManager.Get().Generation.RatePerMinute

		// Watch for config changes
		cfg.ConfigManager.OnChange(func(c *config.Config) {
			endpoints.SetGenerateRate(s.limiter, c.Generation.RatePerMinute)
			cfg.Logger.Info("generation rate limit reloaded from config",
				"per_minute", c.Generation.RatePerMinute)
		})
	}
	s.limiter = endpoints.NewGenerateLimiter(perMinute)

	s.services = &svcctx.Services{
		Library:   cfg.Library,
		Generator: cfg.Generator,
		Catalog:   cfg.Catalog,
		Home:      cfg.Home,
		Logger:    cfg.Logger,
		Metrics:   cfg.Metrics,
	}
	if cfg.ConfigManager != nil {
		s.services.Config = cfg.ConfigManager.Get
	}

	// Create endpoint registry and register all endpoints
	s.endpointRegistry = api.NewRegistry()
	for _, ep := range endpoints.All(endpoints.Config{GenerateLimiter: s.limiter}) {
		s.endpointRegistry.Register(ep)
	}

	// Set up HTTP server
	mux := http.NewServeMux()
	s.endpointRegistry.RegisterRoutes(mux, s.requireInit)

	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:      s.withRequestID(s.withServices(s.instrument(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute, // /api/generate sets its own deadline
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

// Start starts the HTTP server.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}
	s.running = true
	s.mu.Unlock()

	if s.library == nil {
		s.logger.Warn("starting without a prompt library; library endpoints will return 503")
	}

	// Start HTTP server in goroutine
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for context cancellation or error
	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			s.setNotRunning()
			return fmt.Errorf("HTTP server error: %w", err)
		}
	}

	return s.shutdown()
}

// shutdown performs graceful shutdown of the HTTP server.
func (s *Server) shutdown() error {
	s.logger.Info("shutting down server")

	// Shutdown HTTP server with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
	}

	s.setNotRunning()
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) setNotRunning() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// IsRunning returns whether the server is currently running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Library returns the served prompt library.
func (s *Server) Library() *prompts.Library {
	return s.library
}

// Addr returns the server's listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Handler returns the fully wrapped HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Endpoints returns the registered endpoints.
func (s *Server) Endpoints() []api.Endpoint {
	return s.endpointRegistry.Endpoints()
}

// withServices wraps a handler to enrich the request context with services.
func (s *Server) withServices(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if s.services != nil {
			ctx = svcctx.WithServices(ctx, s.services)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireInit is middleware that ensures the server is fully initialized.
// Returns 503 Service Unavailable if the prompt library isn't open.
func (s *Server) requireInit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.library == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":"server not fully initialized"}`))
			return
		}
		next(w, r)
	}
}
