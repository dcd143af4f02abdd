package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"logveil-hq/logveil/pkg/telemetry/metrics"
)

// Config contains configuration for the ops server.
type Config struct {
	// ListenAddress is the host:port to bind.
	ListenAddress string

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration
}

// Health is reported by the /healthz endpoint.
type Health struct {
	Status     string `json:"status"`
	PolicyPath string `json:"policy_path"`
	RuleCount  int    `json:"rule_count"`
}

// Server is the operational HTTP server exposing /metrics and
// /healthz.
type Server struct {
	config       *Config
	metrics      *metrics.Metrics
	health       func() Health
	httpServer   *http.Server
	listener     net.Listener
	logger       *slog.Logger
	shutdownOnce sync.Once
	mu           sync.Mutex
	isRunning    bool
}

// NewServer creates a new ops server. The health callback supplies the
// /healthz payload; it must be safe for concurrent use.
func NewServer(cfg *Config, m *metrics.Metrics, health func() Health) *Server {
	return &Server{
		config:  cfg,
		metrics: m,
		health:  health,
		logger:  slog.Default().With("component", "server"),
	}
}

// Start binds the listener and begins serving in the background. It
// returns once the listener is bound, so a failed bind surfaces here
// rather than in a goroutine.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("server is already running")
	}

	listener, err := net.Listen("tcp", s.config.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to bind %s: %w", s.config.ListenAddress, err)
	}
	s.listener = listener

	s.httpServer = &http.Server{
		Handler:      s.setupRoutes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		s.logger.Info("ops server listening", "address", listener.Addr().String())
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.Error("ops server error", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()
		s.Shutdown(context.Background())
	}()

	s.isRunning = true
	return nil
}

// Addr returns the bound listener address, useful when the configured
// port is 0.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		running := s.isRunning
		s.isRunning = false
		s.mu.Unlock()
		if !running {
			return
		}

		timeout := s.config.ShutdownTimeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("error during ops server shutdown", "error", err)
			shutdownErr = fmt.Errorf("ops server shutdown error: %w", err)
		}

		s.logger.Info("ops server stopped")
	})

	return shutdownErr
}

// setupRoutes configures the HTTP routes.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", s.metrics.Handler())
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := Health{Status: "ok"}
	if s.health != nil {
		health = s.health()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(health); err != nil {
		s.logger.Error("failed to encode health response", "error", err)
	}
}
