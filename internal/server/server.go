// Package server defines the Server container shared by every layer of a
// chain service process.
//
// It owns the lifecycle of:
//   - configuration
//   - logger and the optional New Relic application
//   - Prometheus metrics
//   - the http.Server
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/deppfellow/service-chain/internal/config"
	loggerPkg "github.com/deppfellow/service-chain/internal/logger"
	"github.com/deppfellow/service-chain/internal/metrics"
)

// Server is the application container. It is not the HTTP server itself,
// it holds the shared resources handlers and middleware read from.
type Server struct {
	Config *config.Config
	Logger *zerolog.Logger

	// LoggerService holds the New Relic application, which may be nil.
	LoggerService *loggerPkg.LoggerService

	Metrics *metrics.Metrics

	// httpServer is configured in SetupHTTPServer and started in Start.
	httpServer *http.Server
}

// New constructs a Server. It does not bind anything.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	m, err := metrics.New(string(cfg.Primary.Service))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	return &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		Metrics:       m,
	}, nil
}

// SetupHTTPServer configures the http.Server around handler.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         s.Config.Server.BindAddress,
		Handler:      handler,
		ReadTimeout:  s.Config.Server.ReadTimeout,
		WriteTimeout: s.Config.Server.WriteTimeout,
		IdleTimeout:  s.Config.Server.IdleTimeout,
	}
}

// Start binds the listener and serves until Shutdown is called.
//
// http.ErrServerClosed is returned unchanged so callers can tell a graceful
// stop from a failure.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("service", string(s.Config.Primary.Service)).
		Str("env", s.Config.Primary.Env).
		Msgf("Up and running ... listening on %s", s.Config.Server.BindAddress)

	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting connections, waits for in-flight requests until
// ctx expires and flushes APM data.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	s.LoggerService.Shutdown()

	return nil
}
