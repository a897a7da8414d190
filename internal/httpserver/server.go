package httpserver

import (
	"context"
	"net/http"
	"time"

	"log/slog"

	"authcore/internal/config"
)

// Server wraps http.Server with the timeouts and shutdown grace the
// service was configured with.
type Server struct {
	server *http.Server
	grace  time.Duration
	logger *slog.Logger
}

func New(cfg config.Config, handler http.Handler, logger *slog.Logger) *Server {
	return &Server{
		server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      handler,
			ReadTimeout:  cfg.HTTPReadTimeout,
			WriteTimeout: cfg.HTTPWriteTimeout,
			IdleTimeout:  cfg.HTTPIdleTimeout,
		},
		grace:  cfg.ShutdownGrace,
		logger: logger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("listening", "addr", s.server.Addr, "api_version", APIVersion)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests, waiting at most the configured
// grace period.
func (s *Server) Shutdown() error {
	s.logger.Info("shutting down", "grace", s.grace)
	ctx, cancel := context.WithTimeout(context.Background(), s.grace)
	defer cancel()
	return s.server.Shutdown(ctx)
}
