// Package ui provides a small web front-end for the converter: a
// paste-and-convert page plus a JSON API. It replaces the desktop GUI
// of the original tool with a thin wrapper over the same conversion
// pipeline.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tosworks/sqf2tcl/internal/convert"
	"golang.org/x/sync/errgroup"
)

// Server is the web front-end server.
type Server struct {
	opts   convert.Options
	port   int
	logger *slog.Logger
}

// Config holds configuration for the server.
type Config struct {
	ConvertOptions convert.Options
	Port           int
	Logger         *slog.Logger
}

// NewServer creates a new server instance.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		opts:   cfg.ConvertOptions,
		port:   cfg.Port,
		logger: logger,
	}
}

// Serve starts the server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting converter UI", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	eg, egctx := errgroup.WithContext(ctx)

	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)
	s.routes(r)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down converter UI...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
