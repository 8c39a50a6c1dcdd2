package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/veridian-labs/regent/internal/config"
	"github.com/veridian-labs/regent/pkg/lifecycle"
)

// listener wraps the stdlib HTTP server with lifecycle-aware shutdown:
// once the coordinator's context is cancelled, in-flight requests get
// the configured drain window before the socket closes.
type listener struct {
	srv     *http.Server
	logger  *slog.Logger
	drainIn time.Duration
}

func newListener(cfg *config.ServerConfig, handler http.Handler, logger *slog.Logger) *listener {
	return &listener{
		srv: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeoutDuration(),
			WriteTimeout: cfg.WriteTimeoutDuration(),
		},
		logger:  logger.With("system", "http"),
		drainIn: cfg.ShutdownTimeoutDuration(),
	}
}

func (l *listener) Start(lc *lifecycle.Coordinator) error {
	go func() {
		l.logger.Info("server listening", "addr", l.srv.Addr)
		if err := l.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.logger.Error("server error", "error", err)
		}
	}()

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		l.logger.Info("shutting down server")

		ctx, cancel := context.WithTimeout(context.Background(), l.drainIn)
		defer cancel()

		if err := l.srv.Shutdown(ctx); err != nil {
			l.logger.Error("server shutdown error", "error", err)
			return
		}
		l.logger.Info("server shutdown complete")
	})

	return nil
}
