package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/phrazzld/todo-api/internal/config"
	"golang.org/x/sync/errgroup"
)

// runServe wires the application and serves HTTP until ctx is cancelled.
func runServe(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	app, err := newApplication(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.cleanup()

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.Port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", cfg.Server.Port, err)
	}
	return app.serve(ctx, ln)
}

// serve runs the HTTP server on ln and shuts it down gracefully once ctx is
// done. It returns nil after a clean shutdown.
func (app *application) serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           app.router(),
		ReadHeaderTimeout: 5 * time.Second,
		ErrorLog:          slog.NewLogLogger(app.logger.Handler(), slog.LevelError),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.logger.Info("server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		app.logger.Info("shutting down server")

		timeout := seconds(app.config.Server.ShutdownTimeoutSeconds)
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		app.logger.Info("server shutdown completed")
		return nil
	})

	return g.Wait()
}
