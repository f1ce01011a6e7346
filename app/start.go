package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

// Start serves HTTP until ctx is canceled, then shuts down gracefully.
func (app *App) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         app.Config.Addr(),
		Handler:      app.Router(),
		ReadTimeout:  app.Config.HTTP.ReadTimeout,
		WriteTimeout: app.Config.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.InfoContext(ctx, "Starting HTTP server", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	return app.WaitForShutdown(srv)
}
