package app

import (
	"context"
	"fmt"
	"net/http"
)

// WaitForShutdown stops srv, letting in-flight requests finish within the
// configured shutdown timeout.
func (app *App) WaitForShutdown(srv *http.Server) error {
	app.logger.Info("Shutting down HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), app.Config.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	app.logger.Info("HTTP server stopped")
	return nil
}
