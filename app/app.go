package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Black-And-White-Club/snake-scoreboard/app/modules/score"
	"github.com/Black-And-White-Club/snake-scoreboard/config"
	"github.com/Black-And-White-Club/snake-scoreboard/internal/db/bundb"
	"github.com/Black-And-White-Club/snake-scoreboard/internal/observability"
	"github.com/uptrace/bun"
)

// App wires configuration, storage and modules into one HTTP server.
type App struct {
	Config        *config.Config
	Observability observability.Observability
	ScoreModule   *score.Module

	db     *bun.DB
	router http.Handler
	logger *slog.Logger
}

// NewApp initializes the application with the necessary services and configuration.
func NewApp(ctx context.Context, cfg *config.Config, obs observability.Observability) (*App, error) {
	logger := obs.Provider.Logger

	db, err := bundb.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open score database: %w", err)
	}

	router := newRouter(obs)

	scoreModule, err := score.NewScoreModule(ctx, cfg, obs, db, router)
	if err != nil {
		if db != nil {
			db.Close()
		}
		return nil, fmt.Errorf("failed to initialize score module: %w", err)
	}

	return &App{
		Config:        cfg,
		Observability: obs,
		ScoreModule:   scoreModule,
		db:            db,
		router:        router,
		logger:        logger,
	}, nil
}

// Router returns the HTTP handler serving every route of the application.
func (app *App) Router() http.Handler {
	return app.router
}

// Close releases the modules and the database.
func (app *App) Close() error {
	if err := app.ScoreModule.Close(); err != nil {
		app.logger.Error("Failed to close score module", slog.Any("error", err))
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}
	return nil
}
