package score

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	scoreservice "github.com/Black-And-White-Club/snake-scoreboard/app/modules/score/application"
	scorehandlers "github.com/Black-And-White-Club/snake-scoreboard/app/modules/score/infrastructure/handlers"
	scoredb "github.com/Black-And-White-Club/snake-scoreboard/app/modules/score/infrastructure/repositories"
	scoremigrations "github.com/Black-And-White-Club/snake-scoreboard/app/modules/score/infrastructure/repositories/migrations"
	scorerouter "github.com/Black-And-White-Club/snake-scoreboard/app/modules/score/infrastructure/router"
	"github.com/Black-And-White-Club/snake-scoreboard/config"
	"github.com/Black-And-White-Club/snake-scoreboard/internal/observability"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
	"golang.org/x/time/rate"
)

// Module represents the score module.
type Module struct {
	ScoreService scoreservice.Service
	Repository   scoredb.Repository
	handlers     scorehandlers.Handlers
	router       *scorerouter.Router
	logger       *slog.Logger
	config       *config.Config
}

// NewScoreModule builds the score module on the configured backend, initializes
// its storage and registers its routes on httpRouter. db must be non-nil for
// the relational backends and is ignored by the json backend.
func NewScoreModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	db *bun.DB,
	httpRouter chi.Router,
) (*Module, error) {
	logger := obs.Provider.Logger
	tracer := obs.Registry.Tracer
	metrics := obs.Registry.ScoreMetrics

	logger.InfoContext(ctx, "Initializing score module", slog.String("backend", cfg.Storage.Backend))

	repo, txDB, err := newRepository(cfg, db, logger)
	if err != nil {
		return nil, err
	}
	if err := repo.Init(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize score storage: %w", err)
	}

	var limiter scoreservice.RateLimiter
	if cfg.Scores.RateLimit.Enabled {
		limiter = scoreservice.NewSlidingWindowLimiter(cfg.Scores.RateLimit.Window, cfg.Scores.RateLimit.MaxPerWindow, time.Now)
	} else {
		limiter = scoreservice.AllowAll()
	}

	service := scoreservice.NewScoreService(
		repo,
		limiter,
		logger,
		metrics,
		tracer,
		txDB,
		scoreservice.Config{MaxLimit: cfg.Scores.MaxLimit},
	)

	handlers := scorehandlers.NewScoreHandlers(service, metrics, logger, tracer, scorehandlers.Config{
		DefaultLimit: cfg.Scores.DefaultLimit,
	})

	var ipLimiter *scorehandlers.IPRateLimiter
	if cfg.HTTP.RequestsPerSecond > 0 {
		ipLimiter = scorehandlers.NewIPRateLimiter(rate.Limit(cfg.HTTP.RequestsPerSecond), cfg.HTTP.Burst)
	}
	router := scorerouter.NewRouter(handlers, ipLimiter)
	if httpRouter != nil {
		router.Register(httpRouter)
	}

	return &Module{
		ScoreService: service,
		Repository:   repo,
		handlers:     handlers,
		router:       router,
		logger:       logger,
		config:       cfg,
	}, nil
}

// newRepository selects the storage backend. The returned bun.DB is the one
// the service should open transactions on, nil for the json backend.
func newRepository(cfg *config.Config, db *bun.DB, logger *slog.Logger) (scoredb.Repository, *bun.DB, error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite, config.BackendPostgres:
		if db == nil {
			return nil, nil, fmt.Errorf("storage backend %q requires a database", cfg.Storage.Backend)
		}
		return scoredb.NewBunRepository(db, scoremigrations.Migrations), db, nil
	case config.BackendJSON:
		return scoredb.NewJSONRepository(cfg.Storage.JSONPath, cfg.Storage.MaxStore, logger), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// Close releases module resources. The database is owned by the caller.
func (m *Module) Close() error {
	m.logger.Info("Score module stopped")
	return nil
}
