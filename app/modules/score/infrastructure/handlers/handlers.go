package scorehandlers

import (
	"log/slog"

	scoreservice "github.com/Black-And-White-Club/snake-scoreboard/app/modules/score/application"
	scoremetrics "github.com/Black-And-White-Club/snake-scoreboard/internal/observability/metrics/score"
	"go.opentelemetry.io/otel/trace"
)

// MaxBodyBytes bounds the size of a score submission.
const MaxBodyBytes = 64 << 10

// Config holds HTTP-level score API settings.
type Config struct {
	DefaultLimit int
}

// ScoreHandlers implements the Handlers interface for the score API.
type ScoreHandlers struct {
	service scoreservice.Service
	metrics scoremetrics.ScoreMetrics
	logger  *slog.Logger
	tracer  trace.Tracer
	cfg     Config
}

// NewScoreHandlers creates a new ScoreHandlers instance.
func NewScoreHandlers(
	service scoreservice.Service,
	metrics scoremetrics.ScoreMetrics,
	logger *slog.Logger,
	tracer trace.Tracer,
	cfg Config,
) Handlers {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 10
	}
	if metrics == nil {
		metrics = scoremetrics.NewNoop()
	}
	return &ScoreHandlers{
		service: service,
		metrics: metrics,
		logger:  logger,
		tracer:  tracer,
		cfg:     cfg,
	}
}
