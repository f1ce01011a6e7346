//go:build integration

package scoreintegrationtests

import (
	"context"
	"io"
	"log/slog"
	"testing"

	scoreservice "github.com/Black-And-White-Club/snake-scoreboard/app/modules/score/application"
	scoredb "github.com/Black-And-White-Club/snake-scoreboard/app/modules/score/infrastructure/repositories"
	scoremigrations "github.com/Black-And-White-Club/snake-scoreboard/app/modules/score/infrastructure/repositories/migrations"
	scoremetrics "github.com/Black-And-White-Club/snake-scoreboard/internal/observability/metrics/score"
	"go.opentelemetry.io/otel/trace/noop"
)

type TestDeps struct {
	Ctx     context.Context
	Repo    *scoredb.BunRepository
	Service *scoreservice.ScoreService
}

// SetupTestScoreService migrates the schema, empties the scores table and
// builds a service on top of the shared container database.
func SetupTestScoreService(t *testing.T, limiter scoreservice.RateLimiter) TestDeps {
	t.Helper()
	ctx := context.Background()

	repo := scoredb.NewBunRepository(testDB, scoremigrations.Migrations)
	if err := repo.Init(ctx); err != nil {
		t.Fatalf("Failed to initialize score storage: %v", err)
	}
	if _, err := testDB.NewTruncateTable().Model((*scoredb.Score)(nil)).Exec(ctx); err != nil {
		t.Fatalf("Failed to truncate scores: %v", err)
	}

	service := scoreservice.NewScoreService(
		repo,
		limiter,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		scoremetrics.NewNoop(),
		noop.NewTracerProvider().Tracer("test_score_service"),
		testDB,
		scoreservice.Config{MaxLimit: 1000},
	)

	return TestDeps{Ctx: ctx, Repo: repo, Service: service}
}
