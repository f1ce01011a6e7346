package scoremigrations

import (
	"context"
	"fmt"

	scoredb "github.com/Black-And-White-Club/snake-scoreboard/app/modules/score/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewCreateIndex().
			Model((*scoredb.Score)(nil)).
			Index("idx_scores_ranking").
			ColumnExpr("score DESC, ts ASC").
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create ranking index on scores: %w", err)
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		if _, err := db.ExecContext(ctx, `DROP INDEX IF EXISTS idx_scores_ranking;`); err != nil {
			return fmt.Errorf("failed to drop ranking index on scores: %w", err)
		}
		return nil
	})
}
