package scoredb

import (
	"context"
	"fmt"

	scoredomain "github.com/Black-And-White-Club/snake-scoreboard/app/modules/score/domain"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

// BunRepository implements Repository on a single append-only SQL table.
// It works with any bun dialect; inserts are single statements, so concurrent
// writers are safe without extra locking.
type BunRepository struct {
	db         *bun.DB
	migrations *migrate.Migrations
}

// NewBunRepository creates a relational repository. migrations must contain
// the scores table migrations; Init applies them.
func NewBunRepository(db *bun.DB, migrations *migrate.Migrations) *BunRepository {
	return &BunRepository{db: db, migrations: migrations}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *BunRepository) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// Init creates bun's migration bookkeeping tables and applies any pending
// score migrations. Applied migrations are skipped, so repeated calls are no-ops.
func (r *BunRepository) Init(ctx context.Context) error {
	migrator := migrate.NewMigrator(r.db, r.migrations)
	if err := migrator.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize migration tables: %w", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate scores table: %w", err)
	}
	return nil
}

// Append inserts the entry and returns it with its generated id.
func (r *BunRepository) Append(ctx context.Context, db bun.IDB, entry *scoredomain.ScoreEntry) (*scoredomain.ScoreEntry, error) {
	db = r.resolveDB(db)
	row := &Score{
		Name:  entry.Name,
		Score: entry.Score,
		Ts:    entry.Ts,
	}
	if _, err := db.NewInsert().Model(row).Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to insert score: %w", err)
	}
	stored := row.toEntry()
	return &stored, nil
}

// Top returns the highest ranked rows. Exact ties on score and ts fall back
// to insertion order.
func (r *BunRepository) Top(ctx context.Context, db bun.IDB, limit int) ([]scoredomain.ScoreEntry, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	db = r.resolveDB(db)

	var rows []Score
	err := db.NewSelect().
		Model(&rows).
		OrderExpr("score DESC, ts ASC, id ASC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query top scores: %w", err)
	}

	entries := make([]scoredomain.ScoreEntry, 0, len(rows))
	for i := range rows {
		entries = append(entries, rows[i].toEntry())
	}
	return entries, nil
}

var _ Repository = (*BunRepository)(nil)
