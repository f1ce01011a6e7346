package scoredb

import (
	"context"

	scoredomain "github.com/Black-And-White-Club/snake-scoreboard/app/modules/score/domain"
	"github.com/uptrace/bun"
)

// Repository defines the contract for score persistence.
//
// The db argument lets the service run calls inside a transaction; nil means
// the repository's own connection. Backends without a SQL connection ignore it.
type Repository interface {
	// Init idempotently creates the persistent structure. It never removes data.
	Init(ctx context.Context) error

	// Append durably stores one entry and returns it with backend-assigned fields set.
	Append(ctx context.Context, db bun.IDB, entry *scoredomain.ScoreEntry) (*scoredomain.ScoreEntry, error)

	// Top returns at most limit entries in ranking order.
	Top(ctx context.Context, db bun.IDB, limit int) ([]scoredomain.ScoreEntry, error)
}
