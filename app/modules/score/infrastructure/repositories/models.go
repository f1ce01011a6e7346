package scoredb

import (
	scoredomain "github.com/Black-And-White-Club/snake-scoreboard/app/modules/score/domain"
	"github.com/uptrace/bun"
)

// Score is one row of the scores table.
type Score struct {
	bun.BaseModel `bun:"table:scores,alias:s"`

	ID    int64   `bun:"id,pk,autoincrement"`
	Name  *string `bun:"name"`
	Score int64   `bun:"score,notnull"`
	Ts    string  `bun:"ts,notnull"`
}

func (s *Score) toEntry() scoredomain.ScoreEntry {
	id := s.ID
	return scoredomain.ScoreEntry{
		ID:    &id,
		Name:  s.Name,
		Score: s.Score,
		Ts:    s.Ts,
	}
}
