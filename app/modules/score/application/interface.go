package scoreservice

import (
	"context"

	scoredomain "github.com/Black-And-White-Club/snake-scoreboard/app/modules/score/domain"
	"github.com/Black-And-White-Club/snake-scoreboard/internal/results"
)

// SubmitScoreRequest is an untrusted submission. Fields hold decoded JSON
// values (json.Number for numbers) and may be nil when absent.
type SubmitScoreRequest struct {
	Name  any
	Score any
	Ts    any
}

// Service defines the interface for the ScoreService.
type Service interface {
	// SubmitScore normalizes a submission from clientID and stores it unless
	// the client is over its rate limit.
	SubmitScore(ctx context.Context, clientID string, req SubmitScoreRequest) (results.OperationResult[*scoredomain.ScoreEntry, error], error)

	// GetTopScores returns up to limit entries in ranking order.
	GetTopScores(ctx context.Context, limit int) (results.OperationResult[[]scoredomain.ScoreEntry, error], error)
}
