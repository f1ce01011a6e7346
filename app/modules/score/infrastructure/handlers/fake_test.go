package scorehandlers

import (
	"context"

	scoreservice "github.com/Black-And-White-Club/snake-scoreboard/app/modules/score/application"
	scoredomain "github.com/Black-And-White-Club/snake-scoreboard/app/modules/score/domain"
	"github.com/Black-And-White-Club/snake-scoreboard/internal/results"
)

// FakeService is a programmable scoreservice.Service.
type FakeService struct {
	SubmitScoreFunc  func(ctx context.Context, clientID string, req scoreservice.SubmitScoreRequest) (results.OperationResult[*scoredomain.ScoreEntry, error], error)
	GetTopScoresFunc func(ctx context.Context, limit int) (results.OperationResult[[]scoredomain.ScoreEntry, error], error)

	SubmitCalls []scoreservice.SubmitScoreRequest
	ClientIDs   []string
	Limits      []int
}

func (f *FakeService) SubmitScore(ctx context.Context, clientID string, req scoreservice.SubmitScoreRequest) (results.OperationResult[*scoredomain.ScoreEntry, error], error) {
	f.SubmitCalls = append(f.SubmitCalls, req)
	f.ClientIDs = append(f.ClientIDs, clientID)
	if f.SubmitScoreFunc != nil {
		return f.SubmitScoreFunc(ctx, clientID, req)
	}
	return results.SuccessResult[*scoredomain.ScoreEntry, error](&scoredomain.ScoreEntry{Ts: "2024-01-01T00:00:00Z"}), nil
}

func (f *FakeService) GetTopScores(ctx context.Context, limit int) (results.OperationResult[[]scoredomain.ScoreEntry, error], error) {
	f.Limits = append(f.Limits, limit)
	if f.GetTopScoresFunc != nil {
		return f.GetTopScoresFunc(ctx, limit)
	}
	return results.SuccessResult[[]scoredomain.ScoreEntry, error]([]scoredomain.ScoreEntry{}), nil
}

var _ scoreservice.Service = (*FakeService)(nil)
