package scoreservice

import (
	"context"
	"fmt"
	"strconv"

	scoredomain "github.com/Black-And-White-Club/snake-scoreboard/app/modules/score/domain"
	"github.com/Black-And-White-Club/snake-scoreboard/internal/results"
)

type topResult = results.OperationResult[[]scoredomain.ScoreEntry, error]

// GetTopScores returns up to limit entries, best first. Limits above the
// configured maximum are clamped.
func (s *ScoreService) GetTopScores(ctx context.Context, limit int) (topResult, error) {
	return withTelemetry(s, ctx, "GetTopScores", strconv.Itoa(limit), func(ctx context.Context) (topResult, error) {
		if limit <= 0 {
			return results.FailureResult[[]scoredomain.ScoreEntry, error](ErrInvalidLimit), nil
		}
		if s.cfg.MaxLimit > 0 && limit > s.cfg.MaxLimit {
			limit = s.cfg.MaxLimit
		}

		// Single read; no transaction needed.
		entries, err := s.repo.Top(ctx, nil, limit)
		if err != nil {
			s.metrics.RecordStorageError(ctx, "Top")
			return topResult{}, fmt.Errorf("failed to load top scores: %w", err)
		}
		if entries == nil {
			entries = []scoredomain.ScoreEntry{}
		}
		return results.SuccessResult[[]scoredomain.ScoreEntry, error](entries), nil
	})
}
