package scoreservice

import (
	"context"
	"fmt"

	scoredomain "github.com/Black-And-White-Club/snake-scoreboard/app/modules/score/domain"
	"github.com/Black-And-White-Club/snake-scoreboard/internal/observability/attr"
	"github.com/Black-And-White-Club/snake-scoreboard/internal/results"
	"github.com/uptrace/bun"
)

type submitResult = results.OperationResult[*scoredomain.ScoreEntry, error]

// SubmitScore rate-limits clientID, normalizes req and appends the entry.
// A rejected submission never reaches the repository.
func (s *ScoreService) SubmitScore(ctx context.Context, clientID string, req SubmitScoreRequest) (submitResult, error) {
	return withTelemetry(s, ctx, "SubmitScore", clientID, func(ctx context.Context) (submitResult, error) {
		if !s.limiter.Allow(clientID) {
			s.metrics.RecordSubmissionRejected(ctx, "rate_limited")
			return results.FailureResult[*scoredomain.ScoreEntry, error](ErrRateLimited), nil
		}

		entry := &scoredomain.ScoreEntry{
			Name:  scoredomain.NormalizeName(req.Name),
			Score: scoredomain.CoerceScore(req.Score),
			Ts:    scoredomain.NormalizeTimestamp(req.Ts, s.now()),
		}

		result, err := runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (submitResult, error) {
			stored, err := s.repo.Append(ctx, db, entry)
			if err != nil {
				return submitResult{}, fmt.Errorf("failed to append score: %w", err)
			}
			return results.SuccessResult[*scoredomain.ScoreEntry, error](stored), nil
		})
		if err != nil {
			s.metrics.RecordStorageError(ctx, "Append")
			return submitResult{}, err
		}

		s.metrics.RecordSubmissionAccepted(ctx)
		s.logger.InfoContext(ctx, "Score recorded",
			attr.ExtractCorrelationID(ctx),
			attr.String("client_id", clientID),
			attr.Int64("score", entry.Score),
		)
		return result, nil
	})
}
