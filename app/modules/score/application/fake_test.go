package scoreservice

import (
	"context"
	"sync"

	scoredomain "github.com/Black-And-White-Club/snake-scoreboard/app/modules/score/domain"
	scoredb "github.com/Black-And-White-Club/snake-scoreboard/app/modules/score/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Score Repo
// ------------------------

// FakeScoreRepository provides a programmable stub for the scoredb.Repository interface.
type FakeScoreRepository struct {
	mu    sync.Mutex
	trace []string

	InitFunc   func(ctx context.Context) error
	AppendFunc func(ctx context.Context, db bun.IDB, entry *scoredomain.ScoreEntry) (*scoredomain.ScoreEntry, error)
	TopFunc    func(ctx context.Context, db bun.IDB, limit int) ([]scoredomain.ScoreEntry, error)

	Appended  []scoredomain.ScoreEntry
	LastLimit int
}

// NewFakeScoreRepository initializes a new FakeScoreRepository with an empty trace.
func NewFakeScoreRepository() *FakeScoreRepository {
	return &FakeScoreRepository{
		trace: []string{},
	}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeScoreRepository) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeScoreRepository) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

// --- Repository Interface Implementation ---

func (f *FakeScoreRepository) Init(ctx context.Context) error {
	f.record("Init")
	if f.InitFunc != nil {
		return f.InitFunc(ctx)
	}
	return nil
}

func (f *FakeScoreRepository) Append(ctx context.Context, db bun.IDB, entry *scoredomain.ScoreEntry) (*scoredomain.ScoreEntry, error) {
	f.record("Append")
	if f.AppendFunc != nil {
		return f.AppendFunc(ctx, db, entry)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Appended = append(f.Appended, *entry)
	stored := *entry
	return &stored, nil
}

func (f *FakeScoreRepository) Top(ctx context.Context, db bun.IDB, limit int) ([]scoredomain.ScoreEntry, error) {
	f.record("Top")
	f.mu.Lock()
	f.LastLimit = limit
	f.mu.Unlock()
	if f.TopFunc != nil {
		return f.TopFunc(ctx, db, limit)
	}
	return []scoredomain.ScoreEntry{}, nil
}

// Ensure the fake actually satisfies the interface
var _ scoredb.Repository = (*FakeScoreRepository)(nil)

// ------------------------
// Fake Limiter
// ------------------------

// FakeLimiter answers Allow from AllowFunc and counts calls.
type FakeLimiter struct {
	AllowFunc func(key string) bool
	Calls     []string
}

func (f *FakeLimiter) Allow(key string) bool {
	f.Calls = append(f.Calls, key)
	if f.AllowFunc != nil {
		return f.AllowFunc(key)
	}
	return true
}

var _ RateLimiter = (*FakeLimiter)(nil)
