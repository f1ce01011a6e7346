package scoredb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	scoredomain "github.com/Black-And-White-Club/snake-scoreboard/app/modules/score/domain"
	"github.com/uptrace/bun"
	"golang.org/x/sync/singleflight"
)

// DefaultMaxStore is the retention bound used when none is configured.
const DefaultMaxStore = 1000

const loadKey = "scores"

// JSONRepository keeps every entry in one JSON array on disk.
//
// Writes are read-modify-write cycles serialized by mu and published with an
// atomic rename, so readers never see a partial file. Concurrent reads share a
// single load through singleflight.
type JSONRepository struct {
	path     string
	maxStore int
	logger   *slog.Logger

	mu    sync.Mutex
	loads singleflight.Group
}

// NewJSONRepository creates a document store at path that retains at most
// maxStore entries, discarding the oldest first.
func NewJSONRepository(path string, maxStore int, logger *slog.Logger) *JSONRepository {
	if maxStore <= 0 {
		maxStore = DefaultMaxStore
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &JSONRepository{
		path:     path,
		maxStore: maxStore,
		logger:   logger,
	}
}

// Init creates the store file holding an empty array if it does not exist.
// An existing file is only checked for readability.
func (r *JSONRepository) Init(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := os.Stat(r.path); err == nil {
		if _, err := r.load(); err != nil {
			return err
		}
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat score store: %w", err)
	}

	if dir := filepath.Dir(r.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create score store directory: %w", err)
		}
	}
	if err := r.write([]scoredomain.ScoreEntry{}); err != nil {
		return err
	}
	r.logger.InfoContext(ctx, "Created score store", slog.String("path", r.path))
	return nil
}

// Append adds the entry at the end of the array, trims the oldest entries
// beyond the retention bound, and rewrites the file.
func (r *JSONRepository) Append(ctx context.Context, _ bun.IDB, entry *scoredomain.ScoreEntry) (*scoredomain.ScoreEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.load()
	if err != nil {
		return nil, err
	}

	stored := scoredomain.ScoreEntry{
		Name:  entry.Name,
		Score: entry.Score,
		Ts:    entry.Ts,
	}
	entries = append(entries, stored)
	if over := len(entries) - r.maxStore; over > 0 {
		entries = entries[over:]
		r.logger.DebugContext(ctx, "Trimmed score store", slog.Int("dropped", over))
	}

	if err := r.write(entries); err != nil {
		return nil, err
	}
	// A load that started before this write must not be shared with later readers.
	r.loads.Forget(loadKey)

	return &stored, nil
}

// Top loads the whole array, sorts it by ranking order and returns the first limit entries.
func (r *JSONRepository) Top(ctx context.Context, _ bun.IDB, limit int) ([]scoredomain.ScoreEntry, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	v, err, _ := r.loads.Do(loadKey, func() (any, error) {
		return r.load()
	})
	if err != nil {
		return nil, err
	}

	// Callers sharing a load get the same slice; sort a private copy.
	shared := v.([]scoredomain.ScoreEntry)
	entries := make([]scoredomain.ScoreEntry, len(shared))
	copy(entries, shared)

	scoredomain.SortEntries(entries)
	return scoredomain.TopN(entries, limit), nil
}

// load reads the store. A missing file reads as empty.
func (r *JSONRepository) load() ([]scoredomain.ScoreEntry, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []scoredomain.ScoreEntry{}, nil
		}
		return nil, fmt.Errorf("failed to read score store: %w", err)
	}

	var entries []scoredomain.ScoreEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptStore, r.path, err)
	}
	if entries == nil {
		entries = []scoredomain.ScoreEntry{}
	}
	for i := range entries {
		// ids are never stored in the document format
		entries[i].ID = nil
	}
	return entries, nil
}

// write replaces the store file atomically.
func (r *JSONRepository) write(entries []scoredomain.ScoreEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode score store: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".scores-*.json.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp score store: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("failed to write score store: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("failed to sync score store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to close score store: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		cleanup()
		return fmt.Errorf("failed to replace score store: %w", err)
	}
	return nil
}

var _ Repository = (*JSONRepository)(nil)
