package scoredomain

import (
	"sort"
)

// ScoreEntry is one recorded run.
type ScoreEntry struct {
	// ID is assigned by relational backends and omitted by the document store.
	ID    *int64  `json:"id,omitempty"`
	Name  *string `json:"name"`
	Score int64   `json:"score"`
	Ts    string  `json:"ts"`
}

// Ranks reports whether a ranks ahead of b: higher score first, earlier
// timestamp first among equal scores. Timestamps compare as strings, which
// matches ORDER BY ts on the relational backends.
func Ranks(a, b ScoreEntry) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Ts < b.Ts
}

// SortEntries orders entries in place by ranking order. Entries that tie on
// both score and timestamp keep their relative order.
func SortEntries(entries []ScoreEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return Ranks(entries[i], entries[j])
	})
}

// TopN returns the first n entries of an already sorted slice.
func TopN(entries []ScoreEntry, n int) []ScoreEntry {
	if n < len(entries) {
		return entries[:n]
	}
	return entries
}
