package scoredomain

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MaxNameLength is the longest display name kept, in runes.
const MaxNameLength = 32

// TimestampLayout is used when the server stamps an entry.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

var isoPrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T`)

// NormalizeName trims a submitted name and cuts it to MaxNameLength runes.
// Missing or blank names become nil. Numbers are kept in their decimal form;
// any other JSON type is treated as missing.
func NormalizeName(raw any) *string {
	var s string
	switch v := raw.(type) {
	case string:
		s = v
	case json.Number:
		s = v.String()
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return nil
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if r := []rune(s); len(r) > MaxNameLength {
		s = strings.TrimSpace(string(r[:MaxNameLength]))
	}
	return &s
}

// CoerceScore converts a submitted score to a non-negative integer. Integral
// numbers and numeric strings are accepted, fractional numbers are truncated
// toward zero. Anything else, including negatives and out of range values,
// becomes 0.
func CoerceScore(raw any) int64 {
	var n int64
	switch v := raw.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			n = i
		} else if f, err := v.Float64(); err == nil {
			n = truncate(f)
		}
	case float64:
		n = truncate(v)
	case int:
		n = int64(v)
	case int64:
		n = v
	case string:
		if i, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			n = i
		}
	}
	if n < 0 {
		return 0
	}
	return n
}

func truncate(f float64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f <= math.MinInt64 {
		return 0
	}
	return int64(f)
}

// ValidTimestamp reports whether raw is a string starting with an ISO-8601
// date and the literal T separator.
func ValidTimestamp(raw any) bool {
	s, ok := raw.(string)
	return ok && isoPrefix.MatchString(s)
}

// NormalizeTimestamp returns raw verbatim when it is a valid client
// timestamp, otherwise now in UTC.
func NormalizeTimestamp(raw any, now time.Time) string {
	if ValidTimestamp(raw) {
		return raw.(string)
	}
	return now.UTC().Format(TimestampLayout)
}
