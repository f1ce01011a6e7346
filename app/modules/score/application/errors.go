package scoreservice

import "errors"

// Domain errors for the score service.
// These are returned as failure results, not as errors; handlers map them to
// client-facing status codes.
var (
	// ErrRateLimited indicates the client has used up its submission window.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidLimit indicates a non-positive result limit.
	ErrInvalidLimit = errors.New("limit must be positive")
)
