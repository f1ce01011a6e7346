package scoredb

import "errors"

// Sentinel errors for the repository layer.
var (
	// ErrInvalidLimit is returned by Top for a non-positive limit. Callers are
	// expected to validate first; this guards the storage query itself.
	ErrInvalidLimit = errors.New("limit must be positive")

	// ErrCorruptStore indicates the document store file could not be decoded.
	// The file is left untouched so it can be inspected.
	ErrCorruptStore = errors.New("score store is corrupt")
)
