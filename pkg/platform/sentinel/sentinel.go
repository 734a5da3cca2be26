package sentinel

import "errors"

// Sentinel errors for persistence facts. Stores return these (optionally
// wrapped) and services decide what they mean for the caller:
//   - ErrNotFound: no record with the requested key
//   - ErrConflict: a uniqueness constraint rejected the write
//   - ErrUnavailable: the backing store or cache cannot be reached
//
// Validation outcomes are never sentinel errors; see the question views.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
