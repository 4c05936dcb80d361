package availability

import "errors"

var (
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = errors.New("not found")
	ErrNotAuthorized = errors.New("not authorized")
	ErrInvalidState  = errors.New("invalid status transition")

	// ErrConflict means the requested dates overlap an accepted
	// reservation or a blocked period. Store implementations must also
	// return it for storage-level uniqueness violations, so a lost race
	// looks the same as a failed pre-write check.
	ErrConflict = errors.New("requested dates are already accepted or blocked")
)
