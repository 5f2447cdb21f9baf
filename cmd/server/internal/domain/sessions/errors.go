package sessions

import "errors"

// Error definitions
var (
	// ErrInvalidTransition marks a session status change that would move backwards.
	ErrInvalidTransition = errors.New("invalid session status transition")

	// ErrUnknownStatus marks a status value outside the pending/joined/ended set.
	ErrUnknownStatus = errors.New("unknown session status")
)
