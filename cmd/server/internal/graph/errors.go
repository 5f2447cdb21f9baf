package graph

import (
	"errors"
	"fmt"
)

// ErrMeetingURLRequired marks a join request without a meeting reference.
var ErrMeetingURLRequired = errors.New("meeting_url is required")

// AuthError reports that the identity provider rejected the client
// credentials or was unreachable. It is not retried beyond the provider's
// single transient-failure retry; a persistent AuthError is a configuration
// problem.
type AuthError struct {
	Op    string
	Cause error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth failed (%s): %v", e.Op, e.Cause)
}

func (e *AuthError) Unwrap() error {
	return e.Cause
}

// PlatformError carries the conferencing platform's non-2xx response to a
// call-join request. Join requests are not idempotent against the platform,
// so a PlatformError is surfaced as-is and never retried.
type PlatformError struct {
	StatusCode int
	Body       string
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("platform rejected call request (HTTP %d): %s", e.StatusCode, e.Body)
}
