package summarize

import (
	"errors"
	"fmt"
)

// ErrEmptyInput marks a summarization request with no usable text; it is
// raised before the external service is contacted.
var ErrEmptyInput = errors.New("text to summarize is empty")

// ServiceError carries a non-success response from the summarization service.
// Summarization is neither idempotent nor cheap, so it is never retried here.
type ServiceError struct {
	StatusCode int
	Body       string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("summarization service returned HTTP %d: %s", e.StatusCode, e.Body)
}
