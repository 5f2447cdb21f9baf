package notify

import (
	"errors"
	"fmt"
)

// ErrNoRecipient marks a notification without a recipient address.
var ErrNoRecipient = errors.New("recipient_email is required")

// DeliveryError reports a mail transport or authentication failure. A
// duplicate summary mail is worse than a dropped one, so delivery is never
// retried without an idempotency key — which the relay does not offer.
type DeliveryError struct {
	Cause error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("mail delivery failed: %v", e.Cause)
}

func (e *DeliveryError) Unwrap() error {
	return e.Cause
}
