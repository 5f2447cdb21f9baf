package callbacks

// Platform callback event types.
const (
	EventTypeMessage            = "message"
	EventTypeConversationUpdate = "conversation_update"
	EventTypeCallEnded          = "call_ended"
)

// Event is the envelope the platform posts to the callback URL registered at
// join time. EventID is optional; when present it is used to drop platform
// redeliveries of the same event.
type Event struct {
	Type         string   `json:"type"`
	SessionID    string   `json:"session_id"`
	EventID      string   `json:"event_id,omitempty"`
	Text         string   `json:"text,omitempty"`
	Participants []string `json:"participants,omitempty"`
}

// Disposition is what the router did with an event; exported for metrics and
// tests, never for the platform (callbacks are always acknowledged).
type Disposition string

const (
	DispositionApplied   Disposition = "applied"
	DispositionDuplicate Disposition = "duplicate"
	DispositionIgnored   Disposition = "ignored"
)
