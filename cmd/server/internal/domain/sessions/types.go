package sessions

import "time"

// Status is the lifecycle state of a call session. Transitions are monotonic:
// pending -> joined -> ended, never backwards.
type Status string

const (
	StatusPending Status = "pending"
	StatusJoined  Status = "joined"
	StatusEnded   Status = "ended"
)

// rank orders statuses for monotonic transition checks.
func (s Status) rank() int {
	switch s {
	case StatusPending:
		return 0
	case StatusJoined:
		return 1
	case StatusEnded:
		return 2
	}
	return -1
}

// CallSession accumulates the transcript and metadata of one platform call,
// keyed by the platform's conversation/call identifier.
type CallSession struct {
	ID           string    `json:"id"`
	Fragments    []string  `json:"fragments"`
	Participants []string  `json:"participants"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// clone returns a deep copy so callers never share slices with the store.
func (s *CallSession) clone() *CallSession {
	cp := *s
	cp.Fragments = append([]string(nil), s.Fragments...)
	cp.Participants = append([]string(nil), s.Participants...)
	return &cp
}
