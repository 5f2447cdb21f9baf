package sessions

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Store maintains a thread-safe collection of call sessions. It is the single
// source of truth for in-flight calls: the callback router mutates it and the
// query/notify handlers read from it. All operations take the store mutex, so
// concurrent callbacks for the same session cannot lose fragments or create
// duplicate sessions.
type Store struct {
	mu  sync.Mutex
	m   map[string]*CallSession
	now func() time.Time
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{m: map[string]*CallSession{}, now: time.Now}
}

// getOrCreateLocked returns the live session for id, creating it with status
// pending when absent. Callers must hold s.mu.
func (s *Store) getOrCreateLocked(id string) *CallSession {
	if sess, ok := s.m[id]; ok {
		return sess
	}
	now := s.now()
	sess := &CallSession{
		ID:        id,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.m[id] = sess
	return sess
}

// CreateOrGet returns a snapshot of the session for id, creating it with
// status pending when absent. Calling it twice with the same id never yields
// two distinct sessions.
func (s *Store) CreateOrGet(id string) *CallSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getOrCreateLocked(id).clone()
}

// Get returns a snapshot of the session for id, or false when unknown.
func (s *Store) Get(id string) (*CallSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.m[id]
	if !ok {
		return nil, false
	}
	return sess.clone(), true
}

// AppendFragment appends one transcript fragment to the session, creating the
// session first when absent. Callback delivery order is not guaranteed
// relative to the join response, so an unknown id is not an error.
func (s *Store) AppendFragment(id, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.getOrCreateLocked(id)
	sess.Fragments = append(sess.Fragments, text)
	sess.UpdatedAt = s.now()
}

// AddParticipant records a named participant once, preserving insertion order.
func (s *Store) AddParticipant(id, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.getOrCreateLocked(id)
	for _, p := range sess.Participants {
		if p == name {
			return
		}
	}
	sess.Participants = append(sess.Participants, name)
	sess.UpdatedAt = s.now()
}

// SetStatus moves the session to next, creating the session first when
// absent. Same-status calls are idempotent no-ops; a backwards move fails
// with ErrInvalidTransition and leaves the session untouched.
func (s *Store) SetStatus(id string, next Status) error {
	if next.rank() < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, next)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.getOrCreateLocked(id)
	if next == sess.Status {
		return nil
	}
	if next.rank() < sess.Status.rank() {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, sess.Status, next)
	}
	sess.Status = next
	sess.UpdatedAt = s.now()
	return nil
}

// Transcript joins the session's fragments with a single space, preserving
// arrival order. An unknown id yields "" — no data yet, not an error.
func (s *Store) Transcript(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.m[id]
	if !ok {
		return ""
	}
	return strings.Join(sess.Fragments, " ")
}

// List returns snapshots of all sessions ordered by creation time.
func (s *Store) List() []*CallSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := make([]*CallSession, 0, len(s.m))
	for _, sess := range s.m {
		list = append(list, sess.clone())
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list
}

// Len returns the number of sessions currently held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}

// EvictEnded removes ended sessions whose last update is older than ttl and
// returns how many were removed. A non-positive ttl removes nothing.
func (s *Store) EvictEnded(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-ttl)
	removed := 0
	for id, sess := range s.m {
		if sess.Status == StatusEnded && sess.UpdatedAt.Before(cutoff) {
			delete(s.m, id)
			removed++
		}
	}
	return removed
}
