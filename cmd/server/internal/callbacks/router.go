package callbacks

import (
	"errors"
	"log/slog"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/houzhh15/callscribe/cmd/server/internal/domain/sessions"
	"github.com/houzhh15/callscribe/pkg/metrics"
)

// The platform redelivers callbacks it considers unacknowledged, so recently
// seen event ids are remembered for a short window.
const (
	eventDedupCacheSize = 2048
	eventDedupTTL       = 10 * time.Minute
)

// Router applies asynchronous platform callback events to the session store.
// Malformed events are logged and dropped without error: the platform's retry
// behavior is opaque and must never be triggered by validation failures on
// our side.
type Router struct {
	store *sessions.Store
	dedup *expirable.LRU[string, struct{}]
	log   *slog.Logger
}

// NewRouter creates a router writing into store.
func NewRouter(store *sessions.Store, log *slog.Logger) *Router {
	return &Router{
		store: store,
		dedup: expirable.NewLRU[string, struct{}](eventDedupCacheSize, nil, eventDedupTTL),
		log:   log,
	}
}

// Handle routes one callback event and reports what was done with it.
func (r *Router) Handle(ev Event) Disposition {
	d := r.route(ev)
	metrics.RecordCallbackEvent(eventTypeLabel(ev.Type), string(d))
	metrics.SetActiveSessions(r.store.Len())
	return d
}

func (r *Router) route(ev Event) Disposition {
	if ev.SessionID == "" {
		r.log.Warn("callback event without session id", "type", ev.Type)
		return DispositionIgnored
	}

	if ev.EventID != "" {
		if _, seen := r.dedup.Get(ev.EventID); seen {
			r.log.Debug("duplicate callback event", "event_id", ev.EventID, "session_id", ev.SessionID)
			return DispositionDuplicate
		}
		r.dedup.Add(ev.EventID, struct{}{})
	}

	switch ev.Type {
	case EventTypeMessage:
		if ev.Text == "" {
			r.log.Warn("message event without text", "session_id", ev.SessionID)
			return DispositionIgnored
		}
		r.store.AppendFragment(ev.SessionID, ev.Text)
		return DispositionApplied

	case EventTypeConversationUpdate:
		for _, name := range ev.Participants {
			if name == "" {
				continue
			}
			r.store.AddParticipant(ev.SessionID, name)
		}
		// first update for a pending session marks the call as joined; an
		// update after call_ended is stale and must not regress the status
		if err := r.store.SetStatus(ev.SessionID, sessions.StatusJoined); err != nil {
			if errors.Is(err, sessions.ErrInvalidTransition) {
				r.log.Debug("stale conversation update", "session_id", ev.SessionID, "error", err)
			} else {
				r.log.Warn("set status failed", "session_id", ev.SessionID, "error", err)
			}
		}
		return DispositionApplied

	case EventTypeCallEnded:
		if err := r.store.SetStatus(ev.SessionID, sessions.StatusEnded); err != nil {
			r.log.Warn("set status failed", "session_id", ev.SessionID, "error", err)
			return DispositionIgnored
		}
		return DispositionApplied

	default:
		r.log.Warn("unrecognized callback event type", "type", ev.Type, "session_id", ev.SessionID)
		return DispositionIgnored
	}
}

func eventTypeLabel(t string) string {
	switch t {
	case EventTypeMessage, EventTypeConversationUpdate, EventTypeCallEnded:
		return t
	}
	return "unknown"
}
