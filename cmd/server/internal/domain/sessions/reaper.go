package sessions

import (
	"context"
	"log/slog"
	"time"

	"github.com/houzhh15/callscribe/pkg/metrics"
)

// Reaper periodically evicts ended sessions so the store does not grow without
// bound in long-running deployments. With a zero TTL it does nothing.
type Reaper struct {
	store    *Store
	ttl      time.Duration
	interval time.Duration
	log      *slog.Logger
}

// NewReaper creates a reaper for store. interval defaults to 10 minutes when
// non-positive.
func NewReaper(store *Store, ttl, interval time.Duration, log *slog.Logger) *Reaper {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &Reaper{store: store, ttl: ttl, interval: interval, log: log}
}

// Run blocks until ctx is cancelled, evicting eligible sessions once per
// interval.
func (r *Reaper) Run(ctx context.Context) {
	if r.ttl <= 0 {
		r.log.Info("session eviction disabled")
		return
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.store.EvictEnded(r.ttl); n > 0 {
				r.log.Info("evicted ended sessions", "count", n, "remaining", r.store.Len())
				metrics.RecordSessionsEvicted(n)
			}
			metrics.SetActiveSessions(r.store.Len())
		}
	}
}
