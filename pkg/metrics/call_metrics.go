// Package metrics provides Prometheus metrics for monitoring callscribe components.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Call pipeline metrics
var (
	// joinRequestsTotal records the outcome of call-join requests.
	// Labels:
	//   - status: Request outcome ("joined", "rejected", "error")
	joinRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "callscribe_join_requests_total",
			Help: "Total number of call join requests by outcome",
		},
		[]string{"status"},
	)

	// callbackEventsTotal records platform callback events seen by the router.
	// Labels:
	//   - type: Event type ("message", "conversation_update", "call_ended", "unknown")
	//   - status: Router disposition ("applied", "duplicate", "ignored")
	callbackEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "callscribe_callback_events_total",
			Help: "Total number of platform callback events by type and disposition",
		},
		[]string{"type", "status"},
	)

	// notificationsTotal records summary notification delivery attempts.
	// Labels:
	//   - status: Delivery outcome ("sent", "failed")
	notificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "callscribe_notifications_total",
			Help: "Total number of summary notification deliveries by outcome",
		},
		[]string{"status"},
	)

	// summarizeDuration records the latency of summarization service calls.
	// Buckets: 0.1s to 30s, covering the bounded client timeout.
	summarizeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "callscribe_summarize_duration_seconds",
			Help:    "Duration of summarization service calls in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
	)

	// activeSessions tracks the number of call sessions currently held in the store.
	activeSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "callscribe_active_sessions",
			Help: "Number of call sessions currently held in the session store",
		},
	)

	// sessionsEvictedTotal records ended sessions removed by the reaper.
	sessionsEvictedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "callscribe_sessions_evicted_total",
			Help: "Total number of ended sessions evicted from the session store",
		},
	)
)

func init() {
	prometheus.MustRegister(joinRequestsTotal)
	prometheus.MustRegister(callbackEventsTotal)
	prometheus.MustRegister(notificationsTotal)
	prometheus.MustRegister(summarizeDuration)
	prometheus.MustRegister(activeSessions)
	prometheus.MustRegister(sessionsEvictedTotal)
}

// RecordJoinRequest records the outcome of a call-join request.
func RecordJoinRequest(status string) {
	joinRequestsTotal.WithLabelValues(status).Inc()
}

// RecordCallbackEvent records a routed callback event and its disposition.
func RecordCallbackEvent(eventType, status string) {
	callbackEventsTotal.WithLabelValues(eventType, status).Inc()
}

// RecordNotification records a notification delivery outcome.
func RecordNotification(status string) {
	notificationsTotal.WithLabelValues(status).Inc()
}

// ObserveSummarizeDuration records the duration of one summarization call.
func ObserveSummarizeDuration(seconds float64) {
	summarizeDuration.Observe(seconds)
}

// SetActiveSessions updates the session store size gauge.
func SetActiveSessions(n int) {
	activeSessions.Set(float64(n))
}

// RecordSessionsEvicted adds n to the eviction counter.
func RecordSessionsEvicted(n int) {
	sessionsEvictedTotal.Add(float64(n))
}
