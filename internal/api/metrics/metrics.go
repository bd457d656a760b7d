// Package metrics defines and registers all custom Prometheus metrics for the
// user console. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation through promauto.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "user_console"

// ── Remote API metrics ───────────────────────────────────────────────────────

// RemoteRequestsTotal counts calls to the remote user service.
// Labels:
//   - op: list_users, get_user, update_user, delete_user, login
//   - status: HTTP status code, or "network_error" when no response arrived
var RemoteRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "remote_requests_total",
		Help:      "Total number of calls to the remote user service.",
	},
	[]string{"op", "status"},
)

// RemoteRequestDuration measures remote call latency per operation.
var RemoteRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "remote_request_duration_seconds",
		Help:      "Duration of calls to the remote user service.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"op"},
)

// ── Audit metrics ────────────────────────────────────────────────────────────

// AuditQueueDepth tracks pending audit events per dispatcher worker.
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditDroppedTotal counts audit events dropped because a worker was full.
var AuditDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_dropped_total",
		Help:      "Total number of audit events dropped on a full queue.",
	},
)

// ── Guard metrics ────────────────────────────────────────────────────────────

// GuardRedirectsTotal counts protected requests sent back to the login page.
var GuardRedirectsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_redirects_total",
		Help:      "Total number of unauthenticated requests redirected to login.",
	},
)

// Recorder adapts the package metrics to the observer interfaces of the
// remote client and the audit dispatcher.
type Recorder struct{}

func (Recorder) ObserveRemoteCall(op string, status int, elapsed time.Duration) {
	label := "network_error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	RemoteRequestsTotal.WithLabelValues(op, label).Inc()
	RemoteRequestDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

func (Recorder) AuditQueueDepth(workerID string, depth int) {
	AuditQueueDepth.WithLabelValues(workerID).Set(float64(depth))
}

func (Recorder) AuditDropped() {
	AuditDroppedTotal.Inc()
}
