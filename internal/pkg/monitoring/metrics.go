// Package monitoring exposes Prometheus metrics for the order lifecycle
// engine. Metrics are registered via promauto and served by the /metrics
// endpoint wired in main.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	statusTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_status_transitions_total",
			Help: "Committed order status transitions by target status",
		},
		[]string{"status"},
	)

	transitionRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_transition_rejections_total",
			Help: "Rejected status change requests by reason",
		},
		[]string{"reason"},
	)

	notificationsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_emitted_total",
			Help: "Notification records emitted by kind and result",
		},
		[]string{"kind", "result"},
	)

	messagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "messages_sent_total",
			Help: "Messages appended to order conversations",
		},
	)

	ordersByStatus = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "orders_by_status",
			Help: "Current number of orders per lifecycle status",
		},
		[]string{"status"},
	)
)

// Rejection reasons for order_transition_rejections_total.
const (
	ReasonForbidden         = "forbidden"
	ReasonInvalidTransition = "invalid_transition"
	ReasonConflict          = "conflict"
)

// RecordTransition counts a committed transition into the given status.
func RecordTransition(status string) {
	statusTransitions.WithLabelValues(status).Inc()
}

// RecordRejection counts a rejected status change request.
func RecordRejection(reason string) {
	transitionRejections.WithLabelValues(reason).Inc()
}

// RecordNotification counts a notification emission attempt. Result is
// "ok" or "failed".
func RecordNotification(kind string, ok bool) {
	result := "ok"
	if !ok {
		result = "failed"
	}
	notificationsEmitted.WithLabelValues(kind, result).Inc()
}

// RecordMessageSent counts a successfully persisted conversation message.
func RecordMessageSent() {
	messagesSent.Inc()
}

// SetOrdersByStatus updates the per-status order count gauge. Statuses
// missing from counts are reset to zero by the caller passing them as 0.
func SetOrdersByStatus(counts map[string]int64) {
	for status, n := range counts {
		ordersByStatus.WithLabelValues(status).Set(float64(n))
	}
}
