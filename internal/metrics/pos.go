// Package metrics exposes Prometheus collectors for order flow. A nil
// *POSMetrics is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"restaurant_pos_backend/internal/store"
)

// POSMetrics records order confirmation and store activity.
type POSMetrics struct {
	confirmed         prometheus.Counter
	confirmFailures   *prometheus.CounterVec
	confirmDuration   prometheus.Histogram
	confirmedAmount   prometheus.Counter
	unavailableDenied prometheus.Counter
	storeEvents       *prometheus.CounterVec
}

// NewPOSMetrics registers the collectors on reg. A nil reg returns a no-op collector.
func NewPOSMetrics(reg prometheus.Registerer) *POSMetrics {
	if reg == nil {
		return &POSMetrics{}
	}
	m := &POSMetrics{
		confirmed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pos_orders_confirmed_total",
			Help: "Pending orders confirmed into a table order.",
		}),
		confirmFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pos_order_confirm_failures_total",
			Help: "Order confirmations that failed, by reason.",
		}, []string{"reason"}),
		confirmDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pos_order_confirm_duration_seconds",
			Help:    "Time spent confirming an order, including persistence.",
			Buckets: prometheus.DefBuckets,
		}),
		confirmedAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pos_confirmed_amount_yen_total",
			Help: "Sum of confirmed pending line subtotals in yen.",
		}),
		unavailableDenied: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pos_unavailable_item_rejections_total",
			Help: "Cart additions rejected because the item is unavailable.",
		}),
		storeEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pos_store_events_total",
			Help: "Store change notifications, by kind.",
		}, []string{"kind"}),
	}
	reg.MustRegister(m.confirmed, m.confirmFailures, m.confirmDuration, m.confirmedAmount, m.unavailableDenied, m.storeEvents)
	return m
}

// ObserveConfirmed records a successful confirmation.
func (m *POSMetrics) ObserveConfirmed(amount int64, duration time.Duration) {
	if m == nil || m.confirmed == nil {
		return
	}
	m.confirmed.Inc()
	m.confirmedAmount.Add(float64(amount))
	m.confirmDuration.Observe(duration.Seconds())
}

// IncConfirmFailure records a failed confirmation.
func (m *POSMetrics) IncConfirmFailure(reason string) {
	if m == nil || m.confirmFailures == nil {
		return
	}
	if reason == "" {
		reason = "unknown"
	}
	m.confirmFailures.WithLabelValues(reason).Inc()
}

// IncUnavailableRejection records a gated cart addition.
func (m *POSMetrics) IncUnavailableRejection() {
	if m == nil || m.unavailableDenied == nil {
		return
	}
	m.unavailableDenied.Inc()
}

// HandleEvent counts store events; subscribe it with store.Subscribe.
func (m *POSMetrics) HandleEvent(e store.Event) {
	if m == nil || m.storeEvents == nil {
		return
	}
	m.storeEvents.WithLabelValues(string(e.Kind)).Inc()
}
