package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Scheduling metrics
	BookingsTotal    *prometheus.CounterVec
	DecisionsTotal   *prometheus.CounterVec
	BookingLatency   prometheus.Histogram
	PendingDecisions prometheus.Gauge

	// Notification metrics
	NotificationsSent    *prometheus.CounterVec
	NotificationFailures prometheus.Counter
	NotificationLatency  prometheus.Histogram
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace, subsystem string) *Metrics {
	return &Metrics{
		// Scheduling metrics
		BookingsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "bookings_total",
			Help:      "Total number of booking attempts by outcome",
		}, []string{"outcome"}),
		DecisionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "decisions_total",
			Help:      "Total number of practitioner decisions applied",
		}, []string{"decision"}),
		BookingLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "booking_duration_seconds",
			Help:      "Time spent validating and persisting a booking",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}),
		PendingDecisions: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "pending_appointments",
			Help:      "Appointments currently awaiting a practitioner decision",
		}),

		// Notification metrics
		NotificationsSent: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "notifications_sent_total",
			Help:      "Total number of notifications delivered by transport",
		}, []string{"transport"}),
		NotificationFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "notification_failures_total",
			Help:      "Total number of notifications that failed on every transport",
		}),
		NotificationLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "notification_duration_seconds",
			Help:      "Time spent dispatching a notification including fallback",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}),
	}
}
