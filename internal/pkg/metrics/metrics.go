package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments of the service.
type Metrics struct {
	HTTPDuration         *prometheus.HistogramVec
	BookingsCreated      prometheus.Counter
	BookingStatusChanges *prometheus.CounterVec
}

// New registers the metric set on the default registry.
// Call it once per process; promauto panics on duplicate registration.
func New() *Metrics {
	return &Metrics{
		HTTPDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "shareloop_http_request_duration_seconds",
			Help:    "HTTP request latency by method, route and status code",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),

		BookingsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "shareloop_bookings_created_total",
			Help: "Total number of bookings created",
		}),

		BookingStatusChanges: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "shareloop_booking_status_changes_total",
			Help: "Total number of booking approval decisions by resulting status",
		}, []string{"status"}),
	}
}
