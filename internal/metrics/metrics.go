package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CheckoutSessions counts checkout outcomes: started, executed, failed.
	CheckoutSessions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_sessions_total",
		Help: "Checkout sessions by outcome.",
	}, []string{"outcome"})

	// GatewayRequests counts payment gateway round-trips by result.
	GatewayRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_gateway_requests_total",
		Help: "Requests to the payment gateway by operation and result.",
	}, []string{"operation", "result"})

	// GatewayDuration observes payment gateway round-trip latency.
	GatewayDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "payment_gateway_request_duration_seconds",
		Help:    "Round-trip time of payment gateway calls.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
)

// ObserveGateway records one gateway round-trip started at start.
func ObserveGateway(operation, result string, start time.Time) {
	GatewayRequests.WithLabelValues(operation, result).Inc()
	GatewayDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
