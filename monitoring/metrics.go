package monitoring

import (
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	submissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_submissions_total",
			Help: "Ticket request submissions by outcome",
		},
		[]string{"result"},
	)

	gatewayInitiations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_initiations_total",
			Help: "Payment gateway initiations by provider and outcome",
		},
		[]string{"provider", "status"},
	)

	gatewayLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "payment_initiation_duration_seconds",
			Help:    "Duration of gateway initiation calls",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
		[]string{"provider"},
	)

	ticketDeliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_deliveries_total",
			Help: "Post-resolution ticket deliveries by outcome",
		},
		[]string{"status"},
	)
)

// TrackSubmission records one submission outcome.
func TrackSubmission(result string) {
	submissions.WithLabelValues(result).Inc()
}

// TrackGatewayInitiation records one gateway initiation.
func TrackGatewayInitiation(provider, status string, duration time.Duration) {
	gatewayInitiations.WithLabelValues(provider, status).Inc()
	gatewayLatency.WithLabelValues(provider).Observe(duration.Seconds())
}

// TrackDelivery records one ticket delivery attempt.
func TrackDelivery(status string) {
	ticketDeliveries.WithLabelValues(status).Inc()
}

// Serve exposes /metrics on its own listener.
func Serve(port string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		if err := http.ListenAndServe(":"+port, mux); err != nil {
			log.Printf("metrics server stopped: %v", err)
		}
	}()
}
