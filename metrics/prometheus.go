package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	rowsUpsertedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "possync_rows_upserted_total",
			Help: "Total number of rows written to the store per entity kind.",
		},
		[]string{"entity"},
	)
	recordsDroppedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "possync_records_dropped_total",
			Help: "Total number of provider records dropped during mapping.",
		},
		[]string{"entity", "reason"},
	)
	rateLimitWaitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "possync_rate_limit_waits_total",
			Help: "Total number of 429 backoff pauses per provider endpoint.",
		},
		[]string{"endpoint"},
	)
	providerRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "possync_provider_request_duration_seconds",
			Help:    "Histogram of provider API request durations.",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"endpoint", "status"},
	)
)

func init() {
	prometheus.MustRegister(rowsUpsertedTotal)
	prometheus.MustRegister(recordsDroppedTotal)
	prometheus.MustRegister(rateLimitWaitsTotal)
	prometheus.MustRegister(providerRequestDuration)
}

// RecordRowsUpserted records how many rows a batch wrote for an entity kind.
func RecordRowsUpserted(entity string, count int) {
	rowsUpsertedTotal.WithLabelValues(entity).Add(float64(count))
}

// RecordDroppedRecord records a provider record excluded from a batch.
func RecordDroppedRecord(entity, reason string) {
	recordsDroppedTotal.WithLabelValues(entity, reason).Inc()
}

// RecordRateLimitWait records one 429 backoff pause on an endpoint.
func RecordRateLimitWait(endpoint string) {
	rateLimitWaitsTotal.WithLabelValues(endpoint).Inc()
}

// RecordProviderRequest records metrics for one provider API request.
func RecordProviderRequest(endpoint string, statusCode int, duration time.Duration) {
	providerRequestDuration.WithLabelValues(endpoint, classifyStatus(statusCode)).Observe(duration.Seconds())
}

// classifyStatus maps an HTTP status code onto its class label.
func classifyStatus(statusCode int) string {
	if statusCode >= 200 && statusCode < 300 {
		return "2xx"
	} else if statusCode >= 300 && statusCode < 400 {
		return "3xx"
	} else if statusCode >= 400 && statusCode < 500 {
		return "4xx"
	} else if statusCode >= 500 && statusCode < 600 {
		return "5xx"
	}
	return "unknown"
}

// MetricsHandler returns the HTTP handler exporting Prometheus metrics.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
