package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Engine metrics
	simulationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dca_advisor_simulations_total",
			Help: "Total number of backtest simulations run",
		},
		[]string{"strategy"},
	)

	analysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dca_advisor_analyses_total",
			Help: "Total number of advisor analyses produced",
		},
		[]string{"kind"},
	)

	// Provider metrics
	providerRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dca_advisor_provider_requests_total",
			Help: "Total number of provider HTTP requests",
		},
		[]string{"provider", "outcome"},
	)

	fallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dca_advisor_fallbacks_total",
			Help: "Total number of fallback substitutions after provider timeouts or errors",
		},
		[]string{"fetch"},
	)

	cacheOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dca_advisor_cache_ops_total",
			Help: "Provider cache hits and misses",
		},
		[]string{"provider", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(simulationsTotal)
	prometheus.MustRegister(analysesTotal)
	prometheus.MustRegister(providerRequestsTotal)
	prometheus.MustRegister(fallbacksTotal)
	prometheus.MustRegister(cacheOpsTotal)
}

// MetricsHandler serves the Prometheus metrics endpoint.
type MetricsHandler struct{}

// NewMetricsHandler creates a new metrics handler.
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

// ServeHTTP serves the Prometheus metrics endpoint.
func (m *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// RecordSimulation records a completed backtest simulation.
func RecordSimulation(strategy string) {
	simulationsTotal.WithLabelValues(strategy).Inc()
}

// RecordAnalysis records a completed advisor analysis.
func RecordAnalysis(kind string) {
	analysesTotal.WithLabelValues(kind).Inc()
}

// RecordProviderRequest records the outcome of a provider HTTP request.
func RecordProviderRequest(provider, outcome string) {
	providerRequestsTotal.WithLabelValues(provider, outcome).Inc()
}

// RecordFallback records a fallback substitution.
func RecordFallback(fetch string) {
	fallbacksTotal.WithLabelValues(fetch).Inc()
}

// RecordCacheHit records a provider cache hit.
func RecordCacheHit(provider string) {
	cacheOpsTotal.WithLabelValues(provider, "hit").Inc()
}

// RecordCacheMiss records a provider cache miss.
func RecordCacheMiss(provider string) {
	cacheOpsTotal.WithLabelValues(provider, "miss").Inc()
}
