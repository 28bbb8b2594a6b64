package monitoring

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

var startTime = time.Now()

// HealthChecker tracks the last successful analysis and any recorded
// errors, and serves them as a JSON health endpoint.
type HealthChecker struct {
	mu           sync.RWMutex
	lastAnalysis time.Time
	lastPrice    float64
	errors       []string
}

// HealthStatus is the health endpoint payload.
type HealthStatus struct {
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
	LastAnalysis time.Time `json:"last_analysis"`
	LastPrice    float64   `json:"last_price"`
	Uptime       string    `json:"uptime"`
	Errors       []string  `json:"errors,omitempty"`
}

// NewHealthChecker creates a new health checker.
func NewHealthChecker() *HealthChecker {
	return &HealthChecker{
		errors: make([]string, 0),
	}
}

// RecordAnalysis notes a successful analysis and the spot price it
// observed.
func (h *HealthChecker) RecordAnalysis(price float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastAnalysis = time.Now()
	h.lastPrice = price
}

// RecordError appends an error to the health report.
func (h *HealthChecker) RecordError(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errors = append(h.errors, err.Error())
	if len(h.errors) > 10 {
		h.errors = h.errors[len(h.errors)-10:]
	}
}

func (h *HealthChecker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	status := "healthy"
	if len(h.errors) > 0 {
		status = "degraded"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	health := HealthStatus{
		Status:       status,
		Timestamp:    time.Now(),
		LastAnalysis: h.lastAnalysis,
		LastPrice:    h.lastPrice,
		Uptime:       time.Since(startTime).String(),
		Errors:       h.errors,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(health)
}

// Serve starts the metrics and health endpoints on the given ports.
// It blocks, so callers run it in a goroutine.
func Serve(metricsPort, healthPort int, checker *HealthChecker) {
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", NewMetricsHandler())
		addr := fmt.Sprintf(":%d", metricsPort)
		log.Info().Str("addr", addr).Msg("metrics endpoint listening")
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Error().Err(err).Msg("metrics server stopped")
		}
	}()

	mux := http.NewServeMux()
	mux.Handle("/health", checker)
	addr := fmt.Sprintf(":%d", healthPort)
	log.Info().Str("addr", addr).Msg("health endpoint listening")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error().Err(err).Msg("health server stopped")
	}
}
