package metrics

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ErlanBelekov/todo-api/internal/health"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Auth metrics

	AuthAttemptsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "todo",
		Name:      "auth_attempts_total",
		Help:      "Register, login and token resolution attempts, by outcome.",
	}, []string{"operation", "outcome"})

	TokensIssuedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "todo",
		Name:      "tokens_issued_total",
		Help:      "Session tokens issued on register or login.",
	})

	TokensRevokedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "todo",
		Name:      "tokens_revoked_total",
		Help:      "Session tokens removed on logout.",
	})

	// Todo metrics

	TodoOperationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "todo",
		Name:      "todo_operations_total",
		Help:      "Todo store operations, by outcome.",
	}, []string{"operation", "outcome"})

	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "todo",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "todo",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})
)

func Register() {
	prometheus.MustRegister(
		AuthAttemptsTotal,
		TokensIssuedTotal,
		TokensRevokedTotal,
		TodoOperationsTotal,
		HTTPRequestDuration,
		HTTPRequestsTotal,
	)
}

// Outcome turns an operation error into a low-cardinality label value.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

type healthChecker interface {
	Liveness(ctx context.Context) health.HealthResult
	Readiness(ctx context.Context) health.HealthResult
}

// NewServer serves /metrics plus liveness and readiness probes on a separate port.
func NewServer(addr string, checker healthChecker) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Liveness(r.Context()))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Readiness(r.Context()))
	})
	return &http.Server{Addr: addr, Handler: mux}
}

func writeHealth(w http.ResponseWriter, res health.HealthResult) {
	w.Header().Set("Content-Type", "application/json")
	if res.Status != "up" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(res)
}
