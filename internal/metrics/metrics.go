package metrics

import (
	"encoding/json"
	"net/http"

	"github.com/ErlanBelekov/todo-service/internal/health"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "todoapp",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "todoapp",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})

	// Auth metrics

	LoginsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "todoapp",
		Name:      "logins_total",
		Help:      "Total login attempts, by outcome.",
	}, []string{"outcome"})

	// Collection metrics

	TodosCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "todoapp",
		Name:      "todos_created_total",
		Help:      "Total todos created.",
	})

	TodosCompletedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "todoapp",
		Name:      "todos_completed_total",
		Help:      "Total todos marked completed.",
	})

	TodosDeletedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "todoapp",
		Name:      "todos_deleted_total",
		Help:      "Total todos deleted.",
	})
)

func Register() {
	prometheus.MustRegister(
		HTTPRequestDuration,
		HTTPRequestsTotal,
		LoginsTotal,
		TodosCreatedTotal,
		TodosCompletedTotal,
		TodosDeletedTotal,
	)
}

// NewServer hosts /metrics plus the liveness and readiness probes on a
// separate port so operational traffic never shares the API listener.
func NewServer(addr string, checker *health.Checker) *http.Server {
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

func writeHealth(w http.ResponseWriter, result health.HealthResult) {
	status := http.StatusOK
	if result.Status != "up" {
		status = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(result)
}
