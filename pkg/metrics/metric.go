package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry. dedicated prometheus registry of the matrix tools
	Registry = prometheus.NewRegistry()

	// MatrixComputeDuration. duration of one matrix computation by backend & costing
	MatrixComputeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "matrix_compute_duration_seconds", Help: "Matrix computation duration in seconds.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60}},
		[]string{"backend", "costing"},
	)
	// MatrixCells. number of computed cells by backend & reachability
	MatrixCells = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "matrix_cells_total", Help: "Computed matrix cells."},
		[]string{"backend", "reachable"},
	)
	// OptimizationDuration. tour optimization latency in seconds
	OptimizationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "tour_optimization_duration_seconds", Help: "Tour optimization duration in seconds.",
			Buckets: prometheus.DefBuckets},
	)
	// LocationSnapping. location resolver lookups by cache result
	LocationSnapping = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "location_snapping_total", Help: "Location snapping lookups."},
		[]string{"cache"},
	)

	// HTTPRequests counts requests by method, path, and status
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)
)

var regOnce sync.Once

// RegisterDefault registers collectors to Registry, safe to call more than once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(MatrixComputeDuration)
		Registry.MustRegister(MatrixCells)
		Registry.MustRegister(OptimizationDuration)
		Registry.MustRegister(LocationSnapping)
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
