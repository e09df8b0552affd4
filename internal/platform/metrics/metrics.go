package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the dashboard.
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, path, and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// DirectionsRequests counts directions lookups by outcome (ok, unavailable, cache_hit, error).
	DirectionsRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "directions_requests_total", Help: "Directions lookups by outcome."},
		[]string{"outcome"},
	)
	DirectionsLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "directions_request_duration_seconds", Help: "Directions API latency in seconds.", Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10}},
	)
	// LegsSkipped counts legs dropped from a trip because no route was available.
	LegsSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "trip_legs_skipped_total", Help: "Route legs skipped during trip assembly."},
		[]string{"scenario"},
	)

	FramesPublished = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "animation_frames_published_total", Help: "Animation ticks published to viewers."},
	)
	StreamViewers = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "stream_viewers", Help: "Connected websocket viewers."},
	)
)

var regOnce sync.Once

// RegisterDefault registers all collectors on Registry once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(DirectionsRequests)
		Registry.MustRegister(DirectionsLatency)
		Registry.MustRegister(LegsSkipped)
		Registry.MustRegister(FramesPublished)
		Registry.MustRegister(StreamViewers)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
