package api

import (
	"ev-route-dashboard/internal/api/handlers"
	"ev-route-dashboard/internal/api/web"
	"ev-route-dashboard/internal/dashboard"
	"ev-route-dashboard/internal/platform/metrics"
	"ev-route-dashboard/internal/services"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the runtime objects the HTTP surface reads from.
type Deps struct {
	Animation     *services.Animation
	Broker        *dashboard.Broker
	Player        *dashboard.Player
	AccessToken   string
	FrameInterval time.Duration
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	dispatcher := dashboard.NewDashboard(d.Animation)

	dashHandler := &handlers.DashboardHandler{
		Animation:     d.Animation,
		Dispatcher:    dispatcher,
		AccessToken:   d.AccessToken,
		FrameInterval: d.FrameInterval,
	}
	streamHandler := &handlers.StreamHandler{
		Dispatcher: dispatcher,
		Broker:     d.Broker,
		Player:     d.Player,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.Handle("/", http.FileServerFS(web.FS))
	mux.HandleFunc("/api/config", dashHandler.Config)
	mux.HandleFunc("/api/animation", dashHandler.Summary)
	mux.HandleFunc("/api/frames/{tick}", dashHandler.Frame)
	mux.HandleFunc("/api/charging-stops", dashHandler.ChargingStops)
	mux.HandleFunc("/ws", streamHandler.Serve)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return loggingMiddleware(mux)
}
