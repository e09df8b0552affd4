package main

import (
	"context"
	"database/sql"
	"errors"
	"ev-route-dashboard/internal/adapters/cache"
	"ev-route-dashboard/internal/adapters/directions"
	"ev-route-dashboard/internal/adapters/repositories"
	"ev-route-dashboard/internal/api"
	"ev-route-dashboard/internal/config"
	"ev-route-dashboard/internal/dashboard"
	"ev-route-dashboard/internal/platform/db"
	"ev-route-dashboard/internal/platform/metrics"
	"ev-route-dashboard/internal/platform/obs"
	"ev-route-dashboard/internal/ports"
	"ev-route-dashboard/internal/services"
	"math/rand"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// main is the application composition root.
// It wires concrete adapters (Mapbox, optional SQL route cache) behind ports,
// precomputes the animation and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("configuration error")
	}

	if err := obs.Configure(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.WithError(err).Fatal("configure logging")
	}
	metrics.RegisterDefault()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	routeCache, closeCache, err := openRouteCache(cfg)
	if err != nil {
		log.WithError(err).Fatal("open route cache")
	}
	defer closeCache()

	opts := []directions.Option{
		directions.WithBaseURL(cfg.MapboxBaseURL),
		directions.WithHTTPClient(&http.Client{Timeout: cfg.MapboxTimeout}),
		directions.WithRateLimit(cfg.MapboxRPS),
	}
	if routeCache != nil {
		opts = append(opts, directions.WithCache(routeCache))
	}
	provider, err := directions.NewMapboxDirectionsProvider(cfg.MapboxAccessToken, opts...)
	if err != nil {
		log.WithError(err).Fatal("create directions provider")
	}

	seed := cfg.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.WithField("seed", seed).Info("sampling stops")

	anim, err := services.BuildAnimation(ctx, provider, services.DemoParams{
		Center:           cfg.Center,
		NumStops:         cfg.NumStops,
		NumChargingStops: cfg.NumChargingStops,
		CoordRange:       cfg.CoordRange,
		NearestOrdering:  cfg.StopOrdering == config.OrderingNearest,
		Sim: services.SimParams{
			Start:                    cfg.SimStart,
			Window:                   cfg.SimWindow,
			ChargingStepsOptimized:   cfg.ChargingStepsOptimized,
			ChargingStepsUnoptimized: cfg.ChargingStepsUnoptimized,
		},
	}, rand.New(rand.NewSource(seed)))
	if err != nil {
		log.WithError(err).Fatal("prepare animation")
	}
	log.WithField("frames", anim.Len()).Info("animation ready")

	broker := dashboard.NewBroker()
	player := dashboard.NewPlayer(anim.Len(), cfg.FrameInterval, broker)
	player.Start(ctx)
	defer player.Stop()

	router := api.NewRouter(api.Deps{
		Animation:     anim,
		Broker:        broker,
		Player:        player,
		AccessToken:   cfg.MapboxAccessToken,
		FrameInterval: cfg.FrameInterval,
	})

	// WriteTimeout stays 0: websocket viewers hold their connection open.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.WithField("addr", srv.Addr).Info("Server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("server stopped")
	}
}

// openRouteCache returns the configured route cache, or nil when none is configured.
// DATABASE_URL (Postgres) wins over ROUTE_CACHE_PATH (SQLite).
func openRouteCache(cfg *config.Config) (ports.RouteCache, func(), error) {
	var (
		conn    *sql.DB
		dialect string
		err     error
	)

	switch {
	case cfg.DatabaseURL != "":
		conn, err = db.Open(cfg.DatabaseURL)
		dialect = db.DialectPostgres
	case cfg.RouteCachePath != "":
		conn, err = db.OpenSQLite(cfg.RouteCachePath)
		dialect = db.DialectSQLite
	default:
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, nil, err
	}

	if err := repositories.InitSchema(conn); err != nil {
		_ = conn.Close()
		return nil, nil, err
	}

	log.WithField("dialect", dialect).Info("route cache enabled")
	return cache.NewSQLRouteCache(conn, dialect), func() { _ = conn.Close() }, nil
}
