package services

import (
	"context"
	"ev-route-dashboard/internal/domain"
	"ev-route-dashboard/internal/ports"
	"fmt"
	"math/rand"

	log "github.com/sirupsen/logrus"
)

// DemoParams describes one dashboard run from sampled stops to frames.
type DemoParams struct {
	Center           domain.GeoPoint
	NumStops         int
	NumChargingStops int
	CoordRange       float64
	// NearestOrdering orders the optimized stops greedily; otherwise the sampled
	// order is driven as-is.
	NearestOrdering bool
	Sim             SimParams
}

// BuildAnimation samples the stops, fetches both trips leg by leg and simulates them.
// Startup is sequential: one directions request at a time.
func BuildAnimation(
	ctx context.Context,
	provider ports.DirectionsProvider,
	p DemoParams,
	rng *rand.Rand,
) (*Animation, error) {
	stops := SampleCoordinates(rng, p.Center, p.NumStops, p.CoordRange, p.CoordRange)
	unoptimizedStops := Shuffle(rng, stops)
	chargingStops := SampleChargingStops(rng, p.Center, p.NumChargingStops, p.CoordRange, p.CoordRange)

	optimizedStops := stops
	if p.NearestOrdering {
		optimizedStops = NearestNeighborOrder(stops)
	}

	trips := make(map[domain.Scenario]domain.TripPath, len(domain.Scenarios))
	for _, s := range domain.Scenarios {
		order := optimizedStops
		if s == domain.Unoptimized {
			order = unoptimizedStops
		}

		path, failures, err := BuildTripPath(ctx, provider, s, order)
		if err != nil {
			return nil, fmt.Errorf("build animation: %w", err)
		}

		log.WithFields(log.Fields{
			"scenario":     s,
			"stops":        len(order),
			"points":       path.Len(),
			"legs_skipped": len(failures),
		}).Info("trip assembled")
		trips[s] = path
	}

	sim := p.Sim
	sim.Center = p.Center
	sim.ChargingStops = chargingStops

	anim, err := Simulate(sim, trips[domain.Optimized], trips[domain.Unoptimized], rng)
	if err != nil {
		return nil, fmt.Errorf("build animation: %w", err)
	}
	return anim, nil
}
