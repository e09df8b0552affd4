package services

import (
	"ev-route-dashboard/internal/domain"
	"fmt"
	"math/rand"
	"time"
)

// TimeLabelLayout renders the simulated clock, e.g. "03:04 PM".
const TimeLabelLayout = "03:04 PM"

// SimParams controls one simulation run.
type SimParams struct {
	Start                    time.Time
	Window                   time.Duration
	ChargingStepsOptimized   int
	ChargingStepsUnoptimized int
	Center                   domain.GeoPoint
	ChargingStops            []domain.ChargingStop
}

// Simulate steps both vans along their trip paths and builds the animation frames.
//
// The number of steps is the length of the longer path. The clock label for a step
// is recorded before the clock advances, and the clock only advances while the
// optimized van is not charging.
func Simulate(
	params SimParams,
	optimized domain.TripPath,
	unoptimized domain.TripPath,
	rng *rand.Rand,
) (*Animation, error) {
	if optimized.Len() == 0 {
		return nil, fmt.Errorf("simulate %s: %w", domain.Optimized, domain.ErrNoUsablePath)
	}
	if unoptimized.Len() == 0 {
		return nil, fmt.Errorf("simulate %s: %w", domain.Unoptimized, domain.ErrNoUsablePath)
	}
	if params.Window <= 0 {
		return nil, fmt.Errorf("simulate: window must be > 0, got %v", params.Window)
	}

	optimized.Scenario = domain.Optimized
	unoptimized.Scenario = domain.Unoptimized

	optVan := domain.NewVan(optimized, PickChargingSteps(rng, optimized.Len(), params.ChargingStepsOptimized))
	unoptVan := domain.NewVan(unoptimized, PickChargingSteps(rng, unoptimized.Len(), params.ChargingStepsUnoptimized))

	steps := max(optimized.Len(), unoptimized.Len())
	increment := params.Window / time.Duration(steps)

	frames := make([]domain.AnimationFrame, 0, steps)
	clock := params.Start
	for i := range steps {
		opt := optVan.Step(i)
		unopt := unoptVan.Step(i)

		frames = append(frames, domain.AnimationFrame{
			Index:       i,
			TimeLabel:   clock.Format(TimeLabelLayout),
			Optimized:   opt,
			Unoptimized: unopt,
		})

		if !opt.Charging {
			clock = clock.Add(increment)
		}
	}

	return &Animation{
		frames:        frames,
		paths:         map[domain.Scenario]domain.TripPath{domain.Optimized: optimized, domain.Unoptimized: unoptimized},
		chargingStops: params.ChargingStops,
		center:        params.Center,
	}, nil
}
