package services

import (
	"context"
	"errors"
	"ev-route-dashboard/internal/adapters/directions"
	"ev-route-dashboard/internal/domain"
	"math/rand"
	"testing"
	"time"
)

// straightLine answers every leg with its two endpoints.
type straightLine struct{ calls int }

func (s *straightLine) GetRoute(ctx context.Context, from, to domain.GeoPoint) ([]domain.GeoPoint, error) {
	s.calls++
	return []domain.GeoPoint{from, to}, nil
}

func TestBuildAnimation(t *testing.T) {
	provider := &straightLine{}
	params := DemoParams{
		Center:           domain.GeoPoint{Lat: 42.3223, Lon: -83.1763},
		NumStops:         20,
		NumChargingStops: 10,
		CoordRange:       0.02,
		NearestOrdering:  true,
		Sim: SimParams{
			Start:                    nineAM(t),
			Window:                   6 * time.Hour,
			ChargingStepsOptimized:   10,
			ChargingStepsUnoptimized: 20,
		},
	}

	anim, err := BuildAnimation(context.Background(), provider, params, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 19 legs per scenario, two points per leg
	if provider.calls != 38 {
		t.Fatalf("directions calls = %d, want 38", provider.calls)
	}
	if anim.Len() != 38 {
		t.Fatalf("frames = %d, want 38", anim.Len())
	}
	if len(anim.ChargingStops()) != 10 {
		t.Fatalf("charging stops = %d, want 10", len(anim.ChargingStops()))
	}
	if anim.Center() != params.Center {
		t.Fatalf("center = %+v", anim.Center())
	}
}

func TestBuildAnimationNoRoutes(t *testing.T) {
	provider := directions.NewMockDirectionsProvider(nil)
	params := DemoParams{
		Center:     domain.GeoPoint{Lat: 42.3223, Lon: -83.1763},
		NumStops:   3,
		CoordRange: 0.02,
		Sim:        SimParams{Start: nineAM(t), Window: 6 * time.Hour},
	}

	_, err := BuildAnimation(context.Background(), provider, params, rand.New(rand.NewSource(1)))
	if !errors.Is(err, domain.ErrNoUsablePath) {
		t.Fatalf("expected ErrNoUsablePath, got %v", err)
	}
}
