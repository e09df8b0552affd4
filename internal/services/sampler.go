package services

import (
	"ev-route-dashboard/internal/domain"
	"fmt"
	"math/rand"
)

// Sample n points uniformly in [center-range, center+range] on each axis.
func SampleCoordinates(
	rng *rand.Rand,
	center domain.GeoPoint,
	n int,
	latRange float64,
	lonRange float64,
) []domain.GeoPoint {
	if n <= 0 {
		return []domain.GeoPoint{}
	}

	out := make([]domain.GeoPoint, 0, n)
	for range n {
		out = append(out, domain.GeoPoint{
			Lat: center.Lat + uniform(rng, -latRange, latRange),
			Lon: center.Lon + uniform(rng, -lonRange, lonRange),
		})
	}
	return out
}

// Sample charging stops around center, each labelled with a display distance
// between 0.5 and 2.0 miles.
func SampleChargingStops(
	rng *rand.Rand,
	center domain.GeoPoint,
	n int,
	latRange float64,
	lonRange float64,
) []domain.ChargingStop {
	points := SampleCoordinates(rng, center, n, latRange, lonRange)

	stops := make([]domain.ChargingStop, 0, len(points))
	for _, p := range points {
		stops = append(stops, domain.ChargingStop{
			Location: p,
			Distance: fmt.Sprintf("%.1f miles", uniform(rng, 0.5, 2.0)),
		})
	}
	return stops
}

// Shuffle returns a copy of pts in random order. The input is not modified.
func Shuffle(rng *rand.Rand, pts []domain.GeoPoint) []domain.GeoPoint {
	out := make([]domain.GeoPoint, len(pts))
	copy(out, pts)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}
