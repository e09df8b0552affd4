package services

import (
	"ev-route-dashboard/internal/domain"
	"math"
)

const earthRadiusMeters = 6371000.0

// Order stops using a greedy nearest-neighbor walk starting at the first stop.
//
// Each step picks the closest remaining stop by great-circle distance.
// It does not attempt global route optimization; ties go to the lower input index
// so the result is deterministic for a given input.
func NearestNeighborOrder(stops []domain.GeoPoint) []domain.GeoPoint {
	if len(stops) <= 2 {
		out := make([]domain.GeoPoint, len(stops))
		copy(out, stops)
		return out
	}

	remaining := make([]bool, len(stops))
	for i := range remaining {
		remaining[i] = true
	}

	out := make([]domain.GeoPoint, 0, len(stops))
	current := 0
	remaining[current] = false
	out = append(out, stops[current])

	for len(out) < len(stops) {
		best := -1
		bestDist := math.Inf(1)

		// Select next stop by minimum distance (greedy step).
		for i, ok := range remaining {
			if !ok {
				continue
			}
			d := HaversineMeters(stops[current], stops[i])
			if d < bestDist {
				bestDist = d
				best = i
			}
		}

		remaining[best] = false
		out = append(out, stops[best])
		current = best
	}

	return out
}

// Great-circle distance between two points in meters.
func HaversineMeters(a, b domain.GeoPoint) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}
