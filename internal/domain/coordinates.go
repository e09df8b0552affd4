package domain

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Immutable geographic point (latitude, longitude).
type GeoPoint struct {
	Lat float64
	Lon float64
}

// Return coordinates as [lon, lat] for external API compatibility.
func (p GeoPoint) CoordsToList() []float64 { return []float64{p.Lon, p.Lat} }

// Point converts to an orb point, which is (lon, lat) ordered.
func (p GeoPoint) Point() orb.Point { return orb.Point{p.Lon, p.Lat} }

// Key formats the point to 6 decimals (~0.1 m), used for cache keys and logs.
func (p GeoPoint) Key() string { return fmt.Sprintf("%.6f,%.6f", p.Lat, p.Lon) }
