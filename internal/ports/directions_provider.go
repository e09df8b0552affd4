package ports

import (
	"context"
	"ev-route-dashboard/internal/domain"
)

// Contract for retrieving a driving path between two points.
type DirectionsProvider interface {
	// Return the ordered waypoints of a driving route from one point to another.
	// A failed or empty lookup is reported as *domain.RouteUnavailableError.
	GetRoute(ctx context.Context, from, to domain.GeoPoint) ([]domain.GeoPoint, error)
}
