package ports

import (
	"context"
	"ev-route-dashboard/internal/domain"
)

// Port: a read-through store for previously fetched driving paths.
type RouteCache interface {
	// Return the cached waypoints for from -> to; ok is false on a miss.
	Get(ctx context.Context, from, to domain.GeoPoint) (points []domain.GeoPoint, ok bool, err error)
	// Store the waypoints for from -> to, replacing any previous entry.
	Put(ctx context.Context, from, to domain.GeoPoint, points []domain.GeoPoint) error
}
