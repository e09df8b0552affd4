package services

import (
	"context"
	"errors"
	"ev-route-dashboard/internal/domain"
	"ev-route-dashboard/internal/platform/metrics"
	"ev-route-dashboard/internal/ports"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// LegFailure records a leg that was skipped while assembling a trip.
type LegFailure struct {
	Index int
	From  domain.GeoPoint
	To    domain.GeoPoint
	Err   error
}

// Build the trip path for a scenario by fetching every consecutive leg in order.
//
// Legs are fetched one at a time. A leg whose route is unavailable is logged and
// skipped; it contributes no points and the following legs are still fetched.
// Any other error aborts the build.
func BuildTripPath(
	ctx context.Context,
	provider ports.DirectionsProvider,
	scenario domain.Scenario,
	stops []domain.GeoPoint,
) (domain.TripPath, []LegFailure, error) {
	path := domain.TripPath{Scenario: scenario, Points: []domain.GeoPoint{}}

	if provider == nil {
		return path, nil, errors.New("build trip: directions provider is nil")
	}

	var failures []LegFailure
	for i := 0; i+1 < len(stops); i++ {
		from, to := stops[i], stops[i+1]

		points, err := provider.GetRoute(ctx, from, to)
		if err != nil {
			if !errors.Is(err, domain.ErrRouteUnavailable) {
				return path, failures, fmt.Errorf("build trip %s: leg %d: %w", scenario, i, err)
			}

			status := 0
			var rue *domain.RouteUnavailableError
			if errors.As(err, &rue) {
				status = rue.StatusCode
			}

			log.WithFields(log.Fields{
				"scenario": scenario,
				"leg":      i,
				"from":     from.Key(),
				"to":       to.Key(),
				"status":   status,
			}).WithError(err).Warn("route unavailable, skipping leg")

			metrics.LegsSkipped.WithLabelValues(string(scenario)).Inc()
			failures = append(failures, LegFailure{Index: i, From: from, To: to, Err: err})
			continue
		}

		path.Append(domain.RouteLeg{From: from, To: to, Points: points})
	}

	return path, failures, nil
}
