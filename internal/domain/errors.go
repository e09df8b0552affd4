package domain

import (
	"errors"
	"fmt"
)

// ErrMissingAccessToken is the configuration error raised when no directions
// API credential is set. It is fatal at startup.
var ErrMissingAccessToken = errors.New("MAPBOX_ACCESS_TOKEN is required")

// ErrRouteUnavailable matches every RouteUnavailableError via errors.Is.
var ErrRouteUnavailable = errors.New("route unavailable")

// ErrNoUsablePath is returned when a scenario ends up with no waypoints,
// usually because every leg fetch failed.
var ErrNoUsablePath = errors.New("no usable path")

// RouteUnavailableError reports a single leg whose directions request failed or
// returned no route. StatusCode is 0 for transport failures. Body is the raw response.
type RouteUnavailableError struct {
	From       GeoPoint
	To         GeoPoint
	StatusCode int
	Body       string
	Err        error
}

func (e *RouteUnavailableError) Error() string {
	msg := fmt.Sprintf("route %s -> %s unavailable", e.From.Key(), e.To.Key())
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": status %d", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func (e *RouteUnavailableError) Is(target error) bool { return target == ErrRouteUnavailable }

func (e *RouteUnavailableError) Unwrap() error { return e.Err }
