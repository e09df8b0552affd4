package directions

import (
	"context"
	"encoding/json"
	"errors"
	"ev-route-dashboard/internal/domain"
	"ev-route-dashboard/internal/platform/metrics"
	"ev-route-dashboard/internal/platform/obs"
	"ev-route-dashboard/internal/ports"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// MapboxDirectionsProvider implements DirectionsProvider using the Mapbox Directions API.
//
// It coordinates:
//   - Optional read-through route caching
//   - Outbound rate limiting
//   - One request per lookup, without retries
//
// The provider is safe for concurrent use.
type MapboxDirectionsProvider struct {
	session *http.Client
	token   string
	baseURL string
	profile string
	limiter *rate.Limiter
	cache   ports.RouteCache
}

type Option func(*MapboxDirectionsProvider)

// WithBaseURL overrides the API origin (tests point it at httptest servers).
func WithBaseURL(u string) Option {
	return func(m *MapboxDirectionsProvider) { m.baseURL = u }
}

func WithHTTPClient(c *http.Client) Option {
	return func(m *MapboxDirectionsProvider) { m.session = c }
}

// WithRateLimit caps outbound requests per second; burst is 1.
func WithRateLimit(rps float64) Option {
	return func(m *MapboxDirectionsProvider) { m.limiter = rate.NewLimiter(rate.Limit(rps), 1) }
}

func WithCache(c ports.RouteCache) Option {
	return func(m *MapboxDirectionsProvider) { m.cache = c }
}

func NewMapboxDirectionsProvider(token string, opts ...Option) (*MapboxDirectionsProvider, error) {
	if token == "" {
		return nil, domain.ErrMissingAccessToken
	}

	provider := &MapboxDirectionsProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		token:   token,
		baseURL: "https://api.mapbox.com",
		profile: "mapbox/driving",
		limiter: rate.NewLimiter(rate.Inf, 1),
	}
	for _, opt := range opts {
		opt(provider)
	}

	return provider, nil
}

type directionsResponse struct {
	Routes []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

// GetRoute returns the driving waypoints from one point to another as (lat, lon).
func (m *MapboxDirectionsProvider) GetRoute(
	ctx context.Context,
	from domain.GeoPoint,
	to domain.GeoPoint,
) (_ []domain.GeoPoint, err error) {
	defer obs.Time(ctx, "mapbox.GetRoute")(&err)

	if m.cache != nil {
		cached, ok, err := m.cache.Get(ctx, from, to)
		if err != nil {
			log.WithError(err).WithField("leg", from.Key()+"->"+to.Key()).Warn("route cache read failed")
		} else if ok {
			metrics.DirectionsRequests.WithLabelValues("cache_hit").Inc()
			return cached, nil
		}
	}

	if err := m.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("get route: rate limit wait: %w", err)
	}

	start := time.Now()
	points, err := m.fetch(ctx, from, to)
	metrics.DirectionsLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, domain.ErrRouteUnavailable) {
			metrics.DirectionsRequests.WithLabelValues("unavailable").Inc()
		} else {
			metrics.DirectionsRequests.WithLabelValues("error").Inc()
		}
		return nil, err
	}
	metrics.DirectionsRequests.WithLabelValues("ok").Inc()

	if m.cache != nil && len(points) > 0 {
		if err := m.cache.Put(ctx, from, to, points); err != nil {
			log.WithError(err).WithField("leg", from.Key()+"->"+to.Key()).Warn("route cache write failed")
		}
	}

	return points, nil
}

func (m *MapboxDirectionsProvider) fetch(ctx context.Context, from, to domain.GeoPoint) ([]domain.GeoPoint, error) {
	req, err := m.newRequest(ctx, m.routeURL(from, to))
	if err != nil {
		return nil, fmt.Errorf("get route: %w", err)
	}

	body, err := m.do(req)
	if err != nil {
		// The caller gave up; this is not a property of the leg.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("get route: %w", ctxErr)
		}
		return nil, unavailable(from, to, err)
	}

	var decoded directionsResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, &domain.RouteUnavailableError{
			From: from, To: to, StatusCode: http.StatusOK, Body: string(body),
			Err: fmt.Errorf("decode directions response: %w", err),
		}
	}

	if len(decoded.Routes) == 0 {
		return nil, &domain.RouteUnavailableError{
			From: from, To: to, StatusCode: http.StatusOK, Body: string(body),
			Err: errors.New("no routes in response"),
		}
	}

	coords := decoded.Routes[0].Geometry.Coordinates
	out := make([]domain.GeoPoint, 0, len(coords))
	for i, c := range coords {
		if len(c) < 2 {
			return nil, &domain.RouteUnavailableError{
				From: from, To: to, StatusCode: http.StatusOK, Body: string(body),
				Err: fmt.Errorf("invalid coordinate at index %d", i),
			}
		}
		// GeoJSON order is [lon, lat].
		out = append(out, domain.GeoPoint{Lat: c[1], Lon: c[0]})
	}

	return out, nil
}

// unavailable converts transport and status failures into a RouteUnavailableError.
func unavailable(from, to domain.GeoPoint, err error) error {
	var he *httpStatusError
	if errors.As(err, &he) {
		return &domain.RouteUnavailableError{From: from, To: to, StatusCode: he.Code, Body: he.Body}
	}

	return &domain.RouteUnavailableError{From: from, To: to, Err: err}
}
