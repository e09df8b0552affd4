package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"ev-route-dashboard/internal/domain"
	"ev-route-dashboard/internal/platform/db"
	"ev-route-dashboard/internal/platform/obs"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SQLRouteCache is a SQL-backed cache of origin->destination driving paths.
// Keys are GeoPoint.Key() strings, so points equal to 6 decimals share an entry.
type SQLRouteCache struct {
	DB      *sql.DB
	Dialect string
}

func NewSQLRouteCache(conn *sql.DB, dialect string) *SQLRouteCache {
	return &SQLRouteCache{DB: conn, Dialect: dialect}
}

// Fetch the cached path for one leg.
func (s *SQLRouteCache) Get(
	ctx context.Context,
	from domain.GeoPoint,
	to domain.GeoPoint,
) (_ []domain.GeoPoint, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("route cache: db is nil")
	}

	q := s.rebind(`
	SELECT points_json
    FROM route_cache
    WHERE origin = ?
        AND destination = ?;
	`)

	var raw string
	err = s.DB.QueryRowContext(ctx, q, from.Key(), to.Key()).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}

	var pairs [][2]float64
	if err := json.Unmarshal([]byte(raw), &pairs); err != nil {
		return nil, false, fmt.Errorf("get route cache: decode points: %w", err)
	}

	out := make([]domain.GeoPoint, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, domain.GeoPoint{Lat: p[0], Lon: p[1]})
	}

	return out, true, nil
}

// Store the path for one leg, replacing an existing entry.
func (s *SQLRouteCache) Put(
	ctx context.Context,
	from domain.GeoPoint,
	to domain.GeoPoint,
	points []domain.GeoPoint,
) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}

	if len(points) == 0 {
		return errors.New("insert route cache: points must not be empty")
	}

	pairs := make([][2]float64, 0, len(points))
	for _, p := range points {
		pairs = append(pairs, [2]float64{p.Lat, p.Lon})
	}

	raw, err := json.Marshal(pairs)
	if err != nil {
		return fmt.Errorf("insert route cache: encode points: %w", err)
	}

	q := s.rebind(`
	INSERT INTO route_cache (origin, destination, points_json, fetched_at)
    VALUES (?, ?, ?, ?)
	ON CONFLICT (origin, destination) DO UPDATE
	SET points_json = EXCLUDED.points_json,
		fetched_at = EXCLUDED.fetched_at;
	`)

	if _, err := s.DB.ExecContext(ctx, q, from.Key(), to.Key(), string(raw), time.Now().UTC().Unix()); err != nil {
		return fmt.Errorf("insert route cache %s -> %s: %w", from.Key(), to.Key(), err)
	}

	return nil
}

// rebind rewrites '?' placeholders to $n for Postgres.
func (s *SQLRouteCache) rebind(q string) string {
	if s.Dialect != db.DialectPostgres {
		return q
	}

	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
