package cache

import (
	"context"
	"ev-route-dashboard/internal/adapters/repositories"
	"ev-route-dashboard/internal/domain"
	"ev-route-dashboard/internal/platform/db"
	"strings"
	"testing"
)

func newSQLiteCache(t *testing.T) *SQLRouteCache {
	t.Helper()
	conn, err := db.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	if err := repositories.InitSchema(conn); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return NewSQLRouteCache(conn, db.DialectSQLite)
}

func TestSQLRouteCacheMissThenHit(t *testing.T) {
	ctx := context.Background()
	c := newSQLiteCache(t)

	from := domain.GeoPoint{Lat: 42.3223, Lon: -83.1763}
	to := domain.GeoPoint{Lat: 42.31, Lon: -83.2}

	_, ok, err := c.Get(ctx, from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected a miss on an empty cache")
	}

	points := []domain.GeoPoint{from, {Lat: 42.315, Lon: -83.19}, to}
	if err := c.Put(ctx, from, to, points); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := c.Get(ctx, from, to)
	if err != nil || !ok {
		t.Fatalf("get after put: ok=%v err=%v", ok, err)
	}
	if len(got) != 3 || got[1] != points[1] {
		t.Fatalf("got %+v, want %+v", got, points)
	}

	// the reverse direction is a different leg
	if _, ok, _ := c.Get(ctx, to, from); ok {
		t.Fatal("reverse leg should miss")
	}
}

func TestSQLRouteCachePutReplaces(t *testing.T) {
	ctx := context.Background()
	c := newSQLiteCache(t)

	from := domain.GeoPoint{Lat: 1, Lon: 2}
	to := domain.GeoPoint{Lat: 3, Lon: 4}

	if err := c.Put(ctx, from, to, []domain.GeoPoint{from, to}); err != nil {
		t.Fatalf("first put: %v", err)
	}
	if err := c.Put(ctx, from, to, []domain.GeoPoint{from}); err != nil {
		t.Fatalf("second put: %v", err)
	}

	got, _, err := c.Get(ctx, from, to)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected replaced entry with 1 point, got %d", len(got))
	}

	if err := c.Put(ctx, from, to, nil); err == nil {
		t.Fatal("expected error for empty points")
	}
}

func TestRebindPostgres(t *testing.T) {
	c := &SQLRouteCache{Dialect: db.DialectPostgres}
	got := c.rebind("WHERE a = ? AND b = ?")
	if !strings.Contains(got, "a = $1") || !strings.Contains(got, "b = $2") {
		t.Fatalf("rebind = %q", got)
	}

	s := &SQLRouteCache{Dialect: db.DialectSQLite}
	if got := s.rebind("a = ?"); got != "a = ?" {
		t.Fatalf("sqlite rebind changed query: %q", got)
	}
}
