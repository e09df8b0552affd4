package api

import (
	"encoding/json"
	"ev-route-dashboard/internal/api/dto"
	"ev-route-dashboard/internal/dashboard"
	"ev-route-dashboard/internal/domain"
	"ev-route-dashboard/internal/services"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func newTestDeps(t *testing.T) Deps {
	t.Helper()

	mk := func(s domain.Scenario, n int) domain.TripPath {
		p := domain.TripPath{Scenario: s}
		for i := range n {
			p.Points = append(p.Points, domain.GeoPoint{Lat: 42.3 + float64(i)*0.001, Lon: -83.1})
		}
		return p
	}

	start, _ := time.Parse("15:04", "09:00")
	anim, err := services.Simulate(services.SimParams{
		Start:         start,
		Window:        6 * time.Hour,
		Center:        domain.GeoPoint{Lat: 42.3223, Lon: -83.1763},
		ChargingStops: []domain.ChargingStop{{Location: domain.GeoPoint{Lat: 42.31, Lon: -83.17}, Distance: "1.1 miles"}},
	}, mk(domain.Optimized, 5), mk(domain.Unoptimized, 8), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}

	broker := dashboard.NewBroker()
	return Deps{
		Animation:     anim,
		Broker:        broker,
		Player:        dashboard.NewPlayer(anim.Len(), time.Hour, broker),
		AccessToken:   "pk.test",
		FrameInterval: 500 * time.Millisecond,
	}
}

func TestHealth(t *testing.T) {
	h := NewRouter(newTestDeps(t))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected a request id header")
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/health", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST status = %d, want 405", rr.Code)
	}
}

func TestConfigAndSummary(t *testing.T) {
	h := NewRouter(newTestDeps(t))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/config", nil))
	var cfg dto.ConfigResponse
	if err := json.NewDecoder(rr.Body).Decode(&cfg); err != nil {
		t.Fatalf("decode config: %v", err)
	}
	if cfg.Center.Lat != 42.3223 || cfg.AccessToken != "pk.test" || cfg.FrameIntervalMS != 500 {
		t.Fatalf("config = %+v", cfg)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/animation", nil))
	var sum dto.AnimationSummaryResponse
	if err := json.NewDecoder(rr.Body).Decode(&sum); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if sum.Frames != 8 || len(sum.TimeLabels) != 8 || sum.ChargingStops != 1 {
		t.Fatalf("summary = %+v", sum)
	}
	if sum.Scenarios["optimized"].PathLength != 5 || len(sum.Scenarios["unoptimized"].BatteryLabels) != 8 {
		t.Fatalf("scenarios = %+v", sum.Scenarios)
	}
}

func TestFrameEndpoint(t *testing.T) {
	h := NewRouter(newTestDeps(t))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/frames/9?dark=false", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rr.Code, rr.Body.String())
	}

	var res dto.FrameResponse
	if err := json.NewDecoder(rr.Body).Decode(&res); err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	if res.Readout.Index != 1 {
		t.Fatalf("tick 9 over 8 frames should show index 1, got %d", res.Readout.Index)
	}
	if res.NextTick != 0 {
		t.Fatalf("next tick = %d, want 0", res.NextTick)
	}
	if res.Map.Style != dashboard.StyleLight {
		t.Fatalf("style = %q", res.Map.Style)
	}

	for _, bad := range []string{"/api/frames/abc", "/api/frames/1?dark=maybe"} {
		rr = httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, bad, nil))
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("%s status = %d, want 400", bad, rr.Code)
		}
	}
}

func TestChargingStopsAndIndex(t *testing.T) {
	h := NewRouter(newTestDeps(t))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/charging-stops", nil))
	var fc map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&fc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if fc["type"] != "FeatureCollection" {
		t.Fatalf("type = %v", fc["type"])
	}
	if feats, _ := fc["features"].([]any); len(feats) != 1 {
		t.Fatalf("features = %v", fc["features"])
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "map-optimized") {
		t.Fatalf("index status = %d", rr.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h := NewRouter(newTestDeps(t))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestStreamPushesFrames(t *testing.T) {
	deps := newTestDeps(t)
	srv := httptest.NewServer(NewRouter(deps))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var hello dto.StreamMessage
	if err := conn.ReadJSON(&hello); err != nil {
		t.Fatalf("read hello: %v", err)
	}
	if hello.Type != "hello" || hello.Session == "" {
		t.Fatalf("hello = %+v", hello)
	}

	var first dto.StreamMessage
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("read first frame: %v", err)
	}
	if first.Type != "frame" || first.Readout == nil || first.Map == nil || first.Map.Style != dashboard.StyleDark {
		t.Fatalf("first frame = %+v", first)
	}

	if err := conn.WriteJSON(map[string]any{"type": "toggle", "dark": false}); err != nil {
		t.Fatalf("write toggle: %v", err)
	}
	var toggled dto.StreamMessage
	if err := conn.ReadJSON(&toggled); err != nil {
		t.Fatalf("read toggled frame: %v", err)
	}
	if toggled.Map == nil || toggled.Map.Style != dashboard.StyleLight || toggled.Readout != nil {
		t.Fatalf("toggled frame = %+v", toggled)
	}

	// the viewer is subscribed before the first frame is written
	deps.Player.Advance(time.Now())

	var ticked dto.StreamMessage
	if err := conn.ReadJSON(&ticked); err != nil {
		t.Fatalf("read ticked frame: %v", err)
	}
	if ticked.Tick != 1 || ticked.Readout == nil || ticked.Map.Style != dashboard.StyleLight {
		t.Fatalf("ticked frame = %+v", ticked)
	}
}
