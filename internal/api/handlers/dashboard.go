package handlers

import (
	"ev-route-dashboard/internal/api/dto"
	"ev-route-dashboard/internal/dashboard"
	"ev-route-dashboard/internal/domain"
	"ev-route-dashboard/internal/services"
	"net/http"
	"strconv"
	"time"
)

const defaultZoom = 12

type DashboardHandler struct {
	Animation     *services.Animation
	Dispatcher    *dashboard.Dispatcher
	AccessToken   string
	FrameInterval time.Duration
}

// Config returns what the browser needs to draw the two maps.
func (h *DashboardHandler) Config(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	c := h.Animation.Center()
	res := dto.ConfigResponse{
		Center:          dto.CenterResponse{Lat: c.Lat, Lon: c.Lon},
		Zoom:            defaultZoom,
		AccessToken:     h.AccessToken,
		FrameIntervalMS: h.FrameInterval.Milliseconds(),
		StyleDark:       dashboard.StyleDark,
		StyleLight:      dashboard.StyleLight,
		Colors: map[string]string{
			string(domain.Optimized):   dashboard.ColorOptimized,
			string(domain.Unoptimized): dashboard.ColorUnoptimized,
		},
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	scenarios := make(map[string]dto.ScenarioSummary, len(domain.Scenarios))
	for _, s := range domain.Scenarios {
		scenarios[string(s)] = dto.ScenarioSummary{
			PathLength:    h.Animation.Path(s).Len(),
			BatteryLabels: h.Animation.BatteryLabels(s),
		}
	}

	res := dto.AnimationSummaryResponse{
		Frames:        h.Animation.Len(),
		ChargingStops: len(h.Animation.ChargingStops()),
		TimeLabels:    h.Animation.TimeLabels(),
		Scenarios:     scenarios,
	}
	writeJSON(w, r, http.StatusOK, res)
}

// Frame renders the readout and map state for an interval count.
// The tick wraps modulo the animation length; ?dark=false selects the light basemap.
func (h *DashboardHandler) Frame(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	tick, err := strconv.Atoi(r.PathValue("tick"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "tick must be an integer")
		return
	}

	dark := true
	if v := r.URL.Query().Get("dark"); v != "" {
		dark, err = strconv.ParseBool(v)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "dark must be a boolean")
			return
		}
	}

	out := h.Dispatcher.Dispatch(dashboard.Event{
		Input: dashboard.InputInterval,
		State: dashboard.State{NIntervals: tick, Dark: dark},
	})

	readout, _ := out[dashboard.OutputReadout].(dashboard.Readout)
	mapUpdate, _ := out[dashboard.OutputMap].(dashboard.MapUpdate)
	next, _ := out[dashboard.OutputNIntervals].(int)

	res := dto.FrameResponse{
		Tick:     tick,
		NextTick: next,
		Readout:  readout,
		Map:      mapUpdate,
	}
	writeJSON(w, r, http.StatusOK, res)
}

// ChargingStops returns the charging stops as a GeoJSON FeatureCollection.
func (h *DashboardHandler) ChargingStops(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	color := dashboard.ScenarioColor(domain.Optimized)
	if r.URL.Query().Get("scenario") == string(domain.Unoptimized) {
		color = dashboard.ScenarioColor(domain.Unoptimized)
	}

	writeJSON(w, r, http.StatusOK, dashboard.ChargingStopFeatures(h.Animation.ChargingStops(), color))
}
