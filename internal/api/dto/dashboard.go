package dto

import (
	"ev-route-dashboard/internal/dashboard"
)

type CenterResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type ConfigResponse struct {
	Center          CenterResponse    `json:"center"`
	Zoom            int               `json:"zoom"`
	AccessToken     string            `json:"access_token"`
	FrameIntervalMS int64             `json:"frame_interval_ms"`
	StyleDark       string            `json:"style_dark"`
	StyleLight      string            `json:"style_light"`
	Colors          map[string]string `json:"colors"`
}

type ScenarioSummary struct {
	PathLength    int      `json:"path_length"`
	BatteryLabels []string `json:"battery_labels"`
}

type AnimationSummaryResponse struct {
	Frames        int                        `json:"frames"`
	ChargingStops int                        `json:"charging_stops"`
	TimeLabels    []string                   `json:"time_labels"`
	Scenarios     map[string]ScenarioSummary `json:"scenarios"`
}

type FrameResponse struct {
	Tick     int                 `json:"tick"`
	NextTick int                 `json:"next_tick"`
	Readout  dashboard.Readout   `json:"readout"`
	Map      dashboard.MapUpdate `json:"map"`
}


// StreamMessage is pushed to websocket viewers. Readout is omitted on style-only updates.
type StreamMessage struct {
	Type    string               `json:"type"`
	Session string               `json:"session,omitempty"`
	Tick    int                  `json:"tick"`
	Readout *dashboard.Readout   `json:"readout,omitempty"`
	Map     *dashboard.MapUpdate `json:"map,omitempty"`
}

// ClientMessage is sent by viewers, e.g. {"type":"toggle","dark":false}.
type ClientMessage struct {
	Type string `json:"type"`
	Dark *bool  `json:"dark"`
}
