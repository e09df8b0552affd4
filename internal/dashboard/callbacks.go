package dashboard

import (
	"ev-route-dashboard/internal/domain"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

const (
	// StyleDark is the Mapbox dark basemap.
	StyleDark  = "mapbox://styles/mapbox/dark-v11"
	// StyleLight is the open-street-map raster preset rendered by the page.
	StyleLight = "open-street-map"

	ColorOptimized   = "#7DF9FF"
	ColorUnoptimized = "#FF4500"

	PathWidth       = 6
	VanMarkerSize   = 20
	StopMarkerSize  = 10
	FeatureKindPath = "path"
	FeatureKindVan  = "van"
	FeatureKindStop = "charging_stop"
)

// Frames is the read side of a simulated animation.
type Frames interface {
	Len() int
	Index(tick int) int
	Frame(tick int) domain.AnimationFrame
	Path(s domain.Scenario) domain.TripPath
	ChargingStops() []domain.ChargingStop
}

// Readout is the clock and battery text shown over each map.
type Readout struct {
	Index              int    `json:"index"`
	TimeOptimized      string `json:"time_optimized"`
	BatteryOptimized   string `json:"battery_optimized"`
	TimeUnoptimized    string `json:"time_unoptimized"`
	BatteryUnoptimized string `json:"battery_unoptimized"`
}

// MapUpdate is the basemap style plus one feature collection per scenario.
type MapUpdate struct {
	Index       int                        `json:"index"`
	Style       string                     `json:"style"`
	Optimized   *geojson.FeatureCollection `json:"optimized"`
	Unoptimized *geojson.FeatureCollection `json:"unoptimized"`
}

// LoopAnimation returns the next interval count, restarting at 0 once the
// count reaches the sequence length.
func LoopAnimation(nIntervals int, length int) int {
	if nIntervals >= length {
		return 0
	}
	return nIntervals + 1
}

func UpdateTimeAndCharging(frames Frames, nIntervals int) Readout {
	f := frames.Frame(nIntervals)
	return Readout{
		Index:              f.Index,
		TimeOptimized:      f.TimeLabel,
		BatteryOptimized:   f.Optimized.Battery.String(),
		TimeUnoptimized:    f.TimeLabel,
		BatteryUnoptimized: f.Unoptimized.Battery.String(),
	}
}

func UpdateMap(frames Frames, nIntervals int, dark bool) MapUpdate {
	style := StyleLight
	if dark {
		style = StyleDark
	}

	f := frames.Frame(nIntervals)
	return MapUpdate{
		Index:       f.Index,
		Style:       style,
		Optimized:   scenarioFeatures(frames, domain.Optimized, f.Optimized.PrefixLen),
		Unoptimized: scenarioFeatures(frames, domain.Unoptimized, f.Unoptimized.PrefixLen),
	}
}

// ScenarioColor returns the display colour for a scenario.
func ScenarioColor(s domain.Scenario) string {
	if s == domain.Unoptimized {
		return ColorUnoptimized
	}
	return ColorOptimized
}

// ChargingStopFeatures renders the charging stops in the given colour.
func ChargingStopFeatures(stops []domain.ChargingStop, color string) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	appendStops(fc, stops, color)
	return fc
}

func scenarioFeatures(frames Frames, s domain.Scenario, prefixLen int) *geojson.FeatureCollection {
	color := ScenarioColor(s)
	prefix := frames.Path(s).Prefix(prefixLen)

	fc := geojson.NewFeatureCollection()

	line := make(orb.LineString, 0, len(prefix))
	for _, p := range prefix {
		line = append(line, p.Point())
	}
	path := geojson.NewFeature(line)
	path.Properties["kind"] = FeatureKindPath
	path.Properties["scenario"] = string(s)
	path.Properties["color"] = color
	path.Properties["width"] = PathWidth
	fc.Append(path)

	if len(prefix) > 0 {
		van := geojson.NewFeature(prefix[len(prefix)-1].Point())
		van.Properties["kind"] = FeatureKindVan
		van.Properties["scenario"] = string(s)
		van.Properties["color"] = color
		van.Properties["size"] = VanMarkerSize
		fc.Append(van)
	}

	appendStops(fc, frames.ChargingStops(), color)
	return fc
}

func appendStops(fc *geojson.FeatureCollection, stops []domain.ChargingStop, color string) {
	for _, st := range stops {
		f := geojson.NewFeature(st.Location.Point())
		f.Properties["kind"] = FeatureKindStop
		f.Properties["label"] = st.Distance
		f.Properties["color"] = color
		f.Properties["size"] = StopMarkerSize
		fc.Append(f)
	}
}
