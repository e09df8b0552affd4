package services

import (
	"ev-route-dashboard/internal/domain"
)

// Animation is the precomputed playback sequence. It is immutable after Simulate
// returns and safe for concurrent readers; the playback index lives with the caller.
// Only Simulate builds one, and it always holds at least one frame; Frame on a
// zero-value Animation panics.
type Animation struct {
	frames        []domain.AnimationFrame
	paths         map[domain.Scenario]domain.TripPath
	chargingStops []domain.ChargingStop
	center        domain.GeoPoint
}

func (a *Animation) Len() int { return len(a.frames) }

// Index wraps tick into [0, Len()); negative ticks wrap from the end.
func (a *Animation) Index(tick int) int {
	n := len(a.frames)
	if n == 0 {
		return 0
	}
	i := tick % n
	if i < 0 {
		i += n
	}
	return i
}

// Frame returns the frame for tick, wrapped modulo Len().
func (a *Animation) Frame(tick int) domain.AnimationFrame {
	return a.frames[a.Index(tick)]
}

func (a *Animation) TimeLabels() []string {
	out := make([]string, len(a.frames))
	for i, f := range a.frames {
		out[i] = f.TimeLabel
	}
	return out
}

// BatteryLabels returns the "42%" battery readout per frame for a scenario.
func (a *Animation) BatteryLabels(s domain.Scenario) []string {
	out := make([]string, len(a.frames))
	for i, f := range a.frames {
		out[i] = f.For(s).Battery.String()
	}
	return out
}

func (a *Animation) Path(s domain.Scenario) domain.TripPath { return a.paths[s] }

func (a *Animation) ChargingStops() []domain.ChargingStop { return a.chargingStops }

func (a *Animation) Center() domain.GeoPoint { return a.center }
