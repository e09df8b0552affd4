package dashboard

import (
	"slices"
	"sync"
)

// Input ids a handler can listen on.
const (
	InputInterval = "interval"
	InputDarkMode = "dark-mode-toggle"
)

// Output ids produced by the dashboard handlers.
const (
	OutputNIntervals = "n_intervals"
	OutputReadout    = "readout"
	OutputMap        = "map"
)

// State is the client-side input state at the time of an event.
type State struct {
	NIntervals int
	Dark       bool
}

// Event reports that one input changed.
type Event struct {
	Input string
	State State
}

type Output struct {
	ID    string
	Value any
}

// Handler maps an input state to outputs. It runs for every event whose input is
// listed in Inputs.
type Handler struct {
	Name   string
	Inputs []string
	Fn     func(State) []Output
}

// Dispatcher routes events to registered handlers by input id.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers []Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

func (d *Dispatcher) Register(h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers = append(d.handlers, h)
}

// Dispatch runs every handler listening on evt.Input in registration order and
// returns their outputs keyed by output id.
func (d *Dispatcher) Dispatch(evt Event) map[string]any {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := map[string]any{}
	for _, h := range d.handlers {
		if !slices.Contains(h.Inputs, evt.Input) {
			continue
		}
		for _, o := range h.Fn(evt.State) {
			out[o.ID] = o.Value
		}
	}
	return out
}

// NewDashboard returns a dispatcher wired with the playback, readout and map handlers.
func NewDashboard(frames Frames) *Dispatcher {
	d := NewDispatcher()

	d.Register(Handler{
		Name:   "loop_animation",
		Inputs: []string{InputInterval},
		Fn: func(s State) []Output {
			return []Output{{ID: OutputNIntervals, Value: LoopAnimation(s.NIntervals, frames.Len())}}
		},
	})
	d.Register(Handler{
		Name:   "update_time_and_charging",
		Inputs: []string{InputInterval},
		Fn: func(s State) []Output {
			return []Output{{ID: OutputReadout, Value: UpdateTimeAndCharging(frames, s.NIntervals)}}
		},
	})
	d.Register(Handler{
		Name:   "update_map",
		Inputs: []string{InputInterval, InputDarkMode},
		Fn: func(s State) []Output {
			return []Output{{ID: OutputMap, Value: UpdateMap(frames, s.NIntervals, s.Dark)}}
		},
	})

	return d
}
