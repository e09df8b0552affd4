package domain

// Per-scenario state at one animation step.
type ScenarioFrame struct {
	PrefixLen int
	Battery   Battery
	Charging  bool
}

// AnimationFrame is the snapshot for one step index; the full sequence is built once
// and replayed by index.
type AnimationFrame struct {
	Index       int
	TimeLabel   string
	Optimized   ScenarioFrame
	Unoptimized ScenarioFrame
}

// For returns the scenario's part of the frame.
func (f AnimationFrame) For(s Scenario) ScenarioFrame {
	if s == Unoptimized {
		return f.Unoptimized
	}
	return f.Optimized
}
