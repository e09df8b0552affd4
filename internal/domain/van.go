package domain

// Electric van aggregate walking a TripPath step by step.
// ChargingSteps holds the path indices at which the van recharges instead of driving.
type Van struct {
	Scenario      Scenario
	Battery       Battery
	Path          TripPath
	ChargingSteps map[int]struct{}
}

func NewVan(path TripPath, chargingSteps map[int]struct{}) *Van {
	if chargingSteps == nil {
		chargingSteps = map[int]struct{}{}
	}
	return &Van{
		Scenario:      path.Scenario,
		Battery:       BatteryFull,
		Path:          path,
		ChargingSteps: chargingSteps,
	}
}

// IsCharging reports whether step i is a charging step.
func (v *Van) IsCharging(i int) bool {
	_, ok := v.ChargingSteps[i]
	return ok
}

// Step applies step i to the battery and returns the resulting frame for this van.
// The path prefix grows by one point per step until the path is exhausted, then holds.
func (v *Van) Step(i int) ScenarioFrame {
	charging := v.IsCharging(i)
	if charging {
		v.Battery = v.Battery.Charge()
	} else {
		v.Battery = v.Battery.Drain()
	}

	return ScenarioFrame{
		PrefixLen: min(i+1, v.Path.Len()),
		Battery:   v.Battery,
		Charging:  charging,
	}
}
