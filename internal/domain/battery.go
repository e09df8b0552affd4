package domain

import "strconv"

const (
	BatteryFull   Battery = 100
	BatteryEmpty  Battery = 0
	ChargePerStep Battery = 20
	DrainPerStep  Battery = 1
)

// Battery is a state of charge in whole percent, always within [0, 100].
type Battery int

// Charge adds one charging step, clamped at full.
func (b Battery) Charge() Battery {
	return min(b+ChargePerStep, BatteryFull)
}

// Drain removes one driving step, floored at empty.
func (b Battery) Drain() Battery {
	return max(b-DrainPerStep, BatteryEmpty)
}

func (b Battery) String() string { return strconv.Itoa(int(b)) + "%" }
