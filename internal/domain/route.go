package domain

// Scenario identifies one of the two animated vans.
type Scenario string

const (
	Optimized   Scenario = "optimized"
	Unoptimized Scenario = "unoptimized"
)

// Scenarios lists both scenarios in display order.
var Scenarios = []Scenario{Optimized, Unoptimized}

// Represents the driving path between two consecutive stops.
// Points are ordered from From to To; duplicates between adjacent legs are kept.
type RouteLeg struct {
	From   GeoPoint
	To     GeoPoint
	Points []GeoPoint
}

// Represents the full concatenated route driven by one van.
// Its length drives the number of animation steps.
type TripPath struct {
	Scenario Scenario
	Points   []GeoPoint
}

func (p TripPath) Len() int { return len(p.Points) }

// Append adds a leg's waypoints in trip order.
func (p *TripPath) Append(leg RouteLeg) {
	p.Points = append(p.Points, leg.Points...)
}

// Prefix returns the first n points, clamped to [0, Len()].
func (p TripPath) Prefix(n int) []GeoPoint {
	if n < 0 {
		n = 0
	}
	if n > len(p.Points) {
		n = len(p.Points)
	}
	return p.Points[:n]
}
