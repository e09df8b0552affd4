package domain

// A charging station shown on both maps.
// Distance is a display label (e.g. "1.3 miles") and is never parsed back.
type ChargingStop struct {
	Location GeoPoint
	Distance string
}
