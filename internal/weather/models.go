package weather

import "errors"

// ErrUnavailable is returned when the upstream weather service cannot
// produce a snapshot (timeout, bad response, invalid coordinates).
var ErrUnavailable = errors.New("weather data unavailable")

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown Condition = "unknown"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionStorm   Condition = "storm"
	ConditionMist    Condition = "mist"
)

// Current is a point-in-time reading.
type Current struct {
	Temperature float64   `json:"temperatureC"`
	WindSpeed   float64   `json:"windSpeedKmh"`
	Condition   Condition `json:"condition"`
}

// Day summarizes the rest of the day at the same coordinates.
type Day struct {
	TempMin   float64   `json:"tempMinC"`
	TempMax   float64   `json:"tempMaxC"`
	PrecipMM  float64   `json:"precipMm"`
	Condition Condition `json:"condition"`
}

// Snapshot bundles the current and daily conditions for one pair of
// coordinates. The router passes it through to formatting untouched.
type Snapshot struct {
	Current Current `json:"current"`
	Today   Day     `json:"today"`
}
