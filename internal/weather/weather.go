package weather

import (
	"context"
	"time"
)

// Units selects the temperature/wind unit system.
type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
)

// TemperatureSymbol returns the display symbol for temperatures in u.
func (u Units) TemperatureSymbol() string {
	if u == UnitsImperial {
		return "°F"
	}
	return "°C"
}

// WindUnit returns the display unit for wind speed in u.
func (u Units) WindUnit() string {
	if u == UnitsImperial {
		return "mph"
	}
	return "m/s"
}

// Reading is one normalized current-conditions result.
type Reading struct {
	City        string    `json:"city"`
	Temperature float64   `json:"temperature"`
	FeelsLike   float64   `json:"feels_like"`
	Humidity    int       `json:"humidity"`
	Conditions  string    `json:"conditions"`
	WindSpeed   float64   `json:"wind_speed"`
	Units       Units     `json:"units"`
	ObservedAt  time.Time `json:"observed_at"`
}

// Gateway wraps the current-conditions provider.
type Gateway interface {
	Current(ctx context.Context, city string, units Units) (Reading, error)
}
