package weather

import (
	"context"
	"errors"
)

// DefaultCity is used when a request does not name a city.
const DefaultCity = "Amsterdam"

// ErrNoAPIKey is returned by the HTTP client when no key is configured.
var ErrNoAPIKey = errors.New("weather: api key not configured")

// Report is the current conditions for a city.
type Report struct {
	Temperature int    `json:"temperature"`
	Condition   string `json:"condition"`
	Location    string `json:"location"`
	Icon        string `json:"icon"`
	Demo        bool   `json:"demo,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Source returns current conditions for a city.
type Source interface {
	Current(ctx context.Context, city string) (Report, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, city string) (Report, error)

// Current implements Source.
func (f SourceFunc) Current(ctx context.Context, city string) (Report, error) {
	return f(ctx, city)
}

var icons = map[string]string{
	"01d": "☀️",
	"01n": "🌙",
	"02d": "⛅",
	"02n": "⛅",
	"03d": "☁️",
	"03n": "☁️",
}

// Icon maps an OpenWeather icon code to an emoji.
func Icon(code string) string {
	if icon, ok := icons[code]; ok {
		return icon
	}
	return "🌤️"
}
