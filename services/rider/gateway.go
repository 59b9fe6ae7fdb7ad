package rider

import (
	"context"

	"github.com/yatralink/bustrack/internal/pkg/models"
)

// WeatherGW looks up current weather for a coordinate. Failures are
// reported as models.UnavailableWeather, never as errors.
type WeatherGW interface {
	Current(ctx context.Context, latitude, longitude float64) models.Weather
}
