package gateway

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/yatralink/bustrack/internal/pkg/cache"
	"github.com/yatralink/bustrack/internal/pkg/circuitbreaker"
	httpclient "github.com/yatralink/bustrack/internal/pkg/http"
	"github.com/yatralink/bustrack/internal/pkg/logger"
	"github.com/yatralink/bustrack/internal/pkg/models"
	"github.com/yatralink/bustrack/internal/pkg/retry"
	"github.com/yatralink/bustrack/internal/utils"
	"github.com/yatralink/bustrack/services/rider"
)

const forecastPath = "/v1/forecast"

type forecastResponse struct {
	CurrentWeather *struct {
		Temperature float64 `json:"temperature"`
		WindSpeed   float64 `json:"windspeed"`
		WeatherCode *int    `json:"weathercode"`
	} `json:"current_weather"`
}

// WeatherGW reads current conditions from an Open-Meteo compatible API.
// Answers are cached per 0.01 degree cell.
type WeatherGW struct {
	client *httpclient.Client
	cache  *cache.Cache[models.Weather]
}

// NewWeatherGW creates the weather gateway
func NewWeatherGW(cfg models.WeatherConfig, l *logger.ZapLogger) *WeatherGW {
	retryCfg := retry.DefaultConfig()
	retryCfg.MaxRetries = 2
	retryCfg.MaxDelay = 2 * cfg.Timeout

	client := httpclient.NewClient(httpclient.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Retry:   retryCfg,
		Breaker: breakerConfig(cfg),
	}, l)
	return newWeatherGW(client, cfg.CacheTTL)
}

// breakerConfig keeps the breaker default unless BreakerTimeout is set
func breakerConfig(cfg models.WeatherConfig) circuitbreaker.Config {
	breakerCfg := circuitbreaker.DefaultConfig("weather")
	if cfg.BreakerTimeout > 0 {
		breakerCfg.Timeout = cfg.BreakerTimeout
	}
	return breakerCfg
}

func newWeatherGW(client *httpclient.Client, cacheTTL time.Duration) *WeatherGW {
	return &WeatherGW{
		client: client,
		cache:  cache.New[models.Weather](cacheTTL),
	}
}

// Current returns the weather at the coordinate or UnavailableWeather
func (g *WeatherGW) Current(ctx context.Context, latitude, longitude float64) models.Weather {
	if !utils.IsFiniteCoordinate(latitude, longitude) {
		return models.UnavailableWeather
	}

	key := cellKey(latitude, longitude)
	if w, ok := g.cache.Get(key); ok {
		return w
	}

	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	query.Set("current_weather", "true")

	var resp forecastResponse
	if err := g.client.GetJSON(ctx, forecastPath, query, &resp); err != nil {
		logger.Warn("Weather lookup failed",
			logger.String("cell", key),
			logger.Err(err))
		return models.UnavailableWeather
	}
	if resp.CurrentWeather == nil || resp.CurrentWeather.WeatherCode == nil {
		logger.Warn("Weather response has no current conditions",
			logger.String("cell", key))
		return models.UnavailableWeather
	}

	w := MapWeatherCode(*resp.CurrentWeather.WeatherCode)
	g.cache.Set(key, w)
	return w
}

// Breaker exposes the upstream circuit breaker for health checks
func (g *WeatherGW) Breaker() *circuitbreaker.CircuitBreaker {
	return g.client.Breaker()
}

// Close stops the cache sweeper
func (g *WeatherGW) Close() {
	g.cache.Close()
}

// MapWeatherCode maps a WMO weather code onto the conditions the
// estimator understands
func MapWeatherCode(code int) models.Weather {
	switch code {
	case 61, 63, 65:
		return models.Weather{Condition: models.WeatherRainy, Road: models.RoadSlippery, Code: code}
	case 71, 73, 75:
		return models.Weather{Condition: models.WeatherSnow, Road: models.RoadVeryDangerous, Code: code}
	case 45, 48:
		return models.Weather{Condition: models.WeatherFog, Road: models.RoadLowVisibility, Code: code}
	default:
		return models.Weather{Condition: models.WeatherClear, Road: models.RoadNormal, Code: code}
	}
}

func cellKey(latitude, longitude float64) string {
	return fmt.Sprintf("%.2f,%.2f", latitude, longitude)
}

var _ rider.WeatherGW = (*WeatherGW)(nil)
