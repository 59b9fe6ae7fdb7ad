package usecase

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yatralink/bustrack/internal/pkg/models"
)

func TestEstimate_WorkedExamples(t *testing.T) {
	tests := []struct {
		name    string
		km      float64
		hour    int
		weather models.WeatherCondition
		eta     float64
		speed   float64
		crowd   models.CrowdLevel
		delay   models.DelayStatus
	}{
		{name: "rainy morning peak", km: 4, hour: 8, weather: models.WeatherRainy, eta: 24.0, speed: 10, crowd: models.CrowdHigh, delay: models.OnTime},
		{name: "clear late night", km: 20, hour: 23, weather: models.WeatherClear, eta: 26.666, speed: 45, crowd: models.CrowdLow, delay: models.OnTime},
		{name: "foggy morning peak", km: 10, hour: 9, weather: models.WeatherFog, eta: 60.0, speed: 10, crowd: models.CrowdHigh, delay: models.Delayed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Estimate(tt.km, tt.hour, tt.weather)

			assert.InDelta(t, tt.eta, got.EtaMinutes, 0.01)
			assert.Equal(t, tt.speed, got.SpeedKmh)
			assert.Equal(t, tt.crowd, got.CrowdLevel)
			assert.Equal(t, tt.delay, got.DelayStatus)
		})
	}
}

func TestBaseSpeedKmh(t *testing.T) {
	expected := map[int]float64{
		0: 45, 1: 45, 2: 45, 3: 45, 4: 45, 5: 45,
		6: 35,
		7: 16, 8: 16, 9: 16, 10: 16,
		11: 35, 12: 35, 13: 35, 14: 35, 15: 35, 16: 35,
		17: 18, 18: 18, 19: 18, 20: 18,
		21: 35,
		22: 45, 23: 45,
	}
	for hour, speed := range expected {
		assert.Equal(t, speed, BaseSpeedKmh(hour), "hour %d", hour)
	}
}

func TestCrowdLevelAt(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		want := models.CrowdLow
		switch {
		case hour >= 7 && hour <= 10, hour >= 17 && hour <= 20:
			want = models.CrowdHigh
		case hour >= 12 && hour <= 15:
			want = models.CrowdMedium
		}
		assert.Equal(t, want, CrowdLevelAt(hour), "hour %d", hour)
	}
}

func TestSpeedKmh_Weather(t *testing.T) {
	assert.Equal(t, 35.0, SpeedKmh(12, models.WeatherClear))
	assert.Equal(t, 29.0, SpeedKmh(12, models.WeatherRainy))
	assert.Equal(t, 25.0, SpeedKmh(12, models.WeatherFog))
	assert.Equal(t, 35.0, SpeedKmh(12, models.WeatherSnow))
	assert.Equal(t, 35.0, SpeedKmh(12, models.WeatherUnavailable), "unavailable weather counts as clear")
	assert.Equal(t, 12.0, SpeedKmh(17, models.WeatherRainy))
}

func TestEstimate_Properties(t *testing.T) {
	conditions := []models.WeatherCondition{
		models.WeatherClear, models.WeatherRainy, models.WeatherSnow,
		models.WeatherFog, models.WeatherUnavailable,
	}
	distances := []float64{0, 0.001, 0.5, 1, 4, 10, 30, 120.5, 1000}

	for hour := 0; hour < 24; hour++ {
		for _, weather := range conditions {
			for _, km := range distances {
				got := Estimate(km, hour, weather)
				assert.GreaterOrEqual(t, got.EtaMinutes, 0.0)
				assert.GreaterOrEqual(t, got.SpeedKmh, MinSpeedKmh)
				assert.Equal(t, got.EtaMinutes > DelayThresholdMinutes, got.DelayStatus == models.Delayed)
			}
		}
	}
}

func TestEstimate_ClampsInputs(t *testing.T) {
	assert.Equal(t, 0.0, Estimate(-5, 12, models.WeatherClear).EtaMinutes)
	assert.Equal(t, 0.0, Estimate(math.NaN(), 12, models.WeatherClear).EtaMinutes)

	assert.Equal(t, Estimate(4, 8, models.WeatherClear), Estimate(4, 32, models.WeatherClear))
	assert.Equal(t, Estimate(4, 23, models.WeatherClear), Estimate(4, -1, models.WeatherClear))
}
