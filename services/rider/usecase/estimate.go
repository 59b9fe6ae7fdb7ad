package usecase

import (
	"math"

	"github.com/yatralink/bustrack/internal/pkg/models"
)

const (
	// MinSpeedKmh keeps estimates finite when weather slows traffic down
	MinSpeedKmh = 10.0
	// DelayThresholdMinutes marks an arrival further out than this as delayed
	DelayThresholdMinutes = 30.0
)

// BaseSpeedKmh returns the typical bus speed for an hour of day
func BaseSpeedKmh(hour int) float64 {
	hour = normalizeHour(hour)
	switch {
	case hour >= 7 && hour <= 10:
		return 16
	case hour >= 17 && hour <= 20:
		return 18
	case hour >= 22 || hour <= 5:
		return 45
	default:
		return 35
	}
}

// SpeedKmh applies the weather adjustment and the speed floor.
// Unavailable weather is treated as clear.
func SpeedKmh(hour int, weather models.WeatherCondition) float64 {
	speed := BaseSpeedKmh(hour)
	switch weather {
	case models.WeatherRainy:
		speed -= 6
	case models.WeatherFog:
		speed -= 10
	}
	return math.Max(speed, MinSpeedKmh)
}

// CrowdLevelAt returns the expected crowding for an hour of day
func CrowdLevelAt(hour int) models.CrowdLevel {
	hour = normalizeHour(hour)
	switch {
	case hour >= 7 && hour <= 10, hour >= 17 && hour <= 20:
		return models.CrowdHigh
	case hour >= 12 && hour <= 15:
		return models.CrowdMedium
	default:
		return models.CrowdLow
	}
}

// Estimate predicts arrival from distance, hour of day and weather. It is a
// heuristic: it knows nothing about routes or traffic. Negative and NaN
// distances count as zero.
func Estimate(distanceKm float64, hour int, weather models.WeatherCondition) models.Estimate {
	if math.IsNaN(distanceKm) || distanceKm < 0 {
		distanceKm = 0
	}

	speed := SpeedKmh(hour, weather)
	eta := distanceKm / speed * 60

	delay := models.OnTime
	if eta > DelayThresholdMinutes {
		delay = models.Delayed
	}

	return models.Estimate{
		EtaMinutes:  eta,
		CrowdLevel:  CrowdLevelAt(hour),
		DelayStatus: delay,
		SpeedKmh:    speed,
	}
}

func normalizeHour(hour int) int {
	hour %= 24
	if hour < 0 {
		hour += 24
	}
	return hour
}
