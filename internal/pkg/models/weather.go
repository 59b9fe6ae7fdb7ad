package models

// WeatherCondition is the coarse condition the estimator understands
type WeatherCondition string

const (
	WeatherClear       WeatherCondition = "Clear"
	WeatherRainy       WeatherCondition = "Rainy"
	WeatherSnow        WeatherCondition = "Snow"
	WeatherFog         WeatherCondition = "Fog"
	WeatherUnavailable WeatherCondition = "Unavailable"
)

// RoadCondition is the label shown next to the weather condition
type RoadCondition string

const (
	RoadNormal        RoadCondition = "Normal"
	RoadSlippery      RoadCondition = "Slippery"
	RoadVeryDangerous RoadCondition = "Very Dangerous"
	RoadLowVisibility RoadCondition = "Low Visibility"
	RoadUnknown       RoadCondition = "Unknown"
)

// Weather is the result of a weather lookup for a coordinate
type Weather struct {
	Condition WeatherCondition `json:"condition"`
	Road      RoadCondition    `json:"road"`
	Code      int              `json:"code,omitempty"`
}

// UnavailableWeather is returned whenever the weather provider cannot answer
var UnavailableWeather = Weather{Condition: WeatherUnavailable, Road: RoadUnknown}
