package models

import "time"

// Config represents application configuration
type Config struct {
	App      AppConfig      `validate:"required"`
	Server   ServerConfig   `validate:"required"`
	Redis    RedisConfig    `validate:"required"`
	NATS     NATSConfig
	JWT      JWTConfig
	Store    StoreConfig    `validate:"required"`
	Tracking TrackingConfig `validate:"required"`
	Fleet    FleetConfig
	Weather  WeatherConfig  `validate:"required"`
	Logger   LoggerConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string `validate:"required"`
	Debug       bool
	Version     string
	Timezone    string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int `validate:"gt=0,lte=65535"`
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string `validate:"required"`
	Port     int    `validate:"gt=0"`
	Password string
	DB       int `validate:"gte=0"`
	PoolSize int `validate:"gte=0"`
}

// NATSConfig contains NATS connection configuration
type NATSConfig struct {
	URL string
}

// JWTConfig contains JWT authentication configuration
type JWTConfig struct {
	Secret     string
	Expiration int // in minutes
	Issuer     string
}

// StoreConfig selects and tunes the position store backend
type StoreConfig struct {
	Driver      string        `validate:"oneof=redis memory"`
	PositionTTL time.Duration `validate:"gte=0"`
}

// TrackingConfig contains tracking service specific configuration
type TrackingConfig struct {
	LocationSource string `validate:"oneof=nats http"`
	// SampleBuffer is the channel depth between a location source and its session.
	SampleBuffer int           `validate:"gte=1"`
	WriteTimeout time.Duration `validate:"gt=0"`
	// PushRateLimit caps pushed samples per vehicle per minute. Zero disables it.
	PushRateLimit int `validate:"gte=0"`
}

// FleetConfig contains rider service fleet view configuration
type FleetConfig struct {
	StaleAfter     time.Duration
	ResyncInterval time.Duration
}

// WeatherConfig contains the weather adapter configuration
type WeatherConfig struct {
	BaseURL  string        `validate:"required,url"`
	Timeout  time.Duration `validate:"gt=0"`
	CacheTTL time.Duration `validate:"gte=0"`
	// BreakerTimeout is how long the breaker stays open before probing again
	BreakerTimeout time.Duration `validate:"gte=0"`
}

// LoggerConfig contains logger configuration
type LoggerConfig struct {
	Level    string
	FilePath string
}
