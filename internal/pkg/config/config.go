package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/yatralink/bustrack/internal/pkg/models"
)

// InitConfig loads configuration from the environment. When APP_ENV is
// "local" the file at configPath is loaded into the environment first.
func InitConfig(configPath string) (*models.Config, error) {
	if GetEnv("APP_ENV", "local") == "local" && configPath != "" {
		if err := godotenv.Load(configPath); err != nil {
			log.Println("error loading config from file", err)
		}
	}

	configs := loadConfig(newViper())
	if err := Validate(configs); err != nil {
		return nil, err
	}
	return configs, nil
}

// MustInitConfig is InitConfig for main packages
func MustInitConfig(configPath string) *models.Config {
	configs, err := InitConfig(configPath)
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	return configs
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("APP_NAME", "bustrack")
	v.SetDefault("APP_ENV", "local")
	v.SetDefault("APP_DEBUG", true)
	v.SetDefault("APP_VERSION", "development")
	v.SetDefault("APP_TIMEZONE", "Local")

	v.SetDefault("SERVER_HOST", "")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_READ_TIMEOUT", 15)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 15)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 30)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_POOL_SIZE", 10)

	v.SetDefault("NATS_URL", "nats://localhost:4222")

	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRATION", 60)
	v.SetDefault("JWT_ISSUER", "bustrack")

	v.SetDefault("STORE_DRIVER", "redis")
	v.SetDefault("STORE_POSITION_TTL", "10m")

	v.SetDefault("TRACKING_LOCATION_SOURCE", "http")
	v.SetDefault("TRACKING_SAMPLE_BUFFER", 16)
	v.SetDefault("TRACKING_WRITE_TIMEOUT", "5s")
	v.SetDefault("TRACKING_PUSH_RATE_LIMIT", 120)

	v.SetDefault("FLEET_STALE_AFTER", "2m")
	v.SetDefault("FLEET_RESYNC_INTERVAL", "30s")

	v.SetDefault("WEATHER_BASE_URL", "https://api.open-meteo.com")
	v.SetDefault("WEATHER_TIMEOUT", "5s")
	v.SetDefault("WEATHER_CACHE_TTL", "10m")
	v.SetDefault("WEATHER_BREAKER_TIMEOUT", "30s")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE_PATH", "")

	return v
}

func loadConfig(v *viper.Viper) *models.Config {
	configs := &models.Config{}

	configs.App.Name = v.GetString("APP_NAME")
	configs.App.Environment = v.GetString("APP_ENV")
	configs.App.Debug = v.GetBool("APP_DEBUG")
	configs.App.Version = v.GetString("APP_VERSION")
	configs.App.Timezone = v.GetString("APP_TIMEZONE")

	configs.Server.Host = v.GetString("SERVER_HOST")
	configs.Server.Port = v.GetInt("SERVER_PORT")
	configs.Server.ReadTimeout = v.GetInt("SERVER_READ_TIMEOUT")
	configs.Server.WriteTimeout = v.GetInt("SERVER_WRITE_TIMEOUT")
	configs.Server.ShutdownTimeout = v.GetInt("SERVER_SHUTDOWN_TIMEOUT")

	configs.Redis.Host = v.GetString("REDIS_HOST")
	configs.Redis.Port = v.GetInt("REDIS_PORT")
	configs.Redis.Password = v.GetString("REDIS_PASSWORD")
	configs.Redis.DB = v.GetInt("REDIS_DB")
	configs.Redis.PoolSize = v.GetInt("REDIS_POOL_SIZE")

	configs.NATS.URL = v.GetString("NATS_URL")

	configs.JWT.Secret = v.GetString("JWT_SECRET")
	configs.JWT.Expiration = v.GetInt("JWT_EXPIRATION")
	configs.JWT.Issuer = v.GetString("JWT_ISSUER")

	configs.Store.Driver = v.GetString("STORE_DRIVER")
	configs.Store.PositionTTL = v.GetDuration("STORE_POSITION_TTL")

	configs.Tracking.LocationSource = v.GetString("TRACKING_LOCATION_SOURCE")
	configs.Tracking.SampleBuffer = v.GetInt("TRACKING_SAMPLE_BUFFER")
	configs.Tracking.WriteTimeout = v.GetDuration("TRACKING_WRITE_TIMEOUT")
	configs.Tracking.PushRateLimit = v.GetInt("TRACKING_PUSH_RATE_LIMIT")

	configs.Fleet.StaleAfter = v.GetDuration("FLEET_STALE_AFTER")
	configs.Fleet.ResyncInterval = v.GetDuration("FLEET_RESYNC_INTERVAL")

	configs.Weather.BaseURL = v.GetString("WEATHER_BASE_URL")
	configs.Weather.Timeout = v.GetDuration("WEATHER_TIMEOUT")
	configs.Weather.CacheTTL = v.GetDuration("WEATHER_CACHE_TTL")
	configs.Weather.BreakerTimeout = v.GetDuration("WEATHER_BREAKER_TIMEOUT")

	configs.Logger.Level = v.GetString("LOG_LEVEL")
	configs.Logger.FilePath = v.GetString("LOG_FILE_PATH")

	return configs
}

// Validate checks the loaded configuration against its struct tags
func Validate(configs *models.Config) error {
	if err := validator.New().Struct(configs); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// Location resolves the configured timezone used for hour-of-day lookups
func Location(configs *models.Config) *time.Location {
	switch configs.App.Timezone {
	case "", "Local":
		return time.Local
	}
	loc, err := time.LoadLocation(configs.App.Timezone)
	if err != nil {
		log.Printf("Warning: unknown timezone %q, using local time", configs.App.Timezone)
		return time.Local
	}
	return loc
}

// GetEnv returns the environment value for key or defaultValue when unset
func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
