package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/yatralink/bustrack/internal/pkg/config"
	"github.com/yatralink/bustrack/internal/pkg/database"
	"github.com/yatralink/bustrack/internal/pkg/health"
	"github.com/yatralink/bustrack/internal/pkg/logger"
	"github.com/yatralink/bustrack/internal/pkg/middleware"
	natspkg "github.com/yatralink/bustrack/internal/pkg/nats"
	"github.com/yatralink/bustrack/internal/pkg/positionstore"
	"github.com/yatralink/bustrack/internal/pkg/server"
	"github.com/yatralink/bustrack/internal/utils"
	"github.com/yatralink/bustrack/services/tracking"
	"github.com/yatralink/bustrack/services/tracking/gateway"
	"github.com/yatralink/bustrack/services/tracking/handler"
	"github.com/yatralink/bustrack/services/tracking/usecase"
)

func main() {
	appName := "tracking-service"
	configs := config.MustInitConfig(config.GetEnv("CONFIG_PATH", "config/tracking.env"))

	zapLogger, err := logger.InitZapLoggerFromConfig(configs)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	zapLogger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
		logger.String("store", configs.Store.Driver),
		logger.String("location_source", configs.Tracking.LocationSource),
	)

	healthService := health.NewService()

	// Redis backs the position store and the push rate limiter
	var redisClient *database.RedisClient
	if configs.Store.Driver == "redis" {
		redisClient, err = database.NewRedisClient(configs.Redis)
		if err != nil {
			zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
		}
		healthService.AddChecker("redis", health.NewRedisChecker(redisClient))
	}

	store, err := positionstore.New(configs.Store, redisClient, configs.Fleet.ResyncInterval)
	if err != nil {
		zapLogger.Fatal("Failed to create position store", logger.Err(err))
	}

	// Location source
	var (
		source     tracking.LocationSource
		natsClient *natspkg.Client
	)
	switch configs.Tracking.LocationSource {
	case "nats":
		natsClient, err = natspkg.NewClient(configs.NATS.URL, appName)
		if err != nil {
			zapLogger.Fatal("Failed to connect to NATS", logger.Err(err))
		}
		healthService.AddChecker("nats", health.NewNATSChecker(natsClient))
		source = gateway.NewNATSSource(natsClient, configs.Tracking.SampleBuffer)
	default:
		source = gateway.NewPushSource(configs.Tracking.SampleBuffer)
	}

	trackingUC := usecase.NewTrackingUC(store, source, configs.Tracking)

	e := echo.New()
	e.HideBanner = true
	e.Validator = utils.NewRequestValidator()

	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.ZapEchoMiddleware(zapLogger))
	e.Use(middleware.PanicRecoveryWithZapMiddleware(zapLogger))

	health.RegisterHealthEndpoints(e, appName, healthService)
	handler.NewHTTPHandler(trackingUC, redisClient, configs).RegisterRoutes(e)

	srv := server.NewGracefulServer(e, zapLogger, configs.Server)

	// Sessions are stopped before the connections they write through
	srv.Components().Register("tracking sessions", trackingUC.StopAll)
	if natsClient != nil {
		srv.Components().Register("nats", func(ctx context.Context) error {
			natsClient.Close()
			return nil
		})
	}
	if redisClient != nil {
		srv.Components().Register("redis", func(ctx context.Context) error {
			return redisClient.Close()
		})
	}

	if err := srv.Start(); err != nil {
		zapLogger.Fatal("Failed to start server",
			logger.String("app", appName),
			logger.Err(err),
		)
	}
}
