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
	"github.com/yatralink/bustrack/internal/pkg/positionstore"
	"github.com/yatralink/bustrack/internal/pkg/server"
	wspkg "github.com/yatralink/bustrack/internal/pkg/websocket"
	"github.com/yatralink/bustrack/internal/utils"
	"github.com/yatralink/bustrack/services/rider/gateway"
	"github.com/yatralink/bustrack/services/rider/handler"
	"github.com/yatralink/bustrack/services/rider/usecase"
)

func main() {
	appName := "rider-service"
	configs := config.MustInitConfig(config.GetEnv("CONFIG_PATH", "config/rider.env"))

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
	)

	healthService := health.NewService()

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

	// Fleet view follows the store for the lifetime of the process
	fleetView := usecase.NewFleetView(store, configs.Fleet)
	fleetView.Start(context.Background())

	weatherGW := gateway.NewWeatherGW(configs.Weather, zapLogger)
	healthService.AddOptionalChecker("weather", weatherGW.Breaker())

	riderUC := usecase.NewRiderUC(fleetView, weatherGW, config.Location(configs))
	wsManager := wspkg.NewManager()

	e := echo.New()
	e.HideBanner = true
	e.Validator = utils.NewRequestValidator()

	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.ZapEchoMiddleware(zapLogger))
	e.Use(middleware.PanicRecoveryWithZapMiddleware(zapLogger))

	health.RegisterHealthEndpoints(e, appName, healthService)
	handler.NewHTTPHandler(riderUC, wsManager).RegisterRoutes(e)

	srv := server.NewGracefulServer(e, zapLogger, configs.Server)

	srv.Components().Register("websocket clients", func(ctx context.Context) error {
		wsManager.CloseAll()
		return nil
	})
	srv.Components().Register("fleet view", func(ctx context.Context) error {
		fleetView.Close()
		return nil
	})
	srv.Components().Register("weather cache", func(ctx context.Context) error {
		weatherGW.Close()
		return nil
	})
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
