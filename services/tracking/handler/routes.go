package handler

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/yatralink/bustrack/internal/pkg/constants"
	"github.com/yatralink/bustrack/internal/pkg/database"
	"github.com/yatralink/bustrack/internal/pkg/middleware"
	"github.com/yatralink/bustrack/internal/pkg/models"
	"github.com/yatralink/bustrack/services/tracking"
	httpHandler "github.com/yatralink/bustrack/services/tracking/handler/http"
)

// HTTPHandler combines all handlers for the tracking service
type HTTPHandler struct {
	tripHTTP    *httpHandler.TripHandler
	redisClient *database.RedisClient
	cfg         *models.Config
}

// NewHTTPHandler creates a new combined handler
func NewHTTPHandler(trackingUC tracking.TrackingUC, redisClient *database.RedisClient, cfg *models.Config) *HTTPHandler {
	return &HTTPHandler{
		tripHTTP:    httpHandler.NewTripHandler(trackingUC),
		redisClient: redisClient,
		cfg:         cfg,
	}
}

// RegisterRoutes registers all HTTP routes
func (h *HTTPHandler) RegisterRoutes(e *echo.Echo) {
	trips := e.Group("/v1/trips",
		middleware.JWTAuthMiddleware(h.cfg.JWT),
		middleware.RequireRole(constants.RoleDriver),
	)

	trips.POST("/start", h.tripHTTP.StartTrip)
	trips.POST("/stop", h.tripHTTP.StopTrip)
	trips.GET("/status", h.tripHTTP.GetStatus)
	trips.PUT("/rider", h.tripHTTP.SetRider)

	push := []echo.MiddlewareFunc{}
	if h.redisClient != nil && h.cfg.Tracking.PushRateLimit > 0 {
		push = append(push, middleware.VehicleRateLimiter(h.cfg.Tracking.PushRateLimit, time.Minute, h.redisClient))
	}
	trips.POST("/location", h.tripHTTP.PushLocation, push...)
}
