package handler

import (
	"github.com/labstack/echo/v4"
	pkgws "github.com/yatralink/bustrack/internal/pkg/websocket"
	"github.com/yatralink/bustrack/services/rider"
	httpHandler "github.com/yatralink/bustrack/services/rider/handler/http"
	wsHandler "github.com/yatralink/bustrack/services/rider/handler/websocket"
)

// HTTPHandler combines all handlers for the rider service
type HTTPHandler struct {
	fleetHTTP *httpHandler.FleetHandler
	riderWS   *wsHandler.RiderHandler
}

// NewHTTPHandler creates a new combined handler
func NewHTTPHandler(riderUC rider.RiderUC, wsManager *pkgws.Manager) *HTTPHandler {
	return &HTTPHandler{
		fleetHTTP: httpHandler.NewFleetHandler(riderUC),
		riderWS:   wsHandler.NewRiderHandler(riderUC, wsManager),
	}
}

// RegisterRoutes registers all HTTP and WebSocket routes. Fleet data is
// public; no token is needed to read it.
func (h *HTTPHandler) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/v1")
	v1.GET("/fleet", h.fleetHTTP.GetFleet)
	v1.GET("/fleet/gtfs-rt", h.fleetHTTP.GetVehicleFeed)
	v1.GET("/rendezvous", h.fleetHTTP.GetRendezvous)

	e.GET("/ws/rider", h.riderWS.HandleWebSocket)
}
