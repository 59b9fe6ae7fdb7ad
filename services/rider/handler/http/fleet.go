package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/yatralink/bustrack/internal/pkg/logger"
	"github.com/yatralink/bustrack/internal/pkg/models"
	"github.com/yatralink/bustrack/internal/utils"
	"github.com/yatralink/bustrack/services/rider"
	"github.com/yatralink/bustrack/services/rider/usecase"
	"google.golang.org/protobuf/proto"
)

// MIMEApplicationProtobuf is the content type of the GTFS-Realtime export
const MIMEApplicationProtobuf = "application/x-protobuf"

// FleetHandler handles HTTP requests for fleet and rendezvous queries
type FleetHandler struct {
	riderUC rider.RiderUC
}

// NewFleetHandler creates a new fleet HTTP handler
func NewFleetHandler(riderUC rider.RiderUC) *FleetHandler {
	return &FleetHandler{
		riderUC: riderUC,
	}
}

// GetFleet returns the current fleet snapshot
func (h *FleetHandler) GetFleet(c echo.Context) error {
	return utils.SuccessResponse(c, http.StatusOK, "Fleet snapshot", h.riderUC.Fleet())
}

// GetRendezvous returns the nearest vehicle to the rider at lat/lng with
// its arrival estimate and the local weather
func (h *FleetHandler) GetRendezvous(c echo.Context) error {
	position, err := riderFromQuery(c)
	if err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	result, err := h.riderUC.Rendezvous(c.Request().Context(), position)
	if err != nil {
		logger.Warn("Failed to compute rendezvous",
			logger.Float64("latitude", position.Latitude),
			logger.Float64("longitude", position.Longitude),
			logger.Err(err))
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Rendezvous", result)
}

// GetVehicleFeed exports the fleet as a GTFS-Realtime VehiclePositions feed
func (h *FleetHandler) GetVehicleFeed(c echo.Context) error {
	raw, err := proto.Marshal(usecase.VehicleFeed(h.riderUC.Fleet()))
	if err != nil {
		logger.Error("Failed to encode GTFS-Realtime feed", logger.Err(err))
		return utils.InternalServerErrorResponse(c, "failed to encode feed")
	}
	return c.Blob(http.StatusOK, MIMEApplicationProtobuf, raw)
}

func riderFromQuery(c echo.Context) (models.RiderPosition, error) {
	lat, err := parseQueryFloat(c, "lat")
	if err != nil {
		return models.RiderPosition{}, err
	}
	lng, err := parseQueryFloat(c, "lng")
	if err != nil {
		return models.RiderPosition{}, err
	}

	position := models.RiderPosition{Latitude: lat, Longitude: lng, ObservedAt: models.Now()}
	if c.Echo().Validator != nil {
		if err := c.Validate(&position); err != nil {
			return models.RiderPosition{}, fmt.Errorf("lat/lng out of range")
		}
	}
	return position, nil
}

func parseQueryFloat(c echo.Context, name string) (float64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return v, nil
}
