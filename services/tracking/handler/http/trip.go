package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	reqctx "github.com/yatralink/bustrack/internal/pkg/context"
	"github.com/yatralink/bustrack/internal/pkg/logger"
	"github.com/yatralink/bustrack/internal/pkg/middleware"
	"github.com/yatralink/bustrack/internal/pkg/models"
	"github.com/yatralink/bustrack/internal/utils"
	"github.com/yatralink/bustrack/services/tracking"
)

// TripHandler handles HTTP requests for a driver's tracking session
type TripHandler struct {
	trackingUC tracking.TrackingUC
}

// NewTripHandler creates a new trip HTTP handler
func NewTripHandler(trackingUC tracking.TrackingUC) *TripHandler {
	return &TripHandler{
		trackingUC: trackingUC,
	}
}

// StartTrip starts publishing the caller's vehicle position
func (h *TripHandler) StartTrip(c echo.Context) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	status, err := h.trackingUC.StartTrip(c.Request().Context(), identity)
	if err != nil {
		logger.Warn("Failed to start trip",
			append(reqctx.LogFields(c.Request().Context()), logger.Err(err))...)
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Tracking started", status)
}

// StopTrip stops the caller's session and removes the vehicle from the fleet
func (h *TripHandler) StopTrip(c echo.Context) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	status, err := h.trackingUC.StopTrip(c.Request().Context(), identity.UserID)
	if err != nil {
		logger.Warn("Failed to stop trip",
			append(reqctx.LogFields(c.Request().Context()), logger.Err(err))...)
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Tracking stopped", status)
}

// GetStatus returns the caller's session status
func (h *TripHandler) GetStatus(c echo.Context) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	status, err := h.trackingUC.Status(identity.UserID)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Trip status", status)
}

// PushLocation accepts one location fix from the driver's device
func (h *TripHandler) PushLocation(c echo.Context) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var sample models.LocationSample
	if err := utils.BindAndValidate(c, &sample); err != nil {
		return utils.BadRequestResponse(c, "invalid location sample")
	}

	if err := h.trackingUC.PushSample(c.Request().Context(), identity.UserID, sample); err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusAccepted, "Location accepted", nil)
}

// SetRider sets the rider whose distance is shown to the driver. An empty
// body clears it.
func (h *TripHandler) SetRider(c echo.Context) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req struct {
		Rider *models.RiderPosition `json:"rider"`
	}
	if err := utils.BindAndValidate(c, &req); err != nil {
		return utils.BadRequestResponse(c, "invalid rider position")
	}
	if req.Rider != nil && req.Rider.ObservedAt.IsZero() {
		req.Rider.ObservedAt = models.Now()
	}

	if err := h.trackingUC.SetRider(identity.UserID, req.Rider); err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	status, err := h.trackingUC.Status(identity.UserID)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Rider updated", status)
}
