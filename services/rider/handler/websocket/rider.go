package websocket

import (
	"context"
	"encoding/json"

	"github.com/labstack/echo/v4"
	"github.com/yatralink/bustrack/internal/pkg/constants"
	"github.com/yatralink/bustrack/internal/pkg/logger"
	"github.com/yatralink/bustrack/internal/pkg/middleware"
	"github.com/yatralink/bustrack/internal/pkg/models"
	pkgws "github.com/yatralink/bustrack/internal/pkg/websocket"
	"github.com/yatralink/bustrack/internal/utils"
	"github.com/yatralink/bustrack/services/rider"
)

const maxMessageSize = 4096

// RiderHandler streams rendezvous updates to a waiting rider. The client
// sends rider_location events; the server answers with a rendezvous event
// after every rider update and every fleet change.
type RiderHandler struct {
	riderUC   rider.RiderUC
	manager   *pkgws.Manager
	validator *utils.RequestValidator
}

// NewRiderHandler creates a new rider WebSocket handler
func NewRiderHandler(riderUC rider.RiderUC, manager *pkgws.Manager) *RiderHandler {
	return &RiderHandler{
		riderUC:   riderUC,
		manager:   manager,
		validator: utils.NewRequestValidator(),
	}
}

// HandleWebSocket upgrades the request and serves the rider stream
func (h *RiderHandler) HandleWebSocket(c echo.Context) error {
	userID := ""
	if identity, ok := middleware.GetIdentity(c); ok {
		userID = identity.UserID
	}

	ctx := c.Request().Context()
	return h.manager.HandleConnection(c, userID, func(client *pkgws.Client) error {
		return h.serve(ctx, client)
	})
}

func (h *RiderHandler) serve(ctx context.Context, client *pkgws.Client) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	positions := make(chan models.RiderPosition, 1)
	go func() {
		defer cancel()
		h.readLoop(client, positions)
	}()

	var current *models.RiderPosition
	updated := h.riderUC.FleetUpdated()
	for {
		select {
		case <-ctx.Done():
			return nil
		case pos := <-positions:
			current = &pos
		case <-updated:
			updated = h.riderUC.FleetUpdated()
			if current == nil {
				continue
			}
		}

		if err := h.push(ctx, client, *current); err != nil {
			logger.Debug("Rider stream write failed",
				logger.String("client_id", client.ID),
				logger.Err(err))
			return nil
		}
	}
}

func (h *RiderHandler) push(ctx context.Context, client *pkgws.Client, position models.RiderPosition) error {
	result, err := h.riderUC.Rendezvous(ctx, position)
	if err != nil {
		return client.SendError(constants.ErrorValidationFailed, err.Error())
	}
	return client.Send(constants.EventRendezvous, result)
}

// readLoop decodes client events until the connection fails. Rider
// positions are handed over latest-wins.
func (h *RiderHandler) readLoop(client *pkgws.Client, positions chan models.RiderPosition) {
	conn := client.Conn()
	conn.SetReadLimit(maxMessageSize)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg models.WSMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			_ = client.SendError(constants.ErrorInvalidFormat, "invalid message format")
			continue
		}

		switch msg.Event {
		case constants.EventRiderLocation:
			var position models.RiderPosition
			if err := json.Unmarshal(msg.Data, &position); err != nil {
				_ = client.SendError(constants.ErrorInvalidFormat, "invalid rider location")
				continue
			}
			if err := h.validator.Validate(&position); err != nil {
				_ = client.SendError(constants.ErrorValidationFailed, err.Error())
				continue
			}
			if position.ObservedAt.IsZero() {
				position.ObservedAt = models.Now()
			}
			offerPosition(positions, position)
		case constants.EventPing:
			_ = client.Send(constants.EventPong, nil)
		default:
			_ = client.SendError(constants.ErrorInvalidFormat, "unknown event "+msg.Event)
		}
	}
}

func offerPosition(ch chan models.RiderPosition, position models.RiderPosition) {
	select {
	case <-ch:
	default:
	}
	ch <- position
}
