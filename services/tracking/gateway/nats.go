package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/nats-io/nats.go"
	"github.com/yatralink/bustrack/internal/pkg/constants"
	"github.com/yatralink/bustrack/internal/pkg/logger"
	"github.com/yatralink/bustrack/internal/pkg/models"
	natspkg "github.com/yatralink/bustrack/internal/pkg/nats"
	"github.com/yatralink/bustrack/services/tracking"
)

// NATSSource reads device fixes published on vehicle.location.{vehicle_id}
type NATSSource struct {
	client *natspkg.Client
	buffer int
}

// NewNATSSource creates a NATS location source
func NewNATSSource(client *natspkg.Client, buffer int) *NATSSource {
	if buffer < 1 {
		buffer = 1
	}
	return &NATSSource{client: client, buffer: buffer}
}

// Watch subscribes to the vehicle's location subject
func (s *NATSSource) Watch(ctx context.Context, vehicleID string) (tracking.Feed, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.client == nil || !s.client.IsConnected() {
		return nil, fmt.Errorf("%w: nats is not connected", models.ErrNoLocationSource)
	}
	if vehicleID == "" || strings.ContainsAny(vehicleID, ".*> \t") {
		return nil, fmt.Errorf("%w: vehicle id %q is not a valid subject token", models.ErrNoLocationSource, vehicleID)
	}

	feed := &natsFeed{
		vehicleID: vehicleID,
		readings:  make(chan models.LocationReading, s.buffer),
	}

	subject := fmt.Sprintf(constants.SubjectVehicleLocation, vehicleID)
	sub, err := s.client.Subscribe(subject, feed.handle)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrNoLocationSource, err)
	}
	feed.sub = sub

	logger.Info("Watching vehicle location subject",
		logger.String("vehicle_id", vehicleID),
		logger.String("subject", subject))
	return feed, nil
}

type natsFeed struct {
	vehicleID string
	readings  chan models.LocationReading
	sub       *nats.Subscription

	mu     sync.Mutex
	closed bool
}

func (f *natsFeed) Readings() <-chan models.LocationReading {
	return f.readings
}

// handle decodes one fix. An undecodable payload becomes an error reading.
func (f *natsFeed) handle(msg *nats.Msg) {
	var sample models.LocationSample
	reading := models.LocationReading{Sample: &sample}
	if err := json.Unmarshal(msg.Data, &sample); err != nil {
		reading = models.LocationReading{Err: fmt.Errorf("invalid location payload on %s: %w", msg.Subject, err)}
	} else if sample.Timestamp.IsZero() {
		sample.Timestamp = models.Now()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	select {
	case f.readings <- reading:
	default:
		logger.Debug("Location feed full, dropping sample",
			logger.String("vehicle_id", f.vehicleID))
	}
}

func (f *natsFeed) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true
	close(f.readings)
	if err := f.sub.Unsubscribe(); err != nil {
		return fmt.Errorf("failed to unsubscribe from %s: %w", f.sub.Subject, err)
	}
	return nil
}

var _ tracking.LocationSource = (*NATSSource)(nil)
