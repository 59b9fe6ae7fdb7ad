package gateway

import (
	"context"
	"sync"

	"github.com/yatralink/bustrack/internal/pkg/logger"
	"github.com/yatralink/bustrack/internal/pkg/models"
	"github.com/yatralink/bustrack/services/tracking"
)

// PushSource is a location source fed by samples the device posts to the
// tracking service. Each watched vehicle gets a buffered feed; when the
// buffer is full the oldest sample is dropped.
type PushSource struct {
	buffer int

	mu    sync.Mutex
	feeds map[string]*pushFeed
}

// NewPushSource creates a push source with the given per-vehicle buffer
func NewPushSource(buffer int) *PushSource {
	if buffer < 1 {
		buffer = 1
	}
	return &PushSource{
		buffer: buffer,
		feeds:  make(map[string]*pushFeed),
	}
}

// Watch registers a feed for vehicleID, replacing any previous one
func (p *PushSource) Watch(ctx context.Context, vehicleID string) (tracking.Feed, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	feed := &pushFeed{
		source:    p,
		vehicleID: vehicleID,
		readings:  make(chan models.LocationReading, p.buffer),
	}

	p.mu.Lock()
	previous := p.feeds[vehicleID]
	p.feeds[vehicleID] = feed
	p.mu.Unlock()

	if previous != nil {
		previous.Close()
	}
	return feed, nil
}

// Push delivers sample to the vehicle's feed. It returns
// ErrSessionNotFound when the vehicle is not being watched.
func (p *PushSource) Push(ctx context.Context, vehicleID string, sample models.LocationSample) error {
	p.mu.Lock()
	feed, ok := p.feeds[vehicleID]
	p.mu.Unlock()
	if !ok {
		return models.ErrSessionNotFound
	}

	if sample.Timestamp.IsZero() {
		sample.Timestamp = models.Now()
	}
	if !feed.deliver(models.LocationReading{Sample: &sample}) {
		return models.ErrSessionNotFound
	}
	return nil
}

// Watching reports whether vehicleID has an open feed
func (p *PushSource) Watching(vehicleID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.feeds[vehicleID]
	return ok
}

func (p *PushSource) release(feed *pushFeed) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.feeds[feed.vehicleID] == feed {
		delete(p.feeds, feed.vehicleID)
	}
}

type pushFeed struct {
	source    *PushSource
	vehicleID string
	readings  chan models.LocationReading

	mu     sync.Mutex
	closed bool
}

func (f *pushFeed) Readings() <-chan models.LocationReading {
	return f.readings
}

// deliver enqueues reading, dropping the oldest one when full
func (f *pushFeed) deliver(reading models.LocationReading) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return false
	}

	for {
		select {
		case f.readings <- reading:
			return true
		default:
		}
		select {
		case <-f.readings:
			logger.Debug("Push feed full, dropping oldest sample",
				logger.String("vehicle_id", f.vehicleID))
		default:
		}
	}
}

func (f *pushFeed) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	close(f.readings)
	f.mu.Unlock()

	f.source.release(f)
	return nil
}

var (
	_ tracking.LocationSource = (*PushSource)(nil)
	_ tracking.SamplePusher   = (*PushSource)(nil)
)
