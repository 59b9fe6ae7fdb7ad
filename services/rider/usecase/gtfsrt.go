package usecase

import (
	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/yatralink/bustrack/internal/pkg/models"
	"google.golang.org/protobuf/proto"
)

const gtfsRealtimeVersion = "2.0"

// VehicleFeed renders a snapshot as a full-dataset GTFS-Realtime feed with
// one VehiclePosition entity per vehicle
func VehicleFeed(snapshot *models.FleetSnapshot) *gtfs.FeedMessage {
	feed := &gtfs.FeedMessage{
		Header: &gtfs.FeedHeader{
			GtfsRealtimeVersion: proto.String(gtfsRealtimeVersion),
			Incrementality:      gtfs.FeedHeader_FULL_DATASET.Enum(),
		},
		Entity: make([]*gtfs.FeedEntity, 0, snapshot.Len()),
	}
	if snapshot == nil {
		return feed
	}
	if !snapshot.TakenAt.IsZero() {
		feed.Header.Timestamp = proto.Uint64(uint64(snapshot.TakenAt.Unix()))
	}

	for _, v := range snapshot.Vehicles {
		vehicle := &gtfs.VehiclePosition{
			Vehicle: &gtfs.VehicleDescriptor{
				Id: proto.String(v.VehicleID),
			},
			Position: &gtfs.Position{
				Latitude:  proto.Float32(float32(v.Latitude)),
				Longitude: proto.Float32(float32(v.Longitude)),
			},
			CurrentStatus: currentStatus(v.Status),
		}
		if !v.UpdatedAt.IsZero() {
			vehicle.Timestamp = proto.Uint64(uint64(v.UpdatedAt.Unix()))
		}

		feed.Entity = append(feed.Entity, &gtfs.FeedEntity{
			Id:      proto.String(v.VehicleID),
			Vehicle: vehicle,
		})
	}
	return feed
}

func currentStatus(status models.VehicleStatus) *gtfs.VehiclePosition_VehicleStopStatus {
	if status == models.VehicleOnTrip {
		return gtfs.VehiclePosition_IN_TRANSIT_TO.Enum()
	}
	return gtfs.VehiclePosition_STOPPED_AT.Enum()
}
