package positionstore

import (
	"fmt"
	"strconv"

	"github.com/yatralink/bustrack/internal/pkg/constants"
	"github.com/yatralink/bustrack/internal/pkg/models"
	"github.com/yatralink/bustrack/internal/utils"
)

// EncodeFields turns a position into the partial field set written on each
// sample. Empty owner, session and geohash values are left out so that an
// upsert never clears what an earlier one wrote.
func EncodeFields(pos models.VehiclePosition) map[string]string {
	fields := map[string]string{
		constants.FieldLatitude:  strconv.FormatFloat(pos.Latitude, 'f', -1, 64),
		constants.FieldLongitude: strconv.FormatFloat(pos.Longitude, 'f', -1, 64),
		constants.FieldStatus:    string(pos.Status),
		constants.FieldTimestamp: strconv.FormatInt(pos.UpdatedAt.UnixMilli(), 10),
	}
	if pos.Status == "" {
		fields[constants.FieldStatus] = string(models.VehicleOnTrip)
	}
	if pos.Owner != "" {
		fields[constants.FieldOwner] = pos.Owner
	}
	if pos.SessionID != "" {
		fields[constants.FieldSession] = pos.SessionID
	}
	if pos.Geohash != "" {
		fields[constants.FieldGeohash] = pos.Geohash
	}
	return fields
}

// DecodeDocument parses a stored document. Documents without finite
// latitude and longitude return ErrMalformedEntry. A missing timestamp
// decodes to the zero time.
func DecodeDocument(doc Document) (models.VehiclePosition, error) {
	lat, err := parseCoordinate(doc.Fields, constants.FieldLatitude)
	if err != nil {
		return models.VehiclePosition{}, fmt.Errorf("%w: vehicle %s: %v", models.ErrMalformedEntry, doc.Key, err)
	}
	lng, err := parseCoordinate(doc.Fields, constants.FieldLongitude)
	if err != nil {
		return models.VehiclePosition{}, fmt.Errorf("%w: vehicle %s: %v", models.ErrMalformedEntry, doc.Key, err)
	}

	pos := models.VehiclePosition{
		VehicleID: doc.Key,
		Latitude:  lat,
		Longitude: lng,
		Status:    models.VehicleStatus(doc.Fields[constants.FieldStatus]),
		Owner:     doc.Fields[constants.FieldOwner],
		SessionID: doc.Fields[constants.FieldSession],
		Geohash:   doc.Fields[constants.FieldGeohash],
	}
	if pos.Status == "" {
		pos.Status = models.VehicleIdle
	}
	if raw, ok := doc.Fields[constants.FieldTimestamp]; ok {
		if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
			pos.UpdatedAt = models.FromUnixMilli(ms)
		}
	}
	return pos, nil
}

// DecodeDocuments decodes docs in order, dropping malformed entries
func DecodeDocuments(docs []Document) (positions []models.VehiclePosition, dropped int) {
	positions = make([]models.VehiclePosition, 0, len(docs))
	for _, doc := range docs {
		pos, err := DecodeDocument(doc)
		if err != nil {
			dropped++
			continue
		}
		positions = append(positions, pos)
	}
	return positions, dropped
}

func parseCoordinate(fields map[string]string, name string) (float64, error) {
	raw, ok := fields[name]
	if !ok || raw == "" {
		return 0, fmt.Errorf("missing %s", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	if !utils.IsFiniteCoordinate(v, 0) {
		return 0, fmt.Errorf("non-finite %s", name)
	}
	return v, nil
}

func timestampOf(fields map[string]string) (int64, bool) {
	raw, ok := fields[constants.FieldTimestamp]
	if !ok {
		return 0, false
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return ms, true
}
