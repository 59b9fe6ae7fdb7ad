// Package context carries request-scoped values from the HTTP layer into
// use cases so their log lines can be joined with the access log.
package context

import (
	"context"

	"github.com/google/uuid"
	"github.com/yatralink/bustrack/internal/pkg/logger"
)

// ContextKey represents a key for context values
type ContextKey string

const (
	// RequestIDKey is the key for request ID in context
	RequestIDKey ContextKey = "request_id"
	// VehicleIDKey is the key for the authenticated vehicle in context
	VehicleIDKey ContextKey = "vehicle_id"
)

// WithRequestID adds a request ID to the context, generating one if empty
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		requestID = uuid.NewString()
	}
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID retrieves the request ID from context
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// WithVehicleID adds the caller's vehicle id to the context
func WithVehicleID(ctx context.Context, vehicleID string) context.Context {
	return context.WithValue(ctx, VehicleIDKey, vehicleID)
}

// GetVehicleID retrieves the vehicle id from context
func GetVehicleID(ctx context.Context) string {
	if vehicleID, ok := ctx.Value(VehicleIDKey).(string); ok {
		return vehicleID
	}
	return ""
}

// LogFields returns the request-scoped values present in ctx as log fields
func LogFields(ctx context.Context) []logger.Field {
	var fields []logger.Field
	if requestID := GetRequestID(ctx); requestID != "" {
		fields = append(fields, logger.String("request_id", requestID))
	}
	if vehicleID := GetVehicleID(ctx); vehicleID != "" {
		fields = append(fields, logger.String("vehicle_id", vehicleID))
	}
	return fields
}
