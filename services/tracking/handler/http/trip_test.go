package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yatralink/bustrack/internal/pkg/middleware"
	"github.com/yatralink/bustrack/internal/pkg/models"
	"github.com/yatralink/bustrack/internal/utils"
	"github.com/yatralink/bustrack/services/tracking/mocks"
)

var driver = models.Identity{UserID: "bus-42", Email: "driver@example.com", Role: "driver"}

func newContext(method, body string, identity *models.Identity) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = utils.NewRequestValidator()

	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if identity != nil {
		c.Set(middleware.ContextKeyIdentity, *identity)
	}
	return c, rec
}

func decodeStatus(t *testing.T, rec *httptest.ResponseRecorder) models.TripStatus {
	t.Helper()
	var status models.TripStatus
	require.NoError(t, utils.ParseJSONResponse(rec.Body.Bytes(), &status))
	return status
}

func TestTripHandler_StartTrip(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "started", wantStatus: http.StatusOK},
		{name: "already tracking", err: models.ErrAlreadyTracking, wantStatus: http.StatusConflict},
		{name: "no location source", err: models.ErrNoLocationSource, wantStatus: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			uc := mocks.NewMockTrackingUC(ctrl)
			uc.EXPECT().StartTrip(gomock.Any(), driver).
				Return(models.TripStatus{VehicleID: "bus-42", State: models.SessionTracking, SessionID: "s-1"}, tt.err)

			c, rec := newContext(http.MethodPost, "", &driver)
			require.NoError(t, NewTripHandler(uc).StartTrip(c))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.err == nil {
				status := decodeStatus(t, rec)
				assert.Equal(t, models.SessionTracking, status.State)
				assert.Equal(t, "s-1", status.SessionID)
			}
		})
	}
}

func TestTripHandler_RequiresIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewTripHandler(mocks.NewMockTrackingUC(ctrl))
	for _, fn := range []echo.HandlerFunc{h.StartTrip, h.StopTrip, h.GetStatus, h.PushLocation, h.SetRider} {
		c, rec := newContext(http.MethodPost, "", nil)
		require.NoError(t, fn(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}
}

func TestTripHandler_StopTrip(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "stopped", wantStatus: http.StatusOK},
		{name: "not tracking", err: models.ErrSessionNotFound, wantStatus: http.StatusNotFound},
		{name: "delete failed", err: models.ErrStoreDelete, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			uc := mocks.NewMockTrackingUC(ctrl)
			uc.EXPECT().StopTrip(gomock.Any(), "bus-42").
				Return(models.TripStatus{VehicleID: "bus-42", State: models.SessionStopped}, tt.err)

			c, rec := newContext(http.MethodPost, "", &driver)
			require.NoError(t, NewTripHandler(uc).StopTrip(c))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestTripHandler_GetStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	km := 1.5
	uc := mocks.NewMockTrackingUC(ctrl)
	uc.EXPECT().Status("bus-42").Return(models.TripStatus{VehicleID: "bus-42", State: models.SessionTracking, DistanceKm: &km}, nil)

	c, rec := newContext(http.MethodGet, "", &driver)
	require.NoError(t, NewTripHandler(uc).GetStatus(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	status := decodeStatus(t, rec)
	require.NotNil(t, status.DistanceKm)
	assert.Equal(t, 1.5, *status.DistanceKm)
}

func TestTripHandler_PushLocation(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(uc *mocks.MockTrackingUC)
		wantStatus int
	}{
		{
			name: "accepted",
			body: `{"latitude": 12.97, "longitude": 77.59, "accuracy": 5}`,
			setup: func(uc *mocks.MockTrackingUC) {
				uc.EXPECT().PushSample(gomock.Any(), "bus-42", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, sample models.LocationSample) error {
						assert.Equal(t, 12.97, sample.Latitude)
						return nil
					})
			},
			wantStatus: http.StatusAccepted,
		},
		{
			name:       "out of range",
			body:       `{"latitude": 120, "longitude": 77.59}`,
			setup:      func(uc *mocks.MockTrackingUC) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "not tracking",
			body: `{"latitude": 1, "longitude": 1}`,
			setup: func(uc *mocks.MockTrackingUC) {
				uc.EXPECT().PushSample(gomock.Any(), "bus-42", gomock.Any()).Return(models.ErrSessionNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			uc := mocks.NewMockTrackingUC(ctrl)
			tt.setup(uc)

			c, rec := newContext(http.MethodPost, tt.body, &driver)
			require.NoError(t, NewTripHandler(uc).PushLocation(c))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestTripHandler_SetRider(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := mocks.NewMockTrackingUC(ctrl)
	uc.EXPECT().SetRider("bus-42", gomock.Any()).DoAndReturn(func(_ string, rider *models.RiderPosition) error {
		require.NotNil(t, rider)
		assert.Equal(t, 12.9, rider.Latitude)
		assert.False(t, rider.ObservedAt.IsZero())
		return nil
	})
	uc.EXPECT().Status("bus-42").Return(models.TripStatus{VehicleID: "bus-42"}, nil)

	c, rec := newContext(http.MethodPut, `{"rider": {"latitude": 12.9, "longitude": 77.6}}`, &driver)
	require.NoError(t, NewTripHandler(uc).SetRider(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTripHandler_ClearRider(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := mocks.NewMockTrackingUC(ctrl)
	uc.EXPECT().SetRider("bus-42", (*models.RiderPosition)(nil)).Return(nil)
	uc.EXPECT().Status("bus-42").Return(models.TripStatus{VehicleID: "bus-42"}, nil)

	c, rec := newContext(http.MethodPut, `{}`, &driver)
	require.NoError(t, NewTripHandler(uc).SetRider(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTripHandler_SetRiderInvalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c, rec := newContext(http.MethodPut, `{"rider": {"latitude": -100, "longitude": 0}}`, &driver)
	require.NoError(t, NewTripHandler(mocks.NewMockTrackingUC(ctrl)).SetRider(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
}
