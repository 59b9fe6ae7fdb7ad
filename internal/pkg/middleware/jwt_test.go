package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	jwtpkg "github.com/yatralink/bustrack/internal/pkg/jwt"
	"github.com/yatralink/bustrack/internal/pkg/models"
)

var testJWTConfig = models.JWTConfig{Secret: "middleware-secret", Expiration: 60, Issuer: "bustrack-test"}

func tokenFor(t *testing.T, identity models.Identity) string {
	token, _, err := jwtpkg.GenerateToken(identity, testJWTConfig)
	require.NoError(t, err)
	return token
}

func TestJWTAuthMiddleware(t *testing.T) {
	driver := models.Identity{UserID: "bus-42", Email: "driver@example.com", Role: "driver"}

	tests := []struct {
		name         string
		header       string
		expectStatus int
	}{
		{name: "Valid token", header: "Bearer " + tokenFor(t, driver), expectStatus: http.StatusOK},
		{name: "Missing header", header: "", expectStatus: http.StatusUnauthorized},
		{name: "Wrong scheme", header: "Basic abc", expectStatus: http.StatusUnauthorized},
		{name: "Invalid token", header: "Bearer nope", expectStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			var seen models.Identity
			handler := JWTAuthMiddleware(testJWTConfig)(func(c echo.Context) error {
				seen, _ = GetIdentity(c)
				return c.NoContent(http.StatusOK)
			})

			require.NoError(t, handler(c))
			assert.Equal(t, tt.expectStatus, rec.Code)
			if tt.expectStatus == http.StatusOK {
				assert.Equal(t, driver, seen)
				assert.Equal(t, "bus-42", c.Get(ContextKeyUserID))
				assert.Equal(t, "driver", c.Get(ContextKeyUserRole))
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name         string
		identity     *models.Identity
		expectStatus int
	}{
		{name: "Driver allowed", identity: &models.Identity{UserID: "bus-1", Role: "driver"}, expectStatus: http.StatusOK},
		{name: "Rider forbidden", identity: &models.Identity{UserID: "rider-1", Role: "rider"}, expectStatus: http.StatusForbidden},
		{name: "No identity", identity: nil, expectStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
			if tt.identity != nil {
				c.Set(ContextKeyIdentity, *tt.identity)
			}

			handler := RequireRole("driver")(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})

			require.NoError(t, handler(c))
			assert.Equal(t, tt.expectStatus, rec.Code)
		})
	}
}

func TestBearerToken(t *testing.T) {
	token, ok := BearerToken("Bearer abc")
	assert.True(t, ok)
	assert.Equal(t, "abc", token)

	for _, header := range []string{"", "Bearer", "Bearer ", "bearer abc", "Bearer a b"} {
		_, ok := BearerToken(header)
		assert.False(t, ok, header)
	}
}
