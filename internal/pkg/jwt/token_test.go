package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yatralink/bustrack/internal/pkg/models"
)

func getTestConfig() models.JWTConfig {
	return models.JWTConfig{
		Secret:     "test-secret-key-for-jwt-signing",
		Expiration: 60,
		Issuer:     "bustrack-test",
	}
}

func TestGenerateToken(t *testing.T) {
	tests := []struct {
		name     string
		identity models.Identity
	}{
		{
			name:     "Driver token",
			identity: models.Identity{UserID: "bus-42", Email: "driver@example.com", Role: "driver"},
		},
		{
			name:     "Rider token",
			identity: models.Identity{UserID: "rider-7", Email: "rider@example.com", Role: "rider"},
		},
		{
			name:     "Empty email",
			identity: models.Identity{UserID: "bus-1", Role: "driver"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := getTestConfig()
			token, expiresAt, err := GenerateToken(tt.identity, cfg)

			require.NoError(t, err)
			assert.NotEmpty(t, token)
			assert.InDelta(t, time.Now().Add(time.Hour).Unix(), expiresAt, 5)

			claims, err := ValidateToken(token, cfg.Secret)
			require.NoError(t, err)
			assert.Equal(t, tt.identity.UserID, claims.UserID)
			assert.Equal(t, tt.identity.Email, claims.Email)
			assert.Equal(t, tt.identity.Role, claims.Role)
			assert.Equal(t, cfg.Issuer, claims.Issuer)
		})
	}
}

func TestValidateToken_Invalid(t *testing.T) {
	cfg := getTestConfig()
	valid, _, err := GenerateToken(models.Identity{UserID: "bus-1", Role: "driver"}, cfg)
	require.NoError(t, err)

	expiredCfg := cfg
	expiredCfg.Expiration = -1
	expired, _, err := GenerateToken(models.Identity{UserID: "bus-1", Role: "driver"}, expiredCfg)
	require.NoError(t, err)

	noRole, _, err := GenerateToken(models.Identity{UserID: "bus-1"}, cfg)
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, models.Claims{UserID: "bus-1", Role: "driver"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{name: "Wrong secret", token: valid, secret: "other-secret"},
		{name: "Expired", token: expired, secret: cfg.Secret},
		{name: "Missing role", token: noRole, secret: cfg.Secret},
		{name: "Unsigned", token: unsigned, secret: cfg.Secret},
		{name: "Garbage", token: "not.a.token", secret: cfg.Secret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := ValidateToken(tt.token, tt.secret)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestIdentityFromToken(t *testing.T) {
	cfg := getTestConfig()
	token, _, err := GenerateToken(models.Identity{UserID: "bus-42", Email: "driver@example.com", Role: "driver"}, cfg)
	require.NoError(t, err)

	identity, err := IdentityFromToken(token, cfg.Secret)
	require.NoError(t, err)
	assert.Equal(t, models.Identity{UserID: "bus-42", Email: "driver@example.com", Role: "driver"}, identity)

	_, err = IdentityFromToken(token, "wrong")
	assert.Error(t, err)
}
