package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	reqctx "github.com/yatralink/bustrack/internal/pkg/context"
	jwtpkg "github.com/yatralink/bustrack/internal/pkg/jwt"
	"github.com/yatralink/bustrack/internal/pkg/models"
	"github.com/yatralink/bustrack/internal/utils"
)

// Context keys set by JWTAuthMiddleware
const (
	ContextKeyIdentity = "identity"
	ContextKeyUserID   = "user_id"
	ContextKeyUserRole = "user_role"
)

// JWTAuthMiddleware creates a middleware for JWT authentication
func JWTAuthMiddleware(config models.JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, ok := BearerToken(c.Request().Header.Get("Authorization"))
			if !ok {
				return utils.UnauthorizedResponse(c, "Authorization header is required")
			}

			identity, err := jwtpkg.IdentityFromToken(tokenString, config.Secret)
			if err != nil {
				return utils.UnauthorizedResponse(c, "Invalid token")
			}

			c.Set(ContextKeyIdentity, identity)
			c.Set(ContextKeyUserID, identity.UserID)
			c.Set(ContextKeyUserRole, identity.Role)
			c.SetRequest(c.Request().WithContext(reqctx.WithVehicleID(c.Request().Context(), identity.UserID)))

			return next(c)
		}
	}
}

// RequireRole rejects callers whose token role is not one of roles
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := GetIdentity(c)
			if !ok {
				return utils.UnauthorizedResponse(c, "")
			}
			for _, role := range roles {
				if identity.Role == role {
					return next(c)
				}
			}
			return utils.ForbiddenResponse(c, "Role "+identity.Role+" is not allowed")
		}
	}
}

// GetIdentity returns the identity stored by JWTAuthMiddleware
func GetIdentity(c echo.Context) (models.Identity, bool) {
	identity, ok := c.Get(ContextKeyIdentity).(models.Identity)
	return identity, ok
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" value
func BearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
