package middleware

import (
	"net/http"
	"strings"

	"github.com/NehaKoffeeKodes/fintech-core-backend-sub001/pkg/jwtutil"
	"github.com/NehaKoffeeKodes/fintech-core-backend-sub001/pkg/logger"
	"github.com/NehaKoffeeKodes/fintech-core-backend-sub001/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthMiddleware validates the JWT token from the Authorization header
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		// Get the Authorization header
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Error("Missing Authorization header")
			prometheus.RecordAdminError("missing_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "missing authorization token"})
		}

		// Check if it's a Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Error("Invalid Authorization header format")
			prometheus.RecordAdminError("invalid_auth_format")
			return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "invalid authorization format, expected Bearer token"})
		}

		// Extract the token
		tokenString := parts[1]

		// Validate the token
		claims, err := jwtutil.ValidateToken(tokenString)
		if err != nil {
			log.Error("Invalid JWT token", zap.Error(err))
			prometheus.RecordAdminError("invalid_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "invalid or expired token"})
		}

		// Store user info in context for later use
		c.Set("user", claims)
		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("superadmin", claims.Superadmin)

		// Store tenant information if available
		if claims.TenantID != nil {
			c.Set("tenant_id", *claims.TenantID)
			c.Set("tenant_name", claims.TenantName)
			c.Set("user_role", claims.Role)

			log.Debug("Request authenticated with tenant context",
				zap.String("tenant_id", *claims.TenantID),
				zap.String("tenant_name", claims.TenantName),
				zap.String("role", claims.Role))
		}

		// Token is valid, proceed with the request
		return next(c)
	}
}

// RequireSuperadmin rejects requests whose token does not carry the
// platform superadmin claim.
func RequireSuperadmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		superadmin, ok := c.Get("superadmin").(bool)
		if !ok || !superadmin {
			log.Warn("Non-superadmin attempted a platform operation",
				zap.String("path", c.Request().URL.Path))
			prometheus.RecordAdminError("superadmin_required")
			return c.JSON(http.StatusForbidden, echo.Map{"success": false, "message": "superadmin permission required"})
		}

		return next(c)
	}
}

// RequireTenantContext rejects requests whose token has no tenant scope
func RequireTenantContext(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		tenantID, ok := c.Get("tenant_id").(string)
		if !ok || tenantID == "" {
			log.Warn("Request without tenant context")
			prometheus.RecordAdminError("tenant_context_required")
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "tenant context required"})
		}

		return next(c)
	}
}
