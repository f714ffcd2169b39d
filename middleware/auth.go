package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/neonglow/neonglow-backend-go/utils"
)

// AdminAuthMiddleware verifies the bearer token and the admin claims on it.
// A missing or bad token is 401; a valid token without admin claims is 403.
func AdminAuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Missing authorization header"})
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid authorization header format"})
		}

		claims, err := utils.ValidateAdminJWT(tokenParts[1])
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
		}

		if !claims.IsAdminToken() {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "Admin access required"})
		}

		c.Set("admin", claims)
		return next(c)
	}
}
