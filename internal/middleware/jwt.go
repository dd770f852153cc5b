// Package middleware provides reusable HTTP middleware: access token
// verification, role gating and distributed rate limiting.
package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/authgate/authgate/internal/utils"
)

// JWTAuth validates a Bearer access token against the signing key, issuer
// and audience, and injects the verified claims into the request context
// under "user_id", "name", "email" and "role". Handlers behind this
// middleware can trust those values.
func JWTAuth(secret, issuer, audience string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			claims, err := utils.ParseAccessToken(secret, issuer, audience, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			c.Set("user_id", strconv.FormatUint(claims.AccountID, 10))
			c.Set("name", claims.FullName)
			c.Set("email", claims.Email)
			c.Set("role", claims.Role)
			return next(c)
		}
	}
}
