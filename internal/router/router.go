// Package router wires HTTP routes to handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/authgate/authgate/internal/config"
	"github.com/authgate/authgate/internal/handler"
	"github.com/authgate/authgate/internal/middleware"
	"github.com/authgate/authgate/internal/model"
)

// RegisterRoutes registers routes that require no authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the credential endpoints and the protected group.
// The /v1/auth group is rate limited (these are the routes worth
// brute-forcing); /v1 requires a valid access token with a known role.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, cfg config.Config, rdb *redis.Client) {
	g := e.Group("/v1/auth")
	g.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)

	protected := e.Group("/v1")
	protected.Use(middleware.JWTAuth(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience))
	protected.Use(middleware.RequireRole(model.RoleAdmin, model.RoleUser))
	protected.GET("/me", a.Me)
}
