// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"oauthgate/internal/delivery/api/middleware"
	"oauthgate/internal/delivery/api/router/handler"
	"oauthgate/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	HealthHandler  *handler.HealthHandler
	AuthMiddleware *middleware.AuthMiddleware
	Gatherer       prometheus.Gatherer
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	healthHandler  *handler.HealthHandler
	authMiddleware *middleware.AuthMiddleware
	gatherer       prometheus.Gatherer
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		healthHandler:  params.HealthHandler,
		authMiddleware: params.AuthMiddleware,
		gatherer:       params.Gatherer,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", r.healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler(r.gatherer)))

	usersGroup := e.Group("/api/v1/users")
	{
		usersGroup.POST("/google-login", r.userHandler.GoogleLogin)
		usersGroup.GET("/profile", r.userHandler.GetProfile, r.authMiddleware.Authenticate)
	}
}
