// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"shelf/internal/delivery/http/middleware"
	"shelf/internal/delivery/http/router/handler"
	"shelf/internal/domain/entity"
	"shelf/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler       *handler.UserHandler
	CollectionHandler *handler.CollectionHandler
	AuthMiddleware    *middleware.AuthMiddleware
	Registry          *prometheus.Registry
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler       *handler.UserHandler
	collectionHandler *handler.CollectionHandler
	authMiddleware    *middleware.AuthMiddleware
	registry          *prometheus.Registry
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:       params.UserHandler,
		collectionHandler: params.CollectionHandler,
		authMiddleware:    params.AuthMiddleware,
		registry:          params.Registry,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)
	if r.registry != nil {
		e.GET("/metrics", echo.WrapHandler(metrics.Handler(r.registry)))
	}

	userGroup := e.Group("/api/user")
	userGroup.POST("/register", r.userHandler.RegisterUser)
	userGroup.POST("/login", r.userHandler.Login)

	authed := userGroup.Group("", r.authMiddleware.Authenticate)
	authed.GET("/me", r.userHandler.Me)

	for _, collection := range []entity.Collection{entity.CollectionFavourites, entity.CollectionHistory} {
		path := "/" + string(collection)
		authed.GET(path, r.collectionHandler.List(collection))
		authed.PUT(path+"/:id", r.collectionHandler.Add(collection))
		authed.DELETE(path+"/:id", r.collectionHandler.Remove(collection))
	}
}
