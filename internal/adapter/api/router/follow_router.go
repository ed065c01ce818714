package router

import (
	"github.com/labstack/echo/v4"

	"soukly/internal/adapter/api/handler"
	"soukly/internal/adapter/api/middleware"
)

func SetupFollowRouter(e *echo.Echo, h *handler.FollowHandler, authMW *middleware.AuthMiddleware) {
	follows := e.Group("/v1/follows")
	follows.Use(authMW.Authenticate)

	follows.POST("", h.Follow)
	follows.GET("", h.List)
	follows.GET("/search", h.Search)
	follows.GET("/count", h.Count)
	follows.DELETE("/:id", h.Unfollow)
}
