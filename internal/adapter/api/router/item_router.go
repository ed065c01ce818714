package router

import (
	"github.com/labstack/echo/v4"

	"soukly/internal/adapter/api/handler"
	"soukly/internal/adapter/api/middleware"
)

func SetupItemRouter(e *echo.Echo, h *handler.ItemHandler, authMW *middleware.AuthMiddleware, roleMW *middleware.RoleMiddleware) {
	e.GET("/v1/items", h.List)
	e.GET("/v1/items/:id", h.Get)

	protected := e.Group("/v1/items")
	protected.Use(authMW.Authenticate)

	protected.POST("", h.Create)
	protected.PATCH("/:id", h.Update)
	protected.DELETE("/:id", h.Delete)

	staff := protected.Group("", roleMW.Staff)
	staff.PATCH("/:id/status", h.Moderate)
}
