package router

import (
	"github.com/labstack/echo/v4"

	"soukly/internal/adapter/api/handler"
	"soukly/internal/adapter/api/middleware"
)

func SetupOrderRouter(e *echo.Echo, h *handler.OrderHandler, authMW *middleware.AuthMiddleware, roleMW *middleware.RoleMiddleware) {
	orders := e.Group("/v1/orders")
	orders.Use(authMW.Authenticate)

	orders.POST("", h.Place)
	orders.GET("", h.List)
	orders.GET("/count", h.Count)
	orders.GET("/:id", h.Get)
	orders.PATCH("/:id", h.Update)
	orders.DELETE("/:id", h.Delete)
	orders.POST("/:id/verify-code", h.VerifySecretCode)

	staff := orders.Group("", roleMW.Staff)
	staff.PATCH("/:id/status", h.UpdateStatus)
}
