package router

import (
	"github.com/labstack/echo/v4"

	"soukly/internal/adapter/api/handler"
	"soukly/internal/adapter/api/middleware"
)

func SetupNotificationRouter(e *echo.Echo, h *handler.NotificationHandler, authMW *middleware.AuthMiddleware, roleMW *middleware.RoleMiddleware) {
	notifications := e.Group("/v1/notifications")
	notifications.Use(authMW.Authenticate)

	notifications.POST("/tokens", h.StoreToken)

	staff := notifications.Group("", roleMW.Staff)
	staff.POST("/send", h.Send)
}
