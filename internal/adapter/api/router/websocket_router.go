package router

import (
	"github.com/labstack/echo/v4"

	"soukly/internal/adapter/api/handler"
)

// The websocket handler authenticates inside the upgrade, so no middleware.
func SetupWebSocketRouter(e *echo.Echo, h *handler.WebSocketHandler) {
	e.GET("/ws", h.Handle)
}
