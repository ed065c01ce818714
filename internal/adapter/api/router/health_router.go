package router

import (
	"github.com/labstack/echo/v4"

	"soukly/internal/adapter/api/handler"
)

func SetupHealthRouter(e *echo.Echo, h *handler.HealthHandler) {
	e.GET("/health", h.Check)
	e.GET("/health/redis", h.CheckRedis)
}
