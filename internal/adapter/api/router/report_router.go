package router

import (
	"github.com/labstack/echo/v4"

	"soukly/internal/adapter/api/handler"
	"soukly/internal/adapter/api/middleware"
)

func SetupReportRouter(e *echo.Echo, h *handler.ReportHandler, authMW *middleware.AuthMiddleware, roleMW *middleware.RoleMiddleware) {
	reports := e.Group("/v1/reports")
	reports.Use(authMW.Authenticate)

	reports.POST("", h.Create)
	reports.GET("", h.ListOwn)
	reports.DELETE("/:id", h.Delete)

	staff := reports.Group("", roleMW.Staff)
	staff.GET("/all", h.ListAll)
	staff.GET("/:id", h.Get)
	staff.PATCH("/:id", h.Resolve)
}
