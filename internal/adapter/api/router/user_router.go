package router

import (
	"github.com/labstack/echo/v4"

	"soukly/internal/adapter/api/handler"
	"soukly/internal/adapter/api/middleware"
)

func SetupUserRouter(e *echo.Echo, h *handler.UserHandler, authMW *middleware.AuthMiddleware, roleMW *middleware.RoleMiddleware) {
	users := e.Group("/v1/users")
	users.Use(authMW.Authenticate)

	users.GET("/me", h.Me)
	users.PATCH("/me", h.UpdateProfile)
	users.GET("/:id", h.Get)

	staff := users.Group("", roleMW.Staff)
	staff.GET("", h.List)
	staff.GET("/count", h.Count)
	staff.POST("/:id/deactivate", h.Deactivate)

	admin := users.Group("", roleMW.Admin)
	admin.PATCH("/:id/role", h.SetRole)
	admin.DELETE("/:id", h.Delete)
}
