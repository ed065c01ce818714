package router

import (
	"github.com/labstack/echo/v4"

	"soukly/internal/adapter/api/handler"
	"soukly/internal/adapter/api/middleware"
)

func SetupCouponRouter(e *echo.Echo, h *handler.CouponHandler, authMW *middleware.AuthMiddleware) {
	coupons := e.Group("/v1/coupons")
	coupons.Use(authMW.Authenticate)

	coupons.POST("", h.Create)
	coupons.GET("", h.List)
	coupons.GET("/:id", h.Get)
	coupons.PATCH("/:id", h.Update)
	coupons.DELETE("/:id", h.Delete)
	coupons.POST("/apply", h.Apply)
}
