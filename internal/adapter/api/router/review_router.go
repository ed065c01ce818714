package router

import (
	"github.com/labstack/echo/v4"

	"soukly/internal/adapter/api/handler"
	"soukly/internal/adapter/api/middleware"
)

func SetupReviewRouter(e *echo.Echo, h *handler.ReviewHandler, authMW *middleware.AuthMiddleware) {
	// Public: a seller's reviews and live rating summary.
	e.GET("/v1/sellers/:id/reviews", h.List)
	e.GET("/v1/sellers/:id/average-rate", h.AverageRate)

	reviews := e.Group("/v1/reviews")
	reviews.Use(authMW.Authenticate)

	reviews.POST("/add/:id", h.Add)
	reviews.PATCH("/:id", h.Update)
	reviews.DELETE("/:id", h.Delete)
}
