package router

import (
	"github.com/labstack/echo/v4"

	"soukly/internal/adapter/api/handler"
	"soukly/internal/adapter/api/middleware"
)

func SetupAuthRouter(e *echo.Echo, h *handler.AuthHandler, authMW *middleware.AuthMiddleware) {
	e.POST("/v1/auth/register", h.Register)
	e.GET("/v1/auth/verify-email/:uid", h.VerifyEmail)
	e.POST("/v1/auth/login", h.LoginWithEmail)
	e.POST("/v1/auth/login-phone", h.LoginWithPhone)
	e.POST("/v1/auth/refresh", h.RefreshToken)
	e.POST("/v1/auth/forgot-password", h.ForgotPassword)
	e.POST("/v1/auth/2fa/verify", h.TwoFactorVerify)

	protected := e.Group("/v1/auth")
	protected.Use(authMW.Authenticate)

	protected.POST("/logout", h.Logout)
	protected.POST("/2fa/setup", h.TwoFactorSetup)
	protected.POST("/2fa/disable", h.TwoFactorDisable)
}
