package router

import (
	"github.com/labstack/echo/v4"

	"soukly/internal/adapter/api/handler"
	"soukly/internal/adapter/api/middleware"
)

func SetupChatRouter(e *echo.Echo, h *handler.ChatHandler, authMW *middleware.AuthMiddleware) {
	chats := e.Group("/v1/chats")
	chats.Use(authMW.Authenticate)

	chats.POST("", h.StartConversation)
	chats.GET("", h.ListConversations)
	chats.POST("/:id/messages", h.SendMessage)
	chats.GET("/:id/messages", h.ListMessages)
	chats.POST("/:id/read", h.MarkRead)
	chats.GET("/presence/:id", h.Presence)
}
