package handler

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"soukly/internal/usecase"
	infraws "soukly/internal/infrastructure/websocket"
	"soukly/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients cannot set headers on the upgrade request, so origin
	// enforcement happens at the gateway.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WebSocketHandler struct {
	manager      *infraws.Manager
	authProvider usecase.AuthProvider
	authUseCase  *usecase.AuthUseCase
}

func NewWebSocketHandler(manager *infraws.Manager, authProvider usecase.AuthProvider, authUseCase *usecase.AuthUseCase) *WebSocketHandler {
	return &WebSocketHandler{
		manager:      manager,
		authProvider: authProvider,
		authUseCase:  authUseCase,
	}
}

// Handle upgrades the connection and keeps it in the presence map until it
// closes. The token rides in the query string because browsers cannot set
// headers on upgrade requests.
func (h *WebSocketHandler) Handle(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "token is required")
	}

	uid, err := h.authProvider.VerifyToken(c.Request().Context(), token)
	if err != nil {
		uid, err = h.authUseCase.VerifyPhoneToken(token)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Warn("websocket upgrade failed for %s: %v", uid, err)
		return err
	}

	client := &infraws.Client{
		UserID: uid,
		Conn:   conn,
		Send:   make(chan []byte, 64),
	}

	h.manager.Register <- client

	go client.WritePump()
	go client.ReadPump(h.manager, nil)

	return nil
}
