package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"soukly/internal/usecase"
	"soukly/pkg/response"
)

type NotificationHandler struct {
	notificationUseCase *usecase.NotificationUseCase
}

func NewNotificationHandler(notificationUseCase *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{notificationUseCase: notificationUseCase}
}

type storeTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

func (h *NotificationHandler) StoreToken(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req storeTokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.notificationUseCase.StoreToken(c.Request().Context(), uid, req.Token); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Token registered", nil)
}

type sendNotificationRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Title  string `json:"title" validate:"required"`
	Body   string `json:"body" validate:"required"`
}

// Send is a staff endpoint for pushing a notification to a user.
func (h *NotificationHandler) Send(c echo.Context) error {
	var req sendNotificationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.notificationUseCase.Send(c.Request().Context(), req.UserID, req.Title, req.Body); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Notification sent", nil)
}
