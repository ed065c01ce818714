package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"soukly/internal/usecase"
	"soukly/pkg/response"
	"soukly/pkg/utils"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{chatUseCase: chatUseCase}
}

type startConversationRequest struct {
	RecipientID string `json:"recipient_id" validate:"required"`
	ItemID      string `json:"item_id"`
}

func (h *ChatHandler) StartConversation(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req startConversationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	conversation, err := h.chatUseCase.StartConversation(c.Request().Context(), uid, req.RecipientID, req.ItemID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, "Conversation ready", conversation)
}

type sendMessageRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	message, err := h.chatUseCase.SendMessage(c.Request().Context(), uid, c.Param("id"), req.Content)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, "Message sent", message)
}

func (h *ChatHandler) ListConversations(c echo.Context) error {
	uid := c.Get("uid").(string)
	p := utils.GetPaginationParams(c)

	conversations, total, err := h.chatUseCase.ListConversations(c.Request().Context(), uid, p.Page, p.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.SuccessPaginated(c, "Conversations retrieved", conversations, total, p.Page, p.PageSize)
}

func (h *ChatHandler) ListMessages(c echo.Context) error {
	uid := c.Get("uid").(string)
	p := utils.GetPaginationParams(c)

	messages, total, err := h.chatUseCase.ListMessages(c.Request().Context(), uid, c.Param("id"), p.Page, p.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.SuccessPaginated(c, "Messages retrieved", messages, total, p.Page, p.PageSize)
}

func (h *ChatHandler) MarkRead(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.chatUseCase.MarkRead(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, "Messages marked read", nil)
}

func (h *ChatHandler) Presence(c echo.Context) error {
	online := h.chatUseCase.IsOnline(c.Param("id"))
	return response.Success(c, "Presence retrieved", map[string]bool{"online": online})
}
