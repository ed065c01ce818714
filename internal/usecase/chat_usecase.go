package usecase

import (
	"context"
	"encoding/json"

	"soukly/internal/domain/entity"
	"soukly/internal/domain/repository"
	"soukly/pkg/errors"
	"soukly/pkg/logger"
	"soukly/pkg/utils"
)

type ChatUseCase struct {
	chatRepo      repository.ChatRepository
	userRepo      repository.UserRepository
	presence      Presence
	rateLimiter   RateLimiter
	notifications *NotificationUseCase
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
	presence Presence,
	rateLimiter RateLimiter,
	notifications *NotificationUseCase,
) *ChatUseCase {
	return &ChatUseCase{
		chatRepo:      chatRepo,
		userRepo:      userRepo,
		presence:      presence,
		rateLimiter:   rateLimiter,
		notifications: notifications,
	}
}

// StartConversation returns the existing conversation between the two users
// or creates one.
func (uc *ChatUseCase) StartConversation(ctx context.Context, userID, recipientID, itemID string) (*entity.Conversation, error) {
	if userID == recipientID {
		return nil, errors.Rejection("You cannot message yourself")
	}

	if allowed, wait := uc.rateLimiter.Allow(userID, "start_conversation"); !allowed {
		return nil, errors.New("RATE_LIMITED", "Too many new conversations, retry in "+wait.Round(1e9).String(), 429, nil)
	}

	if _, err := uc.userRepo.GetByID(ctx, recipientID); err != nil {
		return nil, err
	}

	existing, err := uc.chatRepo.FindConversation(ctx, userID, recipientID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	conversation := &entity.Conversation{
		Participants: []string{userID, recipientID},
		ItemID:       itemID,
	}
	if err := uc.chatRepo.CreateConversation(ctx, conversation); err != nil {
		return nil, err
	}
	return conversation, nil
}

// SendMessage persists the message, relays it to the recipient's live
// connection and falls back to a push notification when they are offline.
func (uc *ChatUseCase) SendMessage(ctx context.Context, senderID, conversationID, content string) (*entity.Message, error) {
	if content == "" {
		return nil, errors.BadRequest("Message content is required", nil)
	}

	if allowed, wait := uc.rateLimiter.Allow(senderID, "send_message"); !allowed {
		return nil, errors.New("RATE_LIMITED", "Sending too fast, retry in "+wait.Round(1e9).String(), 429, nil)
	}

	conversation, err := uc.chatRepo.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	recipientID := ""
	isParticipant := false
	for _, p := range conversation.Participants {
		if p == senderID {
			isParticipant = true
		} else {
			recipientID = p
		}
	}
	if !isParticipant || recipientID == "" {
		return nil, errors.Forbidden("You are not part of this conversation", nil)
	}

	message := &entity.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		RecipientID:    recipientID,
		Content:        content,
	}
	if err := uc.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	conversation.LastMessage = content
	if err := uc.chatRepo.UpdateConversation(ctx, conversation); err != nil {
		logger.Warn("failed to update conversation %s: %v", conversationID, err)
	}

	uc.deliver(ctx, message)
	return message, nil
}

func (uc *ChatUseCase) deliver(ctx context.Context, message *entity.Message) {
	payload, err := json.Marshal(message)
	if err != nil {
		logger.Error("failed to encode message %s: %v", message.ID, err)
		return
	}

	if uc.presence.SendToUser(message.RecipientID, payload) {
		return
	}

	sender, err := uc.userRepo.GetByID(ctx, message.SenderID)
	title := "New message"
	if err == nil {
		title = "New message from " + sender.Name
	}
	if err := uc.notifications.Send(ctx, message.RecipientID, title, message.Content); err != nil {
		logger.Warn("push fallback failed for %s: %v", message.RecipientID, err)
	}
}

func (uc *ChatUseCase) ListConversations(ctx context.Context, userID string, page, limit int) ([]*entity.Conversation, int64, error) {
	p := utils.NewPaginationParams(page, limit)
	return uc.chatRepo.ListConversations(ctx, userID, p.PageSize, p.Offset)
}

func (uc *ChatUseCase) ListMessages(ctx context.Context, userID, conversationID string, page, limit int) ([]*entity.Message, int64, error) {
	conversation, err := uc.chatRepo.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, 0, err
	}

	isParticipant := false
	for _, p := range conversation.Participants {
		if p == userID {
			isParticipant = true
		}
	}
	if !isParticipant {
		return nil, 0, errors.Forbidden("You are not part of this conversation", nil)
	}

	p := utils.NewPaginationParams(page, limit)
	return uc.chatRepo.ListMessages(ctx, conversationID, p.PageSize, p.Offset)
}

// MarkRead stamps every unread message addressed to the reader.
func (uc *ChatUseCase) MarkRead(ctx context.Context, userID, conversationID string) error {
	conversation, err := uc.chatRepo.GetConversation(ctx, conversationID)
	if err != nil {
		return err
	}

	isParticipant := false
	for _, p := range conversation.Participants {
		if p == userID {
			isParticipant = true
		}
	}
	if !isParticipant {
		return errors.Forbidden("You are not part of this conversation", nil)
	}

	return uc.chatRepo.MarkRead(ctx, conversationID, userID)
}

// IsOnline exposes presence for the conversation list UI.
func (uc *ChatUseCase) IsOnline(userID string) bool {
	return uc.presence.IsOnline(userID)
}
