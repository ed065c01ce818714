package repository

import (
	"context"

	"soukly/internal/domain/entity"
)

type ChatRepository interface {
	CreateConversation(ctx context.Context, conversation *entity.Conversation) error
	GetConversation(ctx context.Context, id string) (*entity.Conversation, error)
	FindConversation(ctx context.Context, userA, userB string) (*entity.Conversation, error)
	UpdateConversation(ctx context.Context, conversation *entity.Conversation) error
	ListConversations(ctx context.Context, userID string, limit, offset int) ([]*entity.Conversation, int64, error)
	CountConversations(ctx context.Context, userID string) (int64, error)

	CreateMessage(ctx context.Context, message *entity.Message) error
	ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, int64, error)
	MarkRead(ctx context.Context, conversationID, readerID string) error
}
