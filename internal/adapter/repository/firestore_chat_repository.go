package repository

import (
	"context"
	"crypto/rand"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"soukly/internal/domain/entity"
	"soukly/internal/domain/repository"
	"soukly/pkg/errors"
)

type firestoreChatRepository struct {
	client *firestore.Client
}

func NewFirestoreChatRepository(client *firestore.Client) repository.ChatRepository {
	return &firestoreChatRepository{
		client: client,
	}
}

func (r *firestoreChatRepository) CreateConversation(ctx context.Context, conversation *entity.Conversation) error {
	if conversation.ID == "" {
		conversation.ID = uuid.New().String()
	}

	now := time.Now()
	conversation.CreatedAt = now
	conversation.UpdatedAt = now

	_, err := r.client.Collection("conversations").Doc(conversation.ID).Set(ctx, conversation)
	if err != nil {
		return errors.Internal("Failed to create conversation", err)
	}
	return nil
}

func (r *firestoreChatRepository) GetConversation(ctx context.Context, id string) (*entity.Conversation, error) {
	doc, err := r.client.Collection("conversations").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Conversation", err)
		}
		return nil, errors.Internal("Failed to get conversation", err)
	}

	var conversation entity.Conversation
	if err := doc.DataTo(&conversation); err != nil {
		return nil, errors.Internal("Failed to parse conversation data", err)
	}
	return &conversation, nil
}

func (r *firestoreChatRepository) FindConversation(ctx context.Context, userA, userB string) (*entity.Conversation, error) {
	iter := r.client.Collection("conversations").
		Where("participants", "array-contains", userA).
		Documents(ctx)

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			return nil, errors.NotFound("Conversation", nil)
		}
		if err != nil {
			return nil, errors.Internal("Failed to query conversations", err)
		}

		var conversation entity.Conversation
		if err := doc.DataTo(&conversation); err != nil {
			return nil, errors.Internal("Failed to parse conversation data", err)
		}
		for _, p := range conversation.Participants {
			if p == userB {
				return &conversation, nil
			}
		}
	}
}

func (r *firestoreChatRepository) UpdateConversation(ctx context.Context, conversation *entity.Conversation) error {
	conversation.UpdatedAt = time.Now()

	_, err := r.client.Collection("conversations").Doc(conversation.ID).Set(ctx, conversation)
	if err != nil {
		return errors.Internal("Failed to update conversation", err)
	}
	return nil
}

func (r *firestoreChatRepository) ListConversations(ctx context.Context, userID string, limit, offset int) ([]*entity.Conversation, int64, error) {
	query := r.client.Collection("conversations").
		Where("participants", "array-contains", userID).
		OrderBy("updatedAt", firestore.Desc)

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count conversations", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var conversations []*entity.Conversation

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate conversations", err)
		}

		var conversation entity.Conversation
		if err := doc.DataTo(&conversation); err != nil {
			return nil, 0, errors.Internal("Failed to parse conversation data", err)
		}
		conversations = append(conversations, &conversation)
	}

	return conversations, total, nil
}

func (r *firestoreChatRepository) CountConversations(ctx context.Context, userID string) (int64, error) {
	docs, err := r.client.Collection("conversations").
		Where("participants", "array-contains", userID).
		Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count conversations", err)
	}
	return int64(len(docs)), nil
}

func (r *firestoreChatRepository) CreateMessage(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
	}
	message.CreatedAt = time.Now()

	_, err := r.client.Collection("messages").Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Internal("Failed to create message", err)
	}
	return nil
}

func (r *firestoreChatRepository) ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, int64, error) {
	// Message IDs are ULIDs, so ordering by document ID is chronological.
	query := r.client.Collection("messages").
		Where("conversationId", "==", conversationID).
		OrderBy("id", firestore.Desc)

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count messages", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var messages []*entity.Message

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate messages", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			return nil, 0, errors.Internal("Failed to parse message data", err)
		}
		messages = append(messages, &message)
	}

	return messages, total, nil
}

func (r *firestoreChatRepository) MarkRead(ctx context.Context, conversationID, readerID string) error {
	iter := r.client.Collection("messages").
		Where("conversationId", "==", conversationID).
		Where("recipientId", "==", readerID).
		Documents(ctx)

	now := time.Now()
	batch := r.client.Batch()
	dirty := false

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return errors.Internal("Failed to iterate messages", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			return errors.Internal("Failed to parse message data", err)
		}
		if message.ReadAt != nil {
			continue
		}

		batch.Update(doc.Ref, []firestore.Update{
			{Path: "readAt", Value: now},
		})
		dirty = true
	}

	if !dirty {
		return nil
	}
	if _, err := batch.Commit(ctx); err != nil {
		return errors.Internal("Failed to mark messages read", err)
	}
	return nil
}
