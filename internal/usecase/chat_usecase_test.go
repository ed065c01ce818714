package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soukly/internal/domain/entity"
	"soukly/pkg/errors"
)

type chatFixture struct {
	uc       *ChatUseCase
	chats    *memChatRepo
	users    *memUserRepo
	presence *fakePresence
	pusher   *fakePusher
	limiter  *fakeLimiter
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()
	chats := newMemChatRepo()
	users := newMemUserRepo()
	presence := newFakePresence()
	pusher := &fakePusher{}
	limiter := &fakeLimiter{}

	require.NoError(t, users.Create(context.Background(), &entity.User{
		ID: "alice", Name: "Alice", FcmTokens: []string{"token-alice"},
	}))
	require.NoError(t, users.Create(context.Background(), &entity.User{
		ID: "bob", Name: "Bob", FcmTokens: []string{"token-bob"},
	}))

	notifications := NewNotificationUseCase(users, pusher)
	return &chatFixture{
		uc:       NewChatUseCase(chats, users, presence, limiter, notifications),
		chats:    chats,
		users:    users,
		presence: presence,
		pusher:   pusher,
		limiter:  limiter,
	}
}

func TestStartConversationReusesExisting(t *testing.T) {
	f := newChatFixture(t)

	first, err := f.uc.StartConversation(context.Background(), "alice", "bob", "item-1")
	require.NoError(t, err)

	// The same pair lands in the same conversation regardless of direction.
	second, err := f.uc.StartConversation(context.Background(), "bob", "alice", "")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestStartConversationWithSelf(t *testing.T) {
	f := newChatFixture(t)

	_, err := f.uc.StartConversation(context.Background(), "alice", "alice", "")
	assert.True(t, errors.Is(err, "REJECTED"))
}

func TestStartConversationUnknownRecipient(t *testing.T) {
	f := newChatFixture(t)

	_, err := f.uc.StartConversation(context.Background(), "alice", "nobody", "")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestStartConversationRateLimited(t *testing.T) {
	f := newChatFixture(t)
	f.limiter.denyAction = "start_conversation"

	_, err := f.uc.StartConversation(context.Background(), "alice", "bob", "")
	assert.True(t, errors.Is(err, "RATE_LIMITED"))
}

func TestSendMessageRelaysWhenOnline(t *testing.T) {
	f := newChatFixture(t)
	conversation, err := f.uc.StartConversation(context.Background(), "alice", "bob", "")
	require.NoError(t, err)

	f.presence.online["bob"] = true

	message, err := f.uc.SendMessage(context.Background(), "alice", conversation.ID, "hello")
	require.NoError(t, err)
	assert.Equal(t, "bob", message.RecipientID)

	require.Len(t, f.presence.delivered["bob"], 1)
	var relayed entity.Message
	require.NoError(t, json.Unmarshal(f.presence.delivered["bob"][0], &relayed))
	assert.Equal(t, "hello", relayed.Content)
	assert.Equal(t, "alice", relayed.SenderID)

	// No push when the live relay worked.
	assert.Empty(t, f.pusher.pushed)
}

func TestSendMessageFallsBackToPush(t *testing.T) {
	f := newChatFixture(t)
	conversation, err := f.uc.StartConversation(context.Background(), "alice", "bob", "")
	require.NoError(t, err)

	_, err = f.uc.SendMessage(context.Background(), "alice", conversation.ID, "hello")
	require.NoError(t, err)

	assert.Empty(t, f.presence.delivered["bob"])
	assert.Equal(t, []string{"token-bob"}, f.pusher.pushed)
}

func TestSendMessageUpdatesLastMessage(t *testing.T) {
	f := newChatFixture(t)
	conversation, err := f.uc.StartConversation(context.Background(), "alice", "bob", "")
	require.NoError(t, err)

	_, err = f.uc.SendMessage(context.Background(), "alice", conversation.ID, "first")
	require.NoError(t, err)
	_, err = f.uc.SendMessage(context.Background(), "bob", conversation.ID, "second")
	require.NoError(t, err)

	stored, err := f.chats.GetConversation(context.Background(), conversation.ID)
	require.NoError(t, err)
	assert.Equal(t, "second", stored.LastMessage)
}

func TestSendMessageOutsiderForbidden(t *testing.T) {
	f := newChatFixture(t)
	require.NoError(t, f.users.Create(context.Background(), &entity.User{ID: "eve", Name: "Eve"}))

	conversation, err := f.uc.StartConversation(context.Background(), "alice", "bob", "")
	require.NoError(t, err)

	_, err = f.uc.SendMessage(context.Background(), "eve", conversation.ID, "let me in")
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	_, _, err = f.uc.ListMessages(context.Background(), "eve", conversation.ID, 1, 20)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	err = f.uc.MarkRead(context.Background(), "eve", conversation.ID)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestSendMessageRateLimited(t *testing.T) {
	f := newChatFixture(t)
	conversation, err := f.uc.StartConversation(context.Background(), "alice", "bob", "")
	require.NoError(t, err)

	f.limiter.denyAction = "send_message"
	_, err = f.uc.SendMessage(context.Background(), "alice", conversation.ID, "hello")
	assert.True(t, errors.Is(err, "RATE_LIMITED"))
}

func TestSendMessageEmptyContent(t *testing.T) {
	f := newChatFixture(t)
	conversation, err := f.uc.StartConversation(context.Background(), "alice", "bob", "")
	require.NoError(t, err)

	_, err = f.uc.SendMessage(context.Background(), "alice", conversation.ID, "")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestMarkReadStampsRecipientMessages(t *testing.T) {
	f := newChatFixture(t)
	conversation, err := f.uc.StartConversation(context.Background(), "alice", "bob", "")
	require.NoError(t, err)

	_, err = f.uc.SendMessage(context.Background(), "alice", conversation.ID, "one")
	require.NoError(t, err)
	_, err = f.uc.SendMessage(context.Background(), "alice", conversation.ID, "two")
	require.NoError(t, err)

	require.NoError(t, f.uc.MarkRead(context.Background(), "bob", conversation.ID))

	messages, _, err := f.uc.ListMessages(context.Background(), "bob", conversation.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	for _, m := range messages {
		assert.NotNil(t, m.ReadAt)
	}
}

func TestIsOnlineReflectsPresence(t *testing.T) {
	f := newChatFixture(t)
	assert.False(t, f.uc.IsOnline("bob"))
	f.presence.online["bob"] = true
	assert.True(t, f.uc.IsOnline("bob"))
}
