package entity

import (
	"time"
)

type Conversation struct {
	ID           string    `json:"id" firestore:"id"`
	Participants []string  `json:"participants" firestore:"participants"`
	ItemID       string    `json:"item_id,omitempty" firestore:"itemId,omitempty"`
	LastMessage  string    `json:"last_message" firestore:"lastMessage"`
	CreatedAt    time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt    time.Time `json:"updated_at" firestore:"updatedAt"`
}

// Message IDs are ULIDs so a conversation's messages sort chronologically by ID.
type Message struct {
	ID             string     `json:"id" firestore:"id"`
	ConversationID string     `json:"conversation_id" firestore:"conversationId"`
	SenderID       string     `json:"sender_id" firestore:"senderId"`
	RecipientID    string     `json:"recipient_id" firestore:"recipientId"`
	Content        string     `json:"content" firestore:"content"`
	ReadAt         *time.Time `json:"read_at,omitempty" firestore:"readAt,omitempty"`
	CreatedAt      time.Time  `json:"created_at" firestore:"createdAt"`
}
