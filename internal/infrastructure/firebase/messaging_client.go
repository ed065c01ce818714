package firebase

import (
	"context"

	"firebase.google.com/go/v4/messaging"
)

// MessagingClient delivers push notifications through Firebase Cloud Messaging.
type MessagingClient struct {
	client *messaging.Client
}

func NewMessagingClient(client *messaging.Client) *MessagingClient {
	return &MessagingClient{client: client}
}

func (m *MessagingClient) Send(ctx context.Context, deviceToken, title, body string) (string, error) {
	msg := &messaging.Message{
		Token: deviceToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
	}
	return m.client.Send(ctx, msg)
}
