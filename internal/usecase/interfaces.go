package usecase

import (
	"context"
	"time"

	"soukly/internal/domain/entity"
)

// AuthProvider is the slice of the identity provider the usecases need.
// Implemented by infrastructure/firebase.AuthClient.
type AuthProvider interface {
	CreateUser(ctx context.Context, email, password, phone string) (string, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	EmailVerified(ctx context.Context, uid string) (bool, error)
	VerifyToken(ctx context.Context, idToken string) (string, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
	EmailVerificationLink(ctx context.Context, email string) (string, error)
	PasswordResetLink(ctx context.Context, email string) (string, error)
	SignInWithEmailPassword(ctx context.Context, email, password string) (string, string, error)
	ExchangeRefreshToken(ctx context.Context, refreshToken string) (string, error)
}

// PendingCache holds provisional registrations until email verification.
// Implemented by infrastructure/redis.PendingRegistrationCache.
type PendingCache interface {
	Set(ctx context.Context, user *entity.User) error
	Get(ctx context.Context, uid string) (*entity.User, error)
	Delete(ctx context.Context, uid string) error
}

// Mailer sends transactional email. Implemented by infrastructure/mail.Mailer.
type Mailer interface {
	SendVerificationLink(to, link string) error
	SendPasswordResetLink(to, link string) error
}

// Pusher delivers push notifications to a device token. Implemented by
// infrastructure/firebase.MessagingClient.
type Pusher interface {
	Send(ctx context.Context, deviceToken, title, body string) (string, error)
}

// Presence is the live-connection registry used by the chat relay.
// Implemented by infrastructure/websocket.Manager.
type Presence interface {
	IsOnline(userID string) bool
	SendToUser(userID string, payload []byte) bool
}

// RateLimiter throttles per-user actions. Implemented by
// infrastructure/ratelimit.RateLimiter.
type RateLimiter interface {
	Allow(userID, action string) (bool, time.Duration)
}
