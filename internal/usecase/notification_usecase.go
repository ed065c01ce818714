package usecase

import (
	"context"

	"soukly/internal/domain/repository"
	"soukly/pkg/errors"
	"soukly/pkg/logger"
)

type NotificationUseCase struct {
	userRepo repository.UserRepository
	pusher   Pusher
}

func NewNotificationUseCase(userRepo repository.UserRepository, pusher Pusher) *NotificationUseCase {
	return &NotificationUseCase{
		userRepo: userRepo,
		pusher:   pusher,
	}
}

// StoreToken appends a device token to the user's registered set, ignoring
// duplicates.
func (uc *NotificationUseCase) StoreToken(ctx context.Context, userID, token string) error {
	if token == "" {
		return errors.BadRequest("Token is required", nil)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	for _, t := range user.FcmTokens {
		if t == token {
			return nil
		}
	}

	user.FcmTokens = append(user.FcmTokens, token)
	return uc.userRepo.Update(ctx, user)
}

// Send pushes a notification to the user's first registered device. Users
// without tokens are skipped silently.
func (uc *NotificationUseCase) Send(ctx context.Context, userID, title, body string) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if len(user.FcmTokens) == 0 {
		logger.Debug("no device tokens registered for %s, skipping push", userID)
		return nil
	}

	if _, err := uc.pusher.Send(ctx, user.FcmTokens[0], title, body); err != nil {
		return errors.Internal("Failed to send notification", err)
	}
	return nil
}
