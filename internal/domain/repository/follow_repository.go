package repository

import (
	"context"

	"soukly/internal/domain/entity"
)

type FollowRepository interface {
	// Create writes the follow document and bumps both users' counters in a
	// single transaction.
	Create(ctx context.Context, follow *entity.Follow) error

	// Delete removes the follow and decrements both counters atomically.
	Delete(ctx context.Context, id, userID, side string) (bool, error)

	Exists(ctx context.Context, followerID, followingID string) (bool, error)
	GetByID(ctx context.Context, id, userID, side string) (*entity.Follow, error)
	List(ctx context.Context, userID, side string, limit, offset int) ([]*entity.Follow, int64, error)
	Search(ctx context.Context, userID, side, namePrefix string, limit, offset int) ([]*entity.Follow, int64, error)
	Count(ctx context.Context, userID, side string) (int64, error)
}
