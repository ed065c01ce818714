package repository

import (
	"context"

	"soukly/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByMobile(ctx context.Context, mobile string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, role string, limit, offset int) ([]*entity.User, int64, error)
	Count(ctx context.Context, role string) (int64, error)
	SetRatingSummary(ctx context.Context, userID string, rate entity.RatingSummary) error
}
