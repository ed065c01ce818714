package repository

import (
	"context"

	"soukly/internal/domain/entity"
)

type ItemFilter struct {
	SellerID string
	Category string
	Status   string
	MinPrice float64
	MaxPrice float64
}

type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ItemFilter, limit, offset int) ([]*entity.Item, int64, error)
	Count(ctx context.Context) (int64, error)
	SetRatingSummary(ctx context.Context, itemID string, rate entity.RatingSummary) error
}
