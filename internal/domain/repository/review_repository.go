package repository

import (
	"context"

	"soukly/internal/domain/entity"
)

// ReviewBucket is one qualitative-title group produced by Aggregate.
type ReviewBucket struct {
	Title       string
	Count       int
	AverageRate float64
}

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	GetByBuyerAndItem(ctx context.Context, buyerID, itemID string) (*entity.Review, error)
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id, buyerID string) (bool, error)
	ListBySeller(ctx context.Context, sellerID string, limit, offset int) ([]*entity.Review, int64, error)
	Count(ctx context.Context, sellerID, itemID string) (int64, error)

	// Aggregate groups the seller's reviews (optionally narrowed to one item)
	// by qualitative title. Full scan of matching reviews on every call.
	Aggregate(ctx context.Context, sellerID, itemID string) ([]ReviewBucket, error)
}
