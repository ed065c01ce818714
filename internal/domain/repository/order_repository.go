package repository

import (
	"context"

	"soukly/internal/domain/entity"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	GetByIDForBuyer(ctx context.Context, id, buyerID string) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	Delete(ctx context.Context, id, buyerID string) (bool, error)
	ListByBuyer(ctx context.Context, buyerID string, limit, offset int) ([]*entity.Order, int64, error)
	CountBySeller(ctx context.Context, sellerID string) (int64, error)

	// CodeExists reports whether any order already carries the secret code.
	CodeExists(ctx context.Context, code string) (bool, error)

	// HasActiveOrder reports whether the buyer holds a non-cancelled order
	// on the item.
	HasActiveOrder(ctx context.Context, buyerID, itemID string) (bool, error)
}
