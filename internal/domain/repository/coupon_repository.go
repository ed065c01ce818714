package repository

import (
	"context"

	"soukly/internal/domain/entity"
)

type CouponRepository interface {
	Create(ctx context.Context, coupon *entity.Coupon) error
	GetByID(ctx context.Context, id, sellerID string) (*entity.Coupon, error)
	GetByCode(ctx context.Context, code string) (*entity.Coupon, error)
	Update(ctx context.Context, coupon *entity.Coupon) error
	Delete(ctx context.Context, id, sellerID string) (bool, error)
	ListBySeller(ctx context.Context, sellerID string, limit, offset int) ([]*entity.Coupon, int64, error)
	CountBySeller(ctx context.Context, sellerID string) (int64, error)

	// Apply atomically consumes one use of the coupon and rewrites the
	// order's discount fields and total. Both writes commit together or not
	// at all; the total is computed from the order document read inside the
	// same transaction, never from a caller-side snapshot.
	Apply(ctx context.Context, couponID, orderID string) error
}
