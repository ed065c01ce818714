package usecase

import (
	"context"
	"time"

	"soukly/internal/domain/entity"
	"soukly/internal/domain/repository"
	"soukly/pkg/errors"
	"soukly/pkg/utils"
)

type CouponUseCase struct {
	couponRepo repository.CouponRepository
	orderRepo  repository.OrderRepository
}

func NewCouponUseCase(couponRepo repository.CouponRepository, orderRepo repository.OrderRepository) *CouponUseCase {
	return &CouponUseCase{
		couponRepo: couponRepo,
		orderRepo:  orderRepo,
	}
}

type CreateCouponInput struct {
	Discount  int
	MaxUses   int
	ItemID    string
	ExpiresAt time.Time
}

// CreateCoupon mints a coupon with a server-generated 9-character code.
func (uc *CouponUseCase) CreateCoupon(ctx context.Context, sellerID string, input CreateCouponInput) (*entity.Coupon, error) {
	if input.Discount < 1 || input.Discount > 100 {
		return nil, errors.BadRequest("Discount must be between 1 and 100", nil)
	}
	if input.MaxUses < 1 {
		return nil, errors.BadRequest("Max uses must be at least 1", nil)
	}
	if !input.ExpiresAt.After(time.Now()) {
		return nil, errors.BadRequest("Expiry must be in the future", nil)
	}

	coupon := &entity.Coupon{
		SellerID:      sellerID,
		Code:          utils.GenerateCouponCode(),
		Discount:      input.Discount,
		MaxUses:       input.MaxUses,
		RemainingUses: input.MaxUses,
		ItemID:        input.ItemID,
		ExpiresAt:     input.ExpiresAt,
	}

	if err := uc.couponRepo.Create(ctx, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

func (uc *CouponUseCase) GetCoupon(ctx context.Context, sellerID, couponID string) (*entity.Coupon, error) {
	return uc.couponRepo.GetByID(ctx, couponID, sellerID)
}

func (uc *CouponUseCase) ListCoupons(ctx context.Context, sellerID string, page, limit int) ([]*entity.Coupon, int64, error) {
	p := utils.NewPaginationParams(page, limit)
	return uc.couponRepo.ListBySeller(ctx, sellerID, p.PageSize, p.Offset)
}

type UpdateCouponInput struct {
	Discount  int
	MaxUses   int
	ExpiresAt time.Time
}

func (uc *CouponUseCase) UpdateCoupon(ctx context.Context, sellerID, couponID string, input UpdateCouponInput) (*entity.Coupon, error) {
	coupon, err := uc.couponRepo.GetByID(ctx, couponID, sellerID)
	if err != nil {
		return nil, err
	}

	if input.Discount > 0 {
		if input.Discount > 100 {
			return nil, errors.BadRequest("Discount must be between 1 and 100", nil)
		}
		coupon.Discount = input.Discount
	}
	if input.MaxUses > 0 {
		// Extending max uses extends the remaining budget by the same amount.
		delta := input.MaxUses - coupon.MaxUses
		coupon.MaxUses = input.MaxUses
		coupon.RemainingUses += delta
		if coupon.RemainingUses < 0 {
			coupon.RemainingUses = 0
		}
	}
	if !input.ExpiresAt.IsZero() {
		coupon.ExpiresAt = input.ExpiresAt
	}

	if err := uc.couponRepo.Update(ctx, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

func (uc *CouponUseCase) DeleteCoupon(ctx context.Context, sellerID, couponID string) error {
	deleted, err := uc.couponRepo.Delete(ctx, couponID, sellerID)
	if err != nil {
		return err
	}
	if !deleted {
		return errors.NotFound("Coupon", nil)
	}
	return nil
}

// ApplyCoupon redeems a coupon code against the buyer's order. The use count
// decrement and the order rewrite commit atomically, so a single-use coupon
// applied concurrently succeeds exactly once.
func (uc *CouponUseCase) ApplyCoupon(ctx context.Context, buyerID, orderID, code string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByIDForBuyer(ctx, orderID, buyerID)
	if err != nil {
		return nil, err
	}
	if order.Status != entity.OrderStatusPending {
		return nil, errors.Rejection("Coupons can only be applied to pending orders")
	}
	if order.DiscountType == entity.DiscountTypeCoupon {
		return nil, errors.Rejection("A coupon is already applied to this order")
	}

	coupon, err := uc.couponRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if coupon.ItemID != "" && coupon.ItemID != order.ItemID {
		return nil, errors.Rejection("Coupon is not valid for this item")
	}
	if coupon.Expired(time.Now()) {
		return nil, errors.Rejection("Coupon has expired")
	}
	if coupon.RemainingUses <= 0 {
		return nil, errors.Rejection("Coupon has no remaining uses")
	}

	if err := uc.couponRepo.Apply(ctx, coupon.ID, order.ID); err != nil {
		if errors.Is(err, "BAD_REQUEST") {
			// Lost the race inside the transaction.
			return nil, errors.Rejection("Coupon has no remaining uses")
		}
		return nil, err
	}

	return uc.orderRepo.GetByID(ctx, order.ID)
}
