package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"soukly/internal/domain/entity"
	"soukly/internal/domain/repository"
	"soukly/pkg/errors"
)

type firestoreCouponRepository struct {
	client *firestore.Client
}

func NewFirestoreCouponRepository(client *firestore.Client) repository.CouponRepository {
	return &firestoreCouponRepository{
		client: client,
	}
}

func (r *firestoreCouponRepository) Create(ctx context.Context, coupon *entity.Coupon) error {
	if coupon.ID == "" {
		coupon.ID = uuid.New().String()
	}

	now := time.Now()
	coupon.CreatedAt = now
	coupon.UpdatedAt = now

	_, err := r.client.Collection("coupons").Doc(coupon.ID).Set(ctx, coupon)
	if err != nil {
		return errors.Internal("Failed to create coupon", err)
	}
	return nil
}

func (r *firestoreCouponRepository) GetByID(ctx context.Context, id, sellerID string) (*entity.Coupon, error) {
	doc, err := r.client.Collection("coupons").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Coupon", err)
		}
		return nil, errors.Internal("Failed to get coupon", err)
	}

	var coupon entity.Coupon
	if err := doc.DataTo(&coupon); err != nil {
		return nil, errors.Internal("Failed to parse coupon data", err)
	}
	if sellerID != "" && coupon.SellerID != sellerID {
		return nil, errors.NotFound("Coupon", nil)
	}
	return &coupon, nil
}

func (r *firestoreCouponRepository) GetByCode(ctx context.Context, code string) (*entity.Coupon, error) {
	iter := r.client.Collection("coupons").Where("code", "==", code).Limit(1).Documents(ctx)
	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Coupon", err)
		}
		return nil, errors.Internal("Failed to query coupon", err)
	}

	var coupon entity.Coupon
	if err := doc.DataTo(&coupon); err != nil {
		return nil, errors.Internal("Failed to parse coupon data", err)
	}
	return &coupon, nil
}

func (r *firestoreCouponRepository) Update(ctx context.Context, coupon *entity.Coupon) error {
	coupon.UpdatedAt = time.Now()

	_, err := r.client.Collection("coupons").Doc(coupon.ID).Set(ctx, coupon)
	if err != nil {
		return errors.Internal("Failed to update coupon", err)
	}
	return nil
}

func (r *firestoreCouponRepository) Delete(ctx context.Context, id, sellerID string) (bool, error) {
	coupon, err := r.GetByID(ctx, id, sellerID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return false, nil
		}
		return false, err
	}

	if _, err := r.client.Collection("coupons").Doc(coupon.ID).Delete(ctx); err != nil {
		return false, errors.Internal("Failed to delete coupon", err)
	}
	return true, nil
}

func (r *firestoreCouponRepository) ListBySeller(ctx context.Context, sellerID string, limit, offset int) ([]*entity.Coupon, int64, error) {
	query := r.client.Collection("coupons").
		Where("sellerId", "==", sellerID).
		OrderBy("createdAt", firestore.Desc)

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count coupons", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var coupons []*entity.Coupon

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate coupons", err)
		}

		var coupon entity.Coupon
		if err := doc.DataTo(&coupon); err != nil {
			return nil, 0, errors.Internal("Failed to parse coupon data", err)
		}
		coupons = append(coupons, &coupon)
	}

	return coupons, total, nil
}

func (r *firestoreCouponRepository) CountBySeller(ctx context.Context, sellerID string) (int64, error) {
	docs, err := r.client.Collection("coupons").
		Where("sellerId", "==", sellerID).
		Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count coupons", err)
	}
	return int64(len(docs)), nil
}

// Apply re-reads the coupon and the order inside the transaction: two
// concurrent calls on a single-use coupon cannot both succeed, and the total
// is derived from the order as committed, not from the caller's earlier read.
func (r *firestoreCouponRepository) Apply(ctx context.Context, couponID, orderID string) error {
	couponRef := r.client.Collection("coupons").Doc(couponID)
	orderRef := r.client.Collection("orders").Doc(orderID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		couponDoc, err := tx.Get(couponRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Coupon", err)
			}
			return err
		}

		var coupon entity.Coupon
		if err := couponDoc.DataTo(&coupon); err != nil {
			return err
		}

		if coupon.Expired(time.Now()) {
			return errors.BadRequest("Coupon has expired", nil)
		}
		if coupon.RemainingUses <= 0 {
			return errors.BadRequest("Coupon has no remaining uses", nil)
		}

		orderDoc, err := tx.Get(orderRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Order", err)
			}
			return err
		}

		var order entity.Order
		if err := orderDoc.DataTo(&order); err != nil {
			return err
		}

		now := time.Now()
		if err := tx.Update(couponRef, []firestore.Update{
			{Path: "remainingUses", Value: coupon.RemainingUses - 1},
			{Path: "numberUses", Value: coupon.NumberUses + 1},
			{Path: "updatedAt", Value: now},
		}); err != nil {
			return err
		}

		return tx.Update(orderRef, []firestore.Update{
			{Path: "discountType", Value: entity.DiscountTypeCoupon},
			{Path: "discount", Value: float64(coupon.Discount)},
			{Path: "totalPrice", Value: order.TotalWith(float64(coupon.Discount))},
			{Path: "updatedAt", Value: now},
		})
	})

	if err != nil {
		if _, ok := err.(*errors.AppError); ok {
			return err
		}
		return errors.Internal("Failed to apply coupon", err)
	}
	return nil
}
