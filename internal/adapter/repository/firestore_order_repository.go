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

type firestoreOrderRepository struct {
	client *firestore.Client
}

func NewFirestoreOrderRepository(client *firestore.Client) repository.OrderRepository {
	return &firestoreOrderRepository{
		client: client,
	}
}

func (r *firestoreOrderRepository) Create(ctx context.Context, order *entity.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}

	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	_, err := r.client.Collection("orders").Doc(order.ID).Set(ctx, order)
	if err != nil {
		return errors.Internal("Failed to create order", err)
	}
	return nil
}

func (r *firestoreOrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	doc, err := r.client.Collection("orders").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Order", err)
		}
		return nil, errors.Internal("Failed to get order", err)
	}

	var order entity.Order
	if err := doc.DataTo(&order); err != nil {
		return nil, errors.Internal("Failed to parse order data", err)
	}
	return &order, nil
}

func (r *firestoreOrderRepository) GetByIDForBuyer(ctx context.Context, id, buyerID string) (*entity.Order, error) {
	order, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != buyerID {
		return nil, errors.NotFound("Order", nil)
	}
	return order, nil
}

func (r *firestoreOrderRepository) Update(ctx context.Context, order *entity.Order) error {
	order.UpdatedAt = time.Now()

	_, err := r.client.Collection("orders").Doc(order.ID).Set(ctx, order)
	if err != nil {
		return errors.Internal("Failed to update order", err)
	}
	return nil
}

func (r *firestoreOrderRepository) Delete(ctx context.Context, id, buyerID string) (bool, error) {
	order, err := r.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return false, nil
		}
		return false, err
	}
	if order.BuyerID != buyerID {
		return false, nil
	}

	if _, err := r.client.Collection("orders").Doc(id).Delete(ctx); err != nil {
		return false, errors.Internal("Failed to delete order", err)
	}
	return true, nil
}

func (r *firestoreOrderRepository) ListByBuyer(ctx context.Context, buyerID string, limit, offset int) ([]*entity.Order, int64, error) {
	query := r.client.Collection("orders").
		Where("buyerId", "==", buyerID).
		OrderBy("createdAt", firestore.Desc)

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count orders", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var orders []*entity.Order

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate orders", err)
		}

		var order entity.Order
		if err := doc.DataTo(&order); err != nil {
			return nil, 0, errors.Internal("Failed to parse order data", err)
		}
		orders = append(orders, &order)
	}

	return orders, total, nil
}

func (r *firestoreOrderRepository) CountBySeller(ctx context.Context, sellerID string) (int64, error) {
	docs, err := r.client.Collection("orders").
		Where("sellerId", "==", sellerID).
		Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count orders", err)
	}
	return int64(len(docs)), nil
}

func (r *firestoreOrderRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	iter := r.client.Collection("orders").
		Where("secretCode", "==", code).
		Limit(1).
		Documents(ctx)

	_, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return false, nil
		}
		return false, errors.Internal("Failed to check secret code", err)
	}
	return true, nil
}

func (r *firestoreOrderRepository) HasActiveOrder(ctx context.Context, buyerID, itemID string) (bool, error) {
	iter := r.client.Collection("orders").
		Where("buyerId", "==", buyerID).
		Where("itemId", "==", itemID).
		Documents(ctx)

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			return false, nil
		}
		if err != nil {
			return false, errors.Internal("Failed to check existing orders", err)
		}

		var order entity.Order
		if err := doc.DataTo(&order); err != nil {
			return false, errors.Internal("Failed to parse order data", err)
		}
		if order.Active() {
			return true, nil
		}
	}
}
