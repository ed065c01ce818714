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

type firestoreItemRepository struct {
	client *firestore.Client
}

func NewFirestoreItemRepository(client *firestore.Client) repository.ItemRepository {
	return &firestoreItemRepository{
		client: client,
	}
}

func (r *firestoreItemRepository) Create(ctx context.Context, item *entity.Item) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}

	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	_, err := r.client.Collection("items").Doc(item.ID).Set(ctx, item)
	if err != nil {
		return errors.Internal("Failed to create item", err)
	}
	return nil
}

func (r *firestoreItemRepository) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	doc, err := r.client.Collection("items").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Item", err)
		}
		return nil, errors.Internal("Failed to get item", err)
	}

	var item entity.Item
	if err := doc.DataTo(&item); err != nil {
		return nil, errors.Internal("Failed to parse item data", err)
	}
	return &item, nil
}

func (r *firestoreItemRepository) Update(ctx context.Context, item *entity.Item) error {
	item.UpdatedAt = time.Now()

	_, err := r.client.Collection("items").Doc(item.ID).Set(ctx, item)
	if err != nil {
		return errors.Internal("Failed to update item", err)
	}
	return nil
}

func (r *firestoreItemRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("items").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete item", err)
	}
	return nil
}

func (r *firestoreItemRepository) List(ctx context.Context, filter repository.ItemFilter, limit, offset int) ([]*entity.Item, int64, error) {
	query := r.client.Collection("items").Query

	if filter.SellerID != "" {
		query = query.Where("sellerId", "==", filter.SellerID)
	}
	if filter.Category != "" {
		query = query.Where("category", "==", filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("status", "==", filter.Status)
	}
	if filter.MinPrice > 0 {
		query = query.Where("price", ">=", filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		query = query.Where("price", "<=", filter.MaxPrice)
	}

	query = query.OrderBy("createdAt", firestore.Desc)

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count items", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var items []*entity.Item

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate items", err)
		}

		var item entity.Item
		if err := doc.DataTo(&item); err != nil {
			return nil, 0, errors.Internal("Failed to parse item data", err)
		}
		items = append(items, &item)
	}

	return items, total, nil
}

func (r *firestoreItemRepository) Count(ctx context.Context) (int64, error) {
	docs, err := r.client.Collection("items").Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count items", err)
	}
	return int64(len(docs)), nil
}

func (r *firestoreItemRepository) SetRatingSummary(ctx context.Context, itemID string, rate entity.RatingSummary) error {
	_, err := r.client.Collection("items").Doc(itemID).Update(ctx, []firestore.Update{
		{Path: "rate", Value: rate},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		return errors.Internal("Failed to update item rating", err)
	}
	return nil
}
