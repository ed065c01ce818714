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

type firestoreReviewRepository struct {
	client *firestore.Client
}

func NewFirestoreReviewRepository(client *firestore.Client) repository.ReviewRepository {
	return &firestoreReviewRepository{
		client: client,
	}
}

func (r *firestoreReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}

	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now

	_, err := r.client.Collection("reviews").Doc(review.ID).Set(ctx, review)
	if err != nil {
		return errors.Internal("Failed to create review", err)
	}
	return nil
}

func (r *firestoreReviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	doc, err := r.client.Collection("reviews").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Review", err)
		}
		return nil, errors.Internal("Failed to get review", err)
	}

	var review entity.Review
	if err := doc.DataTo(&review); err != nil {
		return nil, errors.Internal("Failed to parse review data", err)
	}
	return &review, nil
}

func (r *firestoreReviewRepository) GetByBuyerAndItem(ctx context.Context, buyerID, itemID string) (*entity.Review, error) {
	iter := r.client.Collection("reviews").
		Where("buyerId", "==", buyerID).
		Where("itemId", "==", itemID).
		Limit(1).
		Documents(ctx)

	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Review", err)
		}
		return nil, errors.Internal("Failed to query review", err)
	}

	var review entity.Review
	if err := doc.DataTo(&review); err != nil {
		return nil, errors.Internal("Failed to parse review data", err)
	}
	return &review, nil
}

func (r *firestoreReviewRepository) Update(ctx context.Context, review *entity.Review) error {
	review.UpdatedAt = time.Now()

	_, err := r.client.Collection("reviews").Doc(review.ID).Set(ctx, review)
	if err != nil {
		return errors.Internal("Failed to update review", err)
	}
	return nil
}

func (r *firestoreReviewRepository) Delete(ctx context.Context, id, buyerID string) (bool, error) {
	review, err := r.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return false, nil
		}
		return false, err
	}
	if review.BuyerID != buyerID {
		return false, nil
	}

	if _, err := r.client.Collection("reviews").Doc(id).Delete(ctx); err != nil {
		return false, errors.Internal("Failed to delete review", err)
	}
	return true, nil
}

func (r *firestoreReviewRepository) ListBySeller(ctx context.Context, sellerID string, limit, offset int) ([]*entity.Review, int64, error) {
	query := r.client.Collection("reviews").
		Where("sellerId", "==", sellerID).
		OrderBy("createdAt", firestore.Desc)

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count reviews", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var reviews []*entity.Review

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate reviews", err)
		}

		var review entity.Review
		if err := doc.DataTo(&review); err != nil {
			return nil, 0, errors.Internal("Failed to parse review data", err)
		}
		reviews = append(reviews, &review)
	}

	return reviews, total, nil
}

func (r *firestoreReviewRepository) Count(ctx context.Context, sellerID, itemID string) (int64, error) {
	query := r.client.Collection("reviews").Query
	if sellerID != "" {
		query = query.Where("sellerId", "==", sellerID)
	}
	if itemID != "" {
		query = query.Where("itemId", "==", itemID)
	}

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count reviews", err)
	}
	return int64(len(docs)), nil
}

func (r *firestoreReviewRepository) Aggregate(ctx context.Context, sellerID, itemID string) ([]repository.ReviewBucket, error) {
	query := r.client.Collection("reviews").Where("sellerId", "==", sellerID)
	if itemID != "" {
		query = query.Where("itemId", "==", itemID)
	}

	counts := make(map[string]int)
	sums := make(map[string]float64)

	iter := query.Documents(ctx)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate reviews", err)
		}

		var review entity.Review
		if err := doc.DataTo(&review); err != nil {
			return nil, errors.Internal("Failed to parse review data", err)
		}
		counts[review.Title]++
		sums[review.Title] += review.Rate
	}

	var buckets []repository.ReviewBucket
	for _, title := range entity.ReviewTitles {
		n := counts[title]
		if n == 0 {
			continue
		}
		buckets = append(buckets, repository.ReviewBucket{
			Title:       title,
			Count:       n,
			AverageRate: sums[title] / float64(n),
		})
	}

	return buckets, nil
}
