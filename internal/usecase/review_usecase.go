package usecase

import (
	"context"

	"soukly/internal/domain/entity"
	"soukly/internal/domain/repository"
	"soukly/pkg/errors"
	"soukly/pkg/utils"
)

type ReviewUseCase struct {
	reviewRepo repository.ReviewRepository
	itemRepo   repository.ItemRepository
	userRepo   repository.UserRepository
}

func NewReviewUseCase(
	reviewRepo repository.ReviewRepository,
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo: reviewRepo,
		itemRepo:   itemRepo,
		userRepo:   userRepo,
	}
}

type ReviewInput struct {
	Rate        float64
	Title       string
	Description string
}

// AddReview records one review per buyer per item, then refreshes the
// denormalized rating on both the item and the seller.
func (uc *ReviewUseCase) AddReview(ctx context.Context, buyerID, itemID string, input ReviewInput) (*entity.Review, error) {
	if !entity.ValidReviewTitle(input.Title) {
		return nil, errors.BadRequest("Invalid review title", nil)
	}
	if input.Rate < 0 || input.Rate > 5 {
		return nil, errors.BadRequest("Rate must be between 0 and 5", nil)
	}

	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.SellerID == buyerID {
		return nil, errors.Rejection("You cannot review your own item")
	}

	if _, err := uc.reviewRepo.GetByBuyerAndItem(ctx, buyerID, itemID); err == nil {
		return nil, errors.Rejection("You have already reviewed this item")
	} else if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	review := &entity.Review{
		BuyerID:     buyerID,
		SellerID:    item.SellerID,
		ItemID:      itemID,
		Rate:        input.Rate,
		Title:       input.Title,
		Description: input.Description,
	}

	if err := uc.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	if err := uc.refreshRatings(ctx, item.SellerID, itemID); err != nil {
		return nil, err
	}
	return review, nil
}

func (uc *ReviewUseCase) UpdateReview(ctx context.Context, buyerID, reviewID string, input ReviewInput) (*entity.Review, error) {
	review, err := uc.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.BuyerID != buyerID {
		return nil, errors.Forbidden("You can only edit your own reviews", nil)
	}

	if input.Title != "" {
		if !entity.ValidReviewTitle(input.Title) {
			return nil, errors.BadRequest("Invalid review title", nil)
		}
		review.Title = input.Title
	}
	if input.Rate > 0 {
		if input.Rate > 5 {
			return nil, errors.BadRequest("Rate must be between 0 and 5", nil)
		}
		review.Rate = input.Rate
	}
	if input.Description != "" {
		review.Description = input.Description
	}

	if err := uc.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}

	if err := uc.refreshRatings(ctx, review.SellerID, review.ItemID); err != nil {
		return nil, err
	}
	return review, nil
}

func (uc *ReviewUseCase) DeleteReview(ctx context.Context, buyerID, reviewID string) error {
	review, err := uc.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}

	deleted, err := uc.reviewRepo.Delete(ctx, reviewID, buyerID)
	if err != nil {
		return err
	}
	if !deleted {
		return errors.NotFound("Review", nil)
	}

	return uc.refreshRatings(ctx, review.SellerID, review.ItemID)
}

func (uc *ReviewUseCase) ListReviews(ctx context.Context, sellerID string, page, limit int) ([]*entity.Review, int64, error) {
	p := utils.NewPaginationParams(page, limit)
	return uc.reviewRepo.ListBySeller(ctx, sellerID, p.PageSize, p.Offset)
}

// GetAverageRate recomputes, persists and returns the rating summary for the
// item when itemID is given, otherwise for the seller across all items.
func (uc *ReviewUseCase) GetAverageRate(ctx context.Context, sellerID, itemID string) (*entity.RatingSummary, error) {
	summary, err := uc.computeSummary(ctx, sellerID, itemID)
	if err != nil {
		return nil, err
	}

	if itemID != "" {
		err = uc.itemRepo.SetRatingSummary(ctx, itemID, *summary)
	} else {
		err = uc.userRepo.SetRatingSummary(ctx, sellerID, *summary)
	}
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// refreshRatings recomputes both the item-level and the seller-wide summary
// after any review mutation.
func (uc *ReviewUseCase) refreshRatings(ctx context.Context, sellerID, itemID string) error {
	if _, err := uc.GetAverageRate(ctx, sellerID, itemID); err != nil {
		return err
	}
	_, err := uc.GetAverageRate(ctx, sellerID, "")
	return err
}

// computeSummary buckets reviews by qualitative title. The histogram holds
// each bucket's percentage share and the average is weighted by those shares.
func (uc *ReviewUseCase) computeSummary(ctx context.Context, sellerID, itemID string) (*entity.RatingSummary, error) {
	buckets, err := uc.reviewRepo.Aggregate(ctx, sellerID, itemID)
	if err != nil {
		return nil, err
	}

	summary := &entity.RatingSummary{
		Rating: make([]float64, len(entity.ReviewTitles)),
	}

	total := 0
	for _, b := range buckets {
		total += b.Count
	}
	if total == 0 {
		return summary, nil
	}

	index := make(map[string]int, len(entity.ReviewTitles))
	for i, title := range entity.ReviewTitles {
		index[title] = i
	}

	var avg float64
	for _, b := range buckets {
		share := float64(b.Count) / float64(total)
		summary.Rating[index[b.Title]] = 100 * share
		avg += b.AverageRate * share
	}

	summary.AvgRating = avg
	summary.TotalReviews = total
	return summary, nil
}
