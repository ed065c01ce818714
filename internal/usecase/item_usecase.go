package usecase

import (
	"context"

	"soukly/internal/domain/entity"
	"soukly/internal/domain/repository"
	"soukly/pkg/errors"
	"soukly/pkg/utils"
)

type ItemUseCase struct {
	itemRepo repository.ItemRepository
}

func NewItemUseCase(itemRepo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{itemRepo: itemRepo}
}

type ItemInput struct {
	Title             string
	Description       string
	Category          string
	SubCategory       string
	Brand             string
	Price             float64
	Discount          float64
	AvailableQuantity int
	AllowQuantity     int
	AllowNegotiation  bool
	Location          string
}

// CreateItem lists a new item. Listings start unpublished until moderation
// approves them.
func (uc *ItemUseCase) CreateItem(ctx context.Context, sellerID string, input ItemInput) (*entity.Item, error) {
	if input.Price <= 0 {
		return nil, errors.BadRequest("Price must be positive", nil)
	}
	if input.Discount < 0 || input.Discount >= 100 {
		return nil, errors.BadRequest("Discount must be between 0 and 99", nil)
	}

	item := &entity.Item{
		SellerID:          sellerID,
		Title:             input.Title,
		Description:       input.Description,
		Category:          input.Category,
		SubCategory:       input.SubCategory,
		Brand:             input.Brand,
		Price:             input.Price,
		Discount:          input.Discount,
		AvailableQuantity: input.AvailableQuantity,
		AllowQuantity:     input.AllowQuantity,
		AllowNegotiation:  input.AllowNegotiation,
		Location:          input.Location,
		Status:            entity.ItemStatusUnderReview,
	}

	if err := uc.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (uc *ItemUseCase) GetItem(ctx context.Context, id string) (*entity.Item, error) {
	return uc.itemRepo.GetByID(ctx, id)
}

type ListItemsInput struct {
	SellerID string
	Category string
	Status   string
	MinPrice float64
	MaxPrice float64
	Page     int
	Limit    int
}

func (uc *ItemUseCase) ListItems(ctx context.Context, input ListItemsInput) ([]*entity.Item, int64, error) {
	p := utils.NewPaginationParams(input.Page, input.Limit)
	filter := repository.ItemFilter{
		SellerID: input.SellerID,
		Category: input.Category,
		Status:   input.Status,
		MinPrice: input.MinPrice,
		MaxPrice: input.MaxPrice,
	}
	return uc.itemRepo.List(ctx, filter, p.PageSize, p.Offset)
}

func (uc *ItemUseCase) UpdateItem(ctx context.Context, sellerID, itemID string, input ItemInput) (*entity.Item, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.SellerID != sellerID {
		return nil, errors.Forbidden("You can only edit your own items", nil)
	}

	if input.Title != "" {
		item.Title = input.Title
	}
	if input.Description != "" {
		item.Description = input.Description
	}
	if input.Category != "" {
		item.Category = input.Category
	}
	if input.SubCategory != "" {
		item.SubCategory = input.SubCategory
	}
	if input.Brand != "" {
		item.Brand = input.Brand
	}
	if input.Price > 0 {
		item.Price = input.Price
	}
	if input.Discount >= 0 && input.Discount < 100 {
		item.Discount = input.Discount
	}
	if input.AvailableQuantity >= 0 {
		item.AvailableQuantity = input.AvailableQuantity
	}
	if input.AllowQuantity > 0 {
		item.AllowQuantity = input.AllowQuantity
	}
	if input.Location != "" {
		item.Location = input.Location
	}
	item.AllowNegotiation = input.AllowNegotiation

	if err := uc.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (uc *ItemUseCase) DeleteItem(ctx context.Context, sellerID, itemID string) error {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item.SellerID != sellerID {
		return errors.Forbidden("You can only delete your own items", nil)
	}
	return uc.itemRepo.Delete(ctx, itemID)
}

// Moderate is the staff action that moves a listing between review states.
func (uc *ItemUseCase) Moderate(ctx context.Context, itemID, status string) (*entity.Item, error) {
	switch status {
	case entity.ItemStatusPublished, entity.ItemStatusSold, entity.ItemStatusReject, entity.ItemStatusUnderReview:
	default:
		return nil, errors.BadRequest("Invalid item status", nil)
	}

	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	item.Status = status
	if err := uc.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}
