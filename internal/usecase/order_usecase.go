package usecase

import (
	"context"

	"soukly/internal/domain/entity"
	"soukly/internal/domain/repository"
	"soukly/pkg/errors"
	"soukly/pkg/utils"
)

const (
	maxOrderQuantity = 10
	defaultCurrency  = "EGP"

	// secretCodeAttempts bounds the collision-retry loop when generating a
	// pickup code.
	secretCodeAttempts = 10
)

// statusTransitions is the forward-only order lifecycle. Cancellation is only
// possible before shipment.
var statusTransitions = map[string][]string{
	entity.OrderStatusPending:    {entity.OrderStatusProcessing, entity.OrderStatusCancelled},
	entity.OrderStatusProcessing: {entity.OrderStatusShipped, entity.OrderStatusCancelled},
	entity.OrderStatusShipped:    {entity.OrderStatusDelivered},
}

type OrderUseCase struct {
	orderRepo  repository.OrderRepository
	itemRepo   repository.ItemRepository
	courierFee float64
}

func NewOrderUseCase(orderRepo repository.OrderRepository, itemRepo repository.ItemRepository, courierFee float64) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:  orderRepo,
		itemRepo:   itemRepo,
		courierFee: courierFee,
	}
}

type PlaceOrderInput struct {
	ItemID       string
	PaymentID    string
	Quantity     int
	Currency     string
	BuyerAddress string
}

// PlaceOrder snapshots the item's current price and discount into a new order.
// The secret pickup code is unique across all orders.
func (uc *OrderUseCase) PlaceOrder(ctx context.Context, buyerID string, input PlaceOrderInput) (*entity.Order, error) {
	item, err := uc.itemRepo.GetByID(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}

	if item.SellerID == buyerID {
		return nil, errors.Rejection("You cannot order your own item")
	}
	if item.AvailableQuantity == 0 {
		return nil, errors.Rejection("Item is out of stock")
	}
	if input.Quantity < 1 || input.Quantity > maxOrderQuantity {
		return nil, errors.BadRequest("Quantity must be between 1 and 10", nil)
	}
	if input.Quantity > item.AllowQuantity {
		return nil, errors.Rejection("Quantity exceeds the allowed amount for this item")
	}

	exists, err := uc.orderRepo.HasActiveOrder(ctx, buyerID, input.ItemID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.Rejection("You already have an active order for this item")
	}

	code, err := uc.uniqueSecretCode(ctx)
	if err != nil {
		return nil, err
	}

	discountType := entity.DiscountTypeNone
	if item.Discount > 0 {
		discountType = entity.DiscountTypeGlobal
	}

	currency := input.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	order := &entity.Order{
		BuyerID:       buyerID,
		SellerID:      item.SellerID,
		ItemID:        item.ID,
		PaymentID:     input.PaymentID,
		BuyerAddress:  input.BuyerAddress,
		SellerAddress: item.Location,
		Status:        entity.OrderStatusPending,
		DiscountType:  discountType,
		Quantity:      input.Quantity,
		Currency:      currency,
		PriceUnit:     item.Price,
		Discount:      item.Discount,
		CourierFee:    uc.courierFee,
		SecretCode:    code,
	}
	order.TotalPrice = order.TotalWith(order.Discount)

	if err := uc.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (uc *OrderUseCase) uniqueSecretCode(ctx context.Context) (string, error) {
	for i := 0; i < secretCodeAttempts; i++ {
		code := utils.GenerateSecretCode()
		exists, err := uc.orderRepo.CodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", errors.Internal("Failed to generate a unique pickup code", nil)
}

func (uc *OrderUseCase) GetOrder(ctx context.Context, buyerID, orderID string) (*entity.Order, error) {
	return uc.orderRepo.GetByIDForBuyer(ctx, orderID, buyerID)
}

func (uc *OrderUseCase) ListOrders(ctx context.Context, buyerID string, page, limit int) ([]*entity.Order, int64, error) {
	p := utils.NewPaginationParams(page, limit)
	return uc.orderRepo.ListByBuyer(ctx, buyerID, p.PageSize, p.Offset)
}

func (uc *OrderUseCase) CountOrders(ctx context.Context, sellerID string) (int64, error) {
	return uc.orderRepo.CountBySeller(ctx, sellerID)
}

type UpdateOrderInput struct {
	Quantity     int
	BuyerAddress string
}

// UpdateOrder lets the buyer change quantity or address while the order is
// still pending. The total is recomputed from the item's current price.
func (uc *OrderUseCase) UpdateOrder(ctx context.Context, buyerID, orderID string, input UpdateOrderInput) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByIDForBuyer(ctx, orderID, buyerID)
	if err != nil {
		return nil, err
	}
	if order.Status != entity.OrderStatusPending {
		return nil, errors.Rejection("Only pending orders can be modified")
	}

	item, err := uc.itemRepo.GetByID(ctx, order.ItemID)
	if err != nil {
		return nil, err
	}

	if input.Quantity > 0 {
		if input.Quantity > maxOrderQuantity {
			return nil, errors.BadRequest("Quantity must be between 1 and 10", nil)
		}
		if input.Quantity > item.AllowQuantity {
			return nil, errors.Rejection("Quantity exceeds the allowed amount for this item")
		}
		order.Quantity = input.Quantity
	}
	if input.BuyerAddress != "" {
		order.BuyerAddress = input.BuyerAddress
	}

	order.PriceUnit = item.Price
	order.Discount = item.Discount
	if item.Discount > 0 {
		order.DiscountType = entity.DiscountTypeGlobal
	} else {
		order.DiscountType = entity.DiscountTypeNone
	}
	order.TotalPrice = order.TotalWith(order.Discount)

	if err := uc.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateStatus moves the order along the lifecycle. Backward moves and jumps
// are rejected.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, orderID, newStatus string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, s := range statusTransitions[order.Status] {
		if s == newStatus {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, errors.BadRequest("Invalid status transition from "+order.Status+" to "+newStatus, nil)
	}

	order.Status = newStatus
	if err := uc.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// DeleteOrder removes a pending order owned by the buyer.
func (uc *OrderUseCase) DeleteOrder(ctx context.Context, buyerID, orderID string) error {
	order, err := uc.orderRepo.GetByIDForBuyer(ctx, orderID, buyerID)
	if err != nil {
		return err
	}
	if order.Status != entity.OrderStatusPending {
		return errors.Rejection("Only pending orders can be deleted")
	}

	deleted, err := uc.orderRepo.Delete(ctx, orderID, buyerID)
	if err != nil {
		return err
	}
	if !deleted {
		return errors.NotFound("Order", nil)
	}
	return nil
}

// VerifySecretCode lets the seller confirm the pickup code on handover. A
// matching code marks it consumed and the order delivered.
func (uc *OrderUseCase) VerifySecretCode(ctx context.Context, sellerID, orderID, code string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.SellerID != sellerID {
		return nil, errors.Forbidden("Only the seller can verify the pickup code", nil)
	}
	if order.IsValidSecret {
		return nil, errors.Rejection("Pickup code already verified")
	}
	if order.SecretCode != code {
		return nil, errors.Rejection("Invalid pickup code")
	}

	order.IsValidSecret = true
	order.Status = entity.OrderStatusDelivered
	if err := uc.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}
