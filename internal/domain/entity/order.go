package entity

import (
	"math"
	"time"
)

const (
	OrderStatusPending    = "PENDING"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusShipped    = "SHIPPED"
	OrderStatusDelivered  = "DELIVERED"
	OrderStatusCancelled  = "CANCELLED"
)

const (
	DiscountTypeNone   = "no_discount"
	DiscountTypeCoupon = "coupon_discount"
	DiscountTypeGlobal = "global_discount"
)

// Order snapshots the item's price and discount at purchase time: later item
// price changes never alter an existing order.
type Order struct {
	ID        string `json:"id" firestore:"id"`
	BuyerID   string `json:"buyer_id" firestore:"buyerId"`
	SellerID  string `json:"seller_id" firestore:"sellerId"`
	ItemID    string `json:"item_id" firestore:"itemId"`
	PaymentID string `json:"payment_id" firestore:"paymentId"`

	BuyerAddress  string `json:"buyer_address" firestore:"buyerAddress"`
	SellerAddress string `json:"seller_address" firestore:"sellerAddress"`

	Status       string  `json:"status" firestore:"status"`
	DiscountType string  `json:"discount_type" firestore:"discountType"`
	Quantity     int     `json:"quantity" firestore:"quantity"`
	Currency     string  `json:"currency" firestore:"currency"`
	PriceUnit    float64 `json:"price_unit" firestore:"priceUnit"`
	Discount     float64 `json:"discount" firestore:"discount"`
	CourierFee   float64 `json:"courier_fee" firestore:"courierFee"`
	TotalPrice   float64 `json:"total_price" firestore:"totalPrice"`

	SecretCode    string `json:"secret_code,omitempty" firestore:"secretCode"`
	IsValidSecret bool   `json:"is_valid_secret_code" firestore:"isValidSecretCode"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// Active reports whether the order still occupies the (buyer, item) slot.
func (o *Order) Active() bool {
	return o.Status != OrderStatusCancelled
}

// TotalWith applies a percentage discount to goods plus courier fee, rounded
// to cents.
func (o *Order) TotalWith(discount float64) float64 {
	total := (o.PriceUnit*float64(o.Quantity) + o.CourierFee) * (1 - discount/100)
	return math.Round(total*100) / 100
}
