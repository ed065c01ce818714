package entity

import (
	"time"
)

const (
	ItemStatusUnderReview = "UNDER_REVIEW"
	ItemStatusPublished   = "PUBLISHED"
	ItemStatusSold        = "SOLD"
	ItemStatusReject      = "REJECT"
)

type Item struct {
	ID          string `json:"id" firestore:"id"`
	SellerID    string `json:"seller_id" firestore:"sellerId"`
	Title       string `json:"title" firestore:"title"`
	Description string `json:"description" firestore:"description"`

	Category    string `json:"category" firestore:"category"`
	SubCategory string `json:"sub_category" firestore:"subCategory"`
	Brand       string `json:"brand,omitempty" firestore:"brand,omitempty"`

	Price             float64 `json:"price" firestore:"price"`
	Discount          float64 `json:"discount" firestore:"discount"`
	AvailableQuantity int     `json:"available_quantity" firestore:"availableQuantity"`
	AllowQuantity     int     `json:"allow_quantity" firestore:"allowQuantity"`
	AllowNegotiation  bool    `json:"allow_negotiation" firestore:"allowNegotiation"`
	Location          string  `json:"location" firestore:"location"`

	Status string        `json:"status" firestore:"status"`
	Rate   RatingSummary `json:"rate" firestore:"rate"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
