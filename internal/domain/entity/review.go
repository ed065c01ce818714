package entity

import (
	"time"
)

// ReviewTitles is the fixed qualitative scale, ordered worst to best. The
// index of a title is its bucket in RatingSummary.Rating.
var ReviewTitles = []string{"bad", "average", "good", "very good", "excellent"}

func ValidReviewTitle(title string) bool {
	for _, t := range ReviewTitles {
		if t == title {
			return true
		}
	}
	return false
}

type Review struct {
	ID          string    `json:"id" firestore:"id"`
	BuyerID     string    `json:"buyer_id" firestore:"buyerId"`
	SellerID    string    `json:"seller_id" firestore:"sellerId"`
	ItemID      string    `json:"item_id" firestore:"itemId"`
	Rate        float64   `json:"rate" firestore:"rate"`
	Title       string    `json:"title" firestore:"title"`
	Description string    `json:"description" firestore:"description"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updated_at" firestore:"updatedAt"`
}
