package entity

import (
	"time"
)

type Coupon struct {
	ID            string    `json:"id" firestore:"id"`
	SellerID      string    `json:"seller_id" firestore:"sellerId"`
	Code          string    `json:"code" firestore:"code"`
	Discount      int       `json:"discount" firestore:"discount"`
	MaxUses       int       `json:"max_uses" firestore:"maxUses"`
	RemainingUses int       `json:"remaining_uses" firestore:"remainingUses"`
	NumberUses    int       `json:"number_uses" firestore:"numberUses"`
	ItemID        string    `json:"item_id" firestore:"itemId"`
	ExpiresAt     time.Time `json:"expires_at" firestore:"expiresAt"`
	CreatedAt     time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt     time.Time `json:"updated_at" firestore:"updatedAt"`
}

func (c *Coupon) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
