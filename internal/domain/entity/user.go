package entity

import (
	"time"
)

const (
	RoleUser       = "USER"
	RoleAdmin      = "ADMIN"
	RoleManager    = "MANAGER"
	RoleCallCenter = "CALL_CENTER"
)

// RatingSummary is the denormalized review aggregate kept on users (seller-wide)
// and items. Rating holds the percentage share of each qualitative bucket, from
// "bad" at index 0 to "excellent" at index 4.
type RatingSummary struct {
	AvgRating    float64   `json:"avg_rating" firestore:"avgRating"`
	Rating       []float64 `json:"rating" firestore:"rating"`
	TotalReviews int       `json:"total_reviews" firestore:"totalReviews"`
}

type User struct {
	ID           string `json:"id" firestore:"id"`
	Name         string `json:"name" firestore:"name"`
	Email        string `json:"email" firestore:"email"`
	Mobile       string `json:"mobile" firestore:"mobile"`
	PasswordHash string `json:"-" firestore:"passwordHash"`
	Role         string `json:"role" firestore:"role"`

	Gender       string `json:"gender,omitempty" firestore:"gender,omitempty"`
	Description  string `json:"description,omitempty" firestore:"description,omitempty"`
	CoverImage   string `json:"cover_image,omitempty" firestore:"coverImage,omitempty"`
	ProfileImage string `json:"profile_image,omitempty" firestore:"profileImage,omitempty"`
	Business     bool   `json:"business" firestore:"business"`

	Active        bool      `json:"active" firestore:"active"`
	LastSeen      time.Time `json:"last_seen" firestore:"lastSeen"`
	DateOfJoining time.Time `json:"date_of_joining" firestore:"dateOfJoining"`

	Followers int           `json:"followers" firestore:"followers"`
	Following int           `json:"following" firestore:"following"`
	Rate      RatingSummary `json:"rate" firestore:"rate"`

	FcmTokens        []string   `json:"-" firestore:"fcmTokens"`
	TwoFactorSecret  string     `json:"-" firestore:"twoFactorSecret,omitempty"`
	IsTwoFactorAuth  bool       `json:"is_two_factor_auth" firestore:"isTwoFactorAuth"`
	FailedLoginCount int        `json:"-" firestore:"failedLoginCount"`
	LastFailedLogin  *time.Time `json:"-" firestore:"lastFailedLogin,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
