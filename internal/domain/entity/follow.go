package entity

import (
	"time"
)

type Follow struct {
	ID            string    `json:"id" firestore:"id"`
	FollowerID    string    `json:"follower_id" firestore:"followerId"`
	FollowingID   string    `json:"following_id" firestore:"followingId"`
	FollowingName string    `json:"following_name" firestore:"followingName"`
	CreatedAt     time.Time `json:"created_at" firestore:"createdAt"`
}
