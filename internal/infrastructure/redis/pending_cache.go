package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"soukly/internal/domain/entity"
)

// PendingTTL is how long a provisional registration survives without email
// verification.
const PendingTTL = time.Hour

// ErrNotCached is returned when no provisional record exists for the uid.
var ErrNotCached = errors.New("pending registration not found")

// PendingRegistrationCache holds not-yet-verified user records keyed by the
// identity-provider UID, auto-expiring after PendingTTL.
type PendingRegistrationCache struct {
	client *redis.Client
}

func NewPendingRegistrationCache(client *redis.Client) *PendingRegistrationCache {
	return &PendingRegistrationCache{client: client}
}

func key(uid string) string {
	return "userId:" + uid
}

func (c *PendingRegistrationCache) Set(ctx context.Context, user *entity.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return c.client.SetEx(ctx, key(user.ID), payload, PendingTTL).Err()
}

func (c *PendingRegistrationCache) Get(ctx context.Context, uid string) (*entity.User, error) {
	payload, err := c.client.Get(ctx, key(uid)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotCached
		}
		return nil, err
	}

	var user entity.User
	if err := json.Unmarshal(payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *PendingRegistrationCache) Delete(ctx context.Context, uid string) error {
	return c.client.Del(ctx, key(uid)).Err()
}
