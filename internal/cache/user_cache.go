package cache

import (
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/KOD666/study-group-plus/internal/models"
)

const UserSnapshotTTL = 2 * time.Minute

// UserCache caches resolved user identities (id/name/email), saving a user
// lookup per message send. Nil-safe like the other caches.
type UserCache struct {
	redis *RedisCache
}

func NewUserCache(redis *RedisCache) *UserCache {
	return &UserCache{redis: redis}
}

func userKey(userID uint) string {
	return fmt.Sprintf("user:%d", userID)
}

func (uc *UserCache) Get(userID uint) (*models.UserResponse, bool) {
	if uc == nil || uc.redis == nil {
		return nil, false
	}
	data, err := uc.redis.Get(userKey(userID))
	if err != nil || data == nil {
		return nil, false
	}
	var user models.UserResponse
	if err := msgpack.Unmarshal(data, &user); err != nil {
		return nil, false
	}
	return &user, true
}

func (uc *UserCache) Set(user models.UserResponse) error {
	if uc == nil || uc.redis == nil {
		return nil
	}
	data, err := msgpack.Marshal(user)
	if err != nil {
		return err
	}
	return uc.redis.Set(userKey(user.ID), data, UserSnapshotTTL)
}
