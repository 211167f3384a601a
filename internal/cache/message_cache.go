package cache

import (
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/KOD666/study-group-plus/internal/models"
)

// FirstPageTTL bounds staleness of the hot first page between refreshes.
const FirstPageTTL = 30 * time.Second

// CachedPage is the default-shape first page of a group's chat plus the
// non-deleted total at the time it was cached.
type CachedPage struct {
	Messages []models.Message `msgpack:"messages"`
	Total    int64            `msgpack:"total"`
}

// MessageCache caches the first page of group chat, the one every refresh
// poll hits. All methods are nil-safe so the service runs without Redis.
type MessageCache struct {
	redis *RedisCache
}

func NewMessageCache(redis *RedisCache) *MessageCache {
	return &MessageCache{redis: redis}
}

func firstPageKey(groupID uint) string {
	return fmt.Sprintf("groupmsgs:%d", groupID)
}

func (mc *MessageCache) GetFirstPage(groupID uint) (*CachedPage, bool) {
	if mc == nil || mc.redis == nil {
		return nil, false
	}
	data, err := mc.redis.Get(firstPageKey(groupID))
	if err != nil || data == nil {
		return nil, false
	}
	var page CachedPage
	if err := msgpack.Unmarshal(data, &page); err != nil {
		return nil, false
	}
	return &page, true
}

func (mc *MessageCache) SetFirstPage(groupID uint, page *CachedPage) error {
	if mc == nil || mc.redis == nil {
		return nil
	}
	data, err := msgpack.Marshal(page)
	if err != nil {
		return err
	}
	return mc.redis.Set(firstPageKey(groupID), data, FirstPageTTL)
}

// Invalidate drops the cached page after any send or delete in the group.
func (mc *MessageCache) Invalidate(groupID uint) error {
	if mc == nil || mc.redis == nil {
		return nil
	}
	return mc.redis.Delete(firstPageKey(groupID))
}
