package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	FlagKeyPrefix = "flag:enabled" // 功能开关热缓存
	FlagTTL       = 10 * time.Minute
)

// FlagCacheRepository 功能开关缓存：读多写少，写库后删 key，读侧回填
type FlagCacheRepository struct {
	RDB *redis.Client
}

func (r *FlagCacheRepository) flagKey(key string) string {
	return fmt.Sprintf("%s:%s", FlagKeyPrefix, key)
}

// GetFlagCached 第二个返回值表示是否命中
func (r *FlagCacheRepository) GetFlagCached(ctx context.Context, key string) (bool, bool, error) {
	val, err := r.RDB.Get(ctx, r.flagKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	return val == "1", true, nil
}

func (r *FlagCacheRepository) SetFlag(ctx context.Context, key string, enabled bool) error {
	val := "0"
	if enabled {
		val = "1"
	}
	return r.RDB.Set(ctx, r.flagKey(key), val, FlagTTL).Err()
}

func (r *FlagCacheRepository) DeleteFlag(ctx context.Context, key string) error {
	return r.RDB.Del(ctx, r.flagKey(key)).Err()
}
