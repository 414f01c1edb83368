package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	BlockedIPSetKey     = "blocklist:ips"
	BlockedDeviceSetKey = "blocklist:devices"
	BlocklistTTL        = 24 * time.Hour
)

// BlocklistCacheRepository 拉黑名单的集合缓存，网关侧按成员判断放行。
// 集合不存在时视为未预热，由读侧回源重建。
type BlocklistCacheRepository struct {
	RDB *redis.Client
}

func (r *BlocklistCacheRepository) AddIP(ctx context.Context, ip string) error {
	if err := r.RDB.SAdd(ctx, BlockedIPSetKey, ip).Err(); err != nil {
		return err
	}
	return r.RDB.Expire(ctx, BlockedIPSetKey, BlocklistTTL).Err()
}

func (r *BlocklistCacheRepository) RemoveIP(ctx context.Context, ip string) error {
	return r.RDB.SRem(ctx, BlockedIPSetKey, ip).Err()
}

// IsIPBlockedCached 第二个返回值表示集合是否存在（未预热时不能当没拉黑用）
func (r *BlocklistCacheRepository) IsIPBlockedCached(ctx context.Context, ip string) (bool, bool, error) {
	exists, err := r.RDB.Exists(ctx, BlockedIPSetKey).Result()
	if err != nil {
		return false, false, err
	}
	if exists == 0 {
		return false, false, nil
	}
	b, err := r.RDB.SIsMember(ctx, BlockedIPSetKey, ip).Result()
	return b, true, err
}

// WarmIPs 整组重建集合
func (r *BlocklistCacheRepository) WarmIPs(ctx context.Context, ips []string) error {
	pipe := r.RDB.TxPipeline()
	pipe.Del(ctx, BlockedIPSetKey)
	if len(ips) > 0 {
		members := make([]any, 0, len(ips))
		for _, ip := range ips {
			members = append(members, ip)
		}
		pipe.SAdd(ctx, BlockedIPSetKey, members...)
		pipe.Expire(ctx, BlockedIPSetKey, BlocklistTTL)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (r *BlocklistCacheRepository) AddDevice(ctx context.Context, deviceID string) error {
	if err := r.RDB.SAdd(ctx, BlockedDeviceSetKey, deviceID).Err(); err != nil {
		return err
	}
	return r.RDB.Expire(ctx, BlockedDeviceSetKey, BlocklistTTL).Err()
}

func (r *BlocklistCacheRepository) RemoveDevice(ctx context.Context, deviceID string) error {
	return r.RDB.SRem(ctx, BlockedDeviceSetKey, deviceID).Err()
}

func (r *BlocklistCacheRepository) IsDeviceBlockedCached(ctx context.Context, deviceID string) (bool, bool, error) {
	exists, err := r.RDB.Exists(ctx, BlockedDeviceSetKey).Result()
	if err != nil {
		return false, false, err
	}
	if exists == 0 {
		return false, false, nil
	}
	b, err := r.RDB.SIsMember(ctx, BlockedDeviceSetKey, deviceID).Result()
	return b, true, err
}

func (r *BlocklistCacheRepository) WarmDevices(ctx context.Context, deviceIDs []string) error {
	pipe := r.RDB.TxPipeline()
	pipe.Del(ctx, BlockedDeviceSetKey)
	if len(deviceIDs) > 0 {
		members := make([]any, 0, len(deviceIDs))
		for _, id := range deviceIDs {
			members = append(members, id)
		}
		pipe.SAdd(ctx, BlockedDeviceSetKey, members...)
		pipe.Expire(ctx, BlockedDeviceSetKey, BlocklistTTL)
	}
	_, err := pipe.Exec(ctx)
	return err
}
