package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrTokenNotFound    = errors.New("token not found")
	ErrRedisUnavailable = errors.New("redis unavailable")
	ErrExtendFailed     = errors.New("token extend failed")
	ErrTokenDeleted     = errors.New("token delete failed")
)

const (
	AdminTokenPrefix = "login:admin:token"
	AdminTokenExpire = 60 * 30
)

// AdminSessionRepository 后台登录态：每个管理员只保留一个有效 access token
type AdminSessionRepository struct {
	RDB *redis.Client
}

func (r *AdminSessionRepository) AddAdminToken(ctx context.Context, adminID uint64, token string) error {
	key := fmt.Sprintf("%s:%d", AdminTokenPrefix, adminID)
	if err := r.RDB.Set(ctx, key, token, time.Second*AdminTokenExpire).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

func (r *AdminSessionRepository) GetAdminToken(ctx context.Context, adminID uint64) (string, error) {
	key := fmt.Sprintf("%s:%d", AdminTokenPrefix, adminID)
	token, err := r.RDB.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", ErrRedisUnavailable
	}
	return token, nil
}

// ExtendAdminToken 校验通过后顺延过期时间
func (r *AdminSessionRepository) ExtendAdminToken(ctx context.Context, adminID uint64) error {
	key := fmt.Sprintf("%s:%d", AdminTokenPrefix, adminID)
	if _, err := r.RDB.Expire(ctx, key, time.Second*AdminTokenExpire).Result(); err != nil {
		return ErrExtendFailed
	}
	return nil
}

func (r *AdminSessionRepository) DeleteAdminToken(ctx context.Context, adminID uint64) error {
	key := fmt.Sprintf("%s:%d", AdminTokenPrefix, adminID)
	if err := r.RDB.Del(ctx, key).Err(); err != nil {
		return ErrTokenDeleted
	}
	return nil
}
