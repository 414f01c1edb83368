package service

import (
	"context"
	"errors"

	"Aurora_Admin/internal/model"
	"Aurora_Admin/internal/repository/mysql"
	rds "Aurora_Admin/internal/repository/redis"

	"gorm.io/gorm"
)

type flagStore interface {
	Upsert(ctx context.Context, flag *model.FeatureFlag) error
	FindByKey(ctx context.Context, key string) (*model.FeatureFlag, error)
	List(ctx context.Context) ([]model.FeatureFlag, error)
	Delete(ctx context.Context, key string) error
}

type flagCache interface {
	GetFlagCached(ctx context.Context, key string) (bool, bool, error)
	SetFlag(ctx context.Context, key string, enabled bool) error
	DeleteFlag(ctx context.Context, key string) error
}

type FlagService struct {
	repo  flagStore
	cache flagCache
	audit auditRecorder
}

func NewFlagService(repo *mysql.FlagRepository, cache *rds.FlagCacheRepository, audit *AuditService) *FlagService {
	return &FlagService{repo: repo, cache: cache, audit: audit}
}

func (s *FlagService) List(ctx context.Context) ([]model.FeatureFlag, error) {
	return s.repo.List(ctx)
}

// Upsert 先写库，缓存删 key 让读侧回填；删失败忽略，TTL 兜底
func (s *FlagService) Upsert(ctx context.Context, adminEmail, key string, enabled bool, description string) error {
	if key == "" {
		return ErrInvalidParams
	}
	flag := &model.FeatureFlag{
		Key:         key,
		Enabled:     enabled,
		Description: description,
		UpdatedBy:   adminEmail,
	}
	if err := s.repo.Upsert(ctx, flag); err != nil {
		return err
	}
	_ = s.cache.DeleteFlag(ctx, key)

	s.audit.Record(ctx, adminEmail, "flag.upsert", "", map[string]any{
		"key":     key,
		"enabled": enabled,
	})
	return nil
}

func (s *FlagService) Delete(ctx context.Context, adminEmail, key string) error {
	if err := s.repo.Delete(ctx, key); err != nil {
		return err
	}
	_ = s.cache.DeleteFlag(ctx, key)

	s.audit.Record(ctx, adminEmail, "flag.delete", "", map[string]any{"key": key})
	return nil
}

// IsEnabled 缓存优先，miss 回源并回填；未知 key 视为关闭
func (s *FlagService) IsEnabled(ctx context.Context, key string) (bool, error) {
	if enabled, ok, err := s.cache.GetFlagCached(ctx, key); err == nil && ok {
		return enabled, nil
	}

	flag, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	_ = s.cache.SetFlag(ctx, key, flag.Enabled)
	return flag.Enabled, nil
}
