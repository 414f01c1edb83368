package service

import (
	"context"
	"errors"

	"Aurora_Admin/internal/model"
	"Aurora_Admin/internal/repository/mysql"

	"gorm.io/gorm"
)

type userStore interface {
	FindByUID(ctx context.Context, uid string) (*model.User, error)
	ListBatch(ctx context.Context, after *model.User, limit int) ([]model.User, error)
	SetSuspended(ctx context.Context, uid string, suspended bool) (int64, error)
	SetBanned(ctx context.Context, uid string, banned bool) (int64, error)
	IncrementWarnings(ctx context.Context, uid string) (int64, error)
	AdjustCredits(ctx context.Context, uid string, delta int64) (int64, error)
}

type UserService struct {
	repo  userStore
	audit auditRecorder
}

func NewUserService(repo *mysql.UserRepository, audit *AuditService) *UserService {
	return &UserService{repo: repo, audit: audit}
}

func (s *UserService) GetUser(ctx context.Context, uid string) (*model.User, error) {
	user, err := s.repo.FindByUID(ctx, uid)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return user, err
}

// ListUsers 注册时间倒序的游标分页。cursor 是上一页最后一条的 uid，
// 查不到记录按流起点处理；返回的 nextCursor 为空表示没有更多。
func (s *UserService) ListUsers(ctx context.Context, cursor string, limit int) ([]model.User, string, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var after *model.User
	if cursor != "" {
		row, err := s.repo.FindByUID(ctx, cursor)
		if err == nil {
			after = row
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", err
		}
	}

	// limit+1 多拉一条判断是否还有下一页
	list, err := s.repo.ListBatch(ctx, after, limit+1)
	if err != nil {
		return nil, "", err
	}
	var next string
	if len(list) > limit {
		list = list[:limit]
		next = list[limit-1].UID
	}
	return list, next, nil
}

func (s *UserService) SetSuspended(ctx context.Context, adminEmail, uid string, suspended bool, reason string) error {
	affected, err := s.repo.SetSuspended(ctx, uid, suspended)
	if err != nil {
		return err
	}
	if affected == 0 {
		// 注意：值没变时 MySQL 也报 0 行，这里再确认用户是否存在
		if _, err := s.repo.FindByUID(ctx, uid); err != nil {
			return ErrNotFound
		}
	}
	action := "user.suspend"
	if !suspended {
		action = "user.unsuspend"
	}
	s.audit.Record(ctx, adminEmail, action, uid, map[string]any{"reason": reason})
	return nil
}

func (s *UserService) SetBanned(ctx context.Context, adminEmail, uid string, banned bool, reason string) error {
	affected, err := s.repo.SetBanned(ctx, uid, banned)
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, err := s.repo.FindByUID(ctx, uid); err != nil {
			return ErrNotFound
		}
	}
	action := "user.ban"
	if !banned {
		action = "user.unban"
	}
	s.audit.Record(ctx, adminEmail, action, uid, map[string]any{"reason": reason})
	return nil
}

// Warn 警告一次，返回最新的警告计数
func (s *UserService) Warn(ctx context.Context, adminEmail, uid, reason string) (int, error) {
	affected, err := s.repo.IncrementWarnings(ctx, uid)
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return 0, ErrNotFound
	}
	user, err := s.repo.FindByUID(ctx, uid)
	if err != nil {
		return 0, err
	}
	s.audit.Record(ctx, adminEmail, "user.warn", uid, map[string]any{
		"reason":       reason,
		"warningCount": user.WarningCount,
	})
	return user.WarningCount, nil
}

// AdjustCredits 正负额度调整，返回调整后的余额
func (s *UserService) AdjustCredits(ctx context.Context, adminEmail, uid string, delta int64, reason string) (int64, error) {
	before, err := s.repo.FindByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}

	if _, err := s.repo.AdjustCredits(ctx, uid, delta); err != nil {
		return 0, err
	}
	after, err := s.repo.FindByUID(ctx, uid)
	if err != nil {
		return 0, err
	}

	s.audit.Record(ctx, adminEmail, "user.credits", uid, map[string]any{
		"delta":  delta,
		"before": before.CreditBalance,
		"after":  after.CreditBalance,
		"reason": reason,
	})
	return after.CreditBalance, nil
}
