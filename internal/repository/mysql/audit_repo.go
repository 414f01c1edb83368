package mysql

import (
	"context"

	"Aurora_Admin/internal/model"

	"gorm.io/gorm"
)

type AuditRepository struct {
	DB *gorm.DB
}

func (r *AuditRepository) Append(ctx context.Context, entry *model.AuditLog) error {
	return r.DB.WithContext(ctx).Create(entry).Error
}

// List 游标分页：cursor=0 为第一页，返回下一页游标（0 表示没有更多）
func (r *AuditRepository) List(ctx context.Context, cursor uint64, limit int) ([]model.AuditLog, uint64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	q := r.DB.WithContext(ctx).Model(&model.AuditLog{})
	if cursor > 0 {
		q = q.Where("id < ?", cursor)
	}
	var rows []model.AuditLog
	// limit+1 多拉一条用来判断是否还有下一页
	if err := q.Order("id DESC").Limit(limit + 1).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	var next uint64
	if len(rows) > limit {
		rows = rows[:limit]
		next = rows[limit-1].ID
	}
	return rows, next, nil
}

// ListPending 待投递的审计事件，给 relayer 用
func (r *AuditRepository) ListPending(ctx context.Context, batchSize int) ([]model.AuditLog, error) {
	var list []model.AuditLog
	if err := r.DB.WithContext(ctx).
		Where("status = 0").
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *AuditRepository) MarkSent(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.AuditLog{}).Where("id = ?", id).
		Update("status", 1).Error
}

func (r *AuditRepository) MarkFailed(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.AuditLog{}).Where("id = ?", id).
		Updates(map[string]any{"status": 2, "retry": gorm.Expr("retry + 1")}).Error
}
