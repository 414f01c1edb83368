package mysql

import (
	"context"

	"Aurora_Admin/internal/model"

	"gorm.io/gorm"
)

type BroadcastRepository struct {
	DB *gorm.DB
}

func (r *BroadcastRepository) Create(ctx context.Context, b *model.Broadcast) error {
	return r.DB.WithContext(ctx).Create(b).Error
}

func (r *BroadcastRepository) UpdateCounts(ctx context.Context, id uint64, sent, failed int) error {
	return r.DB.WithContext(ctx).Model(&model.Broadcast{}).Where("id = ?", id).
		Updates(map[string]any{"sent_count": sent, "failed_count": failed}).Error
}

func (r *BroadcastRepository) List(ctx context.Context, offset, limit int) ([]model.Broadcast, error) {
	var list []model.Broadcast
	err := r.DB.WithContext(ctx).Order("id DESC").Offset(offset).Limit(limit).Find(&list).Error
	return list, err
}
