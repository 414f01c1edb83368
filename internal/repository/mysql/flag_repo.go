package mysql

import (
	"context"

	"Aurora_Admin/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FlagRepository struct {
	DB *gorm.DB
}

// Upsert 按 key 幂等写入
func (r *FlagRepository) Upsert(ctx context.Context, flag *model.FeatureFlag) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"enabled", "description", "updated_by", "updated_at"}),
	}).Create(flag).Error
}

func (r *FlagRepository) FindByKey(ctx context.Context, key string) (*model.FeatureFlag, error) {
	var flag model.FeatureFlag
	err := r.DB.WithContext(ctx).First(&flag, "`key` = ?", key).Error
	return &flag, err
}

func (r *FlagRepository) List(ctx context.Context) ([]model.FeatureFlag, error) {
	var list []model.FeatureFlag
	err := r.DB.WithContext(ctx).Order("`key` ASC").Find(&list).Error
	return list, err
}

// Delete 幂等删除，key 不存在也视为成功
func (r *FlagRepository) Delete(ctx context.Context, key string) error {
	return r.DB.WithContext(ctx).Delete(&model.FeatureFlag{}, "`key` = ?", key).Error
}
