package mysql

import (
	"context"

	"Aurora_Admin/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BlocklistRepository struct {
	DB *gorm.DB
}

// AddIP 幂等插入：已拉黑的 IP 再次添加不报错
func (r *BlocklistRepository) AddIP(ctx context.Context, row *model.BlockedIP) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ip"}},
		DoNothing: true,
	}).Create(row).Error
}

// RemoveIP 幂等删除，不存在也返回成功
func (r *BlocklistRepository) RemoveIP(ctx context.Context, ip string) error {
	return r.DB.WithContext(ctx).Delete(&model.BlockedIP{}, "ip = ?", ip).Error
}

func (r *BlocklistRepository) ListIPs(ctx context.Context) ([]model.BlockedIP, error) {
	var list []model.BlockedIP
	err := r.DB.WithContext(ctx).Order("id DESC").Find(&list).Error
	return list, err
}

func (r *BlocklistRepository) AddDevice(ctx context.Context, row *model.BlockedDevice) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "device_id"}},
		DoNothing: true,
	}).Create(row).Error
}

func (r *BlocklistRepository) RemoveDevice(ctx context.Context, deviceID string) error {
	return r.DB.WithContext(ctx).Delete(&model.BlockedDevice{}, "device_id = ?", deviceID).Error
}

func (r *BlocklistRepository) ListDevices(ctx context.Context) ([]model.BlockedDevice, error) {
	var list []model.BlockedDevice
	err := r.DB.WithContext(ctx).Order("id DESC").Find(&list).Error
	return list, err
}
