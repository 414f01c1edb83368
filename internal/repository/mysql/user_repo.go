package mysql

import (
	"context"

	"Aurora_Admin/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func (r *UserRepository) FindByUID(ctx context.Context, uid string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).First(&user, "uid = ?", uid).Error
	return &user, err
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	return &user, err
}

// ListBatch 注册时间倒序的键集分页；after 为上一页最后一条，谓词和排序保持一致
func (r *UserRepository) ListBatch(ctx context.Context, after *model.User, limit int) ([]model.User, error) {
	q := r.DB.WithContext(ctx)
	if after != nil {
		q = q.Where("(created_at < ? OR (created_at = ? AND uid < ?))",
			after.CreatedAt, after.CreatedAt, after.UID)
	}
	var list []model.User
	err := q.Order("created_at DESC, uid DESC").Limit(limit).Find(&list).Error
	return list, err
}

func (r *UserRepository) SetSuspended(ctx context.Context, uid string, suspended bool) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&model.User{}).
		Where("uid = ?", uid).Update("is_suspended", suspended)
	return res.RowsAffected, res.Error
}

func (r *UserRepository) SetBanned(ctx context.Context, uid string, banned bool) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&model.User{}).
		Where("uid = ?", uid).Update("is_banned", banned)
	return res.RowsAffected, res.Error
}

// IncrementWarnings 警告计数自增，返回影响行数用于判断用户是否存在
func (r *UserRepository) IncrementWarnings(ctx context.Context, uid string) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&model.User{}).
		Where("uid = ?", uid).
		UpdateColumn("warning_count", gorm.Expr("warning_count + 1"))
	return res.RowsAffected, res.Error
}

// AdjustCredits 额度调整，下限钳在 0，防止并发扣减出现负数
func (r *UserRepository) AdjustCredits(ctx context.Context, uid string, delta int64) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&model.User{}).
		Where("uid = ?", uid).
		UpdateColumn("credit_balance", gorm.Expr("GREATEST(0, credit_balance + ?)", delta))
	return res.RowsAffected, res.Error
}

// ListEmails 群发收件人；activeOnly 时排除封禁和停用账号
func (r *UserRepository) ListEmails(ctx context.Context, activeOnly bool) ([]string, error) {
	q := r.DB.WithContext(ctx).Model(&model.User{})
	if activeOnly {
		q = q.Where("is_banned = 0 AND is_suspended = 0")
	}
	var emails []string
	err := q.Order("uid ASC").Pluck("email", &emails).Error
	return emails, err
}

type AdminRepository struct {
	DB *gorm.DB
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*model.Admin, error) {
	var admin model.Admin
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&admin).Error
	return &admin, err
}

func (r *AdminRepository) FindByID(ctx context.Context, id uint64) (*model.Admin, error) {
	var admin model.Admin
	err := r.DB.WithContext(ctx).First(&admin, id).Error
	return &admin, err
}
