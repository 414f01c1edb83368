package mysql

import (
	"context"

	"Aurora_Admin/internal/model"

	"gorm.io/gorm"
)

type GenerationRepository struct {
	DB *gorm.DB
}

func (r *GenerationRepository) FindByID(ctx context.Context, id string) (*model.Generation, error) {
	var g model.Generation
	err := r.DB.WithContext(ctx).First(&g, "id = ?", id).Error
	return &g, err
}

// ListBatch 按创建时间倒序拉一批，锚点之后严格继续。
// 排序和游标谓词必须一致，否则分页会跳项或重复。
func (r *GenerationRepository) ListBatch(ctx context.Context, after *model.ListAnchor, batch int) ([]model.Generation, error) {
	q := r.DB.WithContext(ctx).Where("is_deleted = 0")
	if after != nil {
		q = q.Where("(created_at < ? OR (created_at = ? AND id < ?))",
			after.CreatedAt, after.CreatedAt, after.ID)
	}
	var list []model.Generation
	err := q.Order("created_at DESC, id DESC").Limit(batch).Find(&list).Error
	return list, err
}

// ListFeedBatch 精选流批量拉取：只取公开、未删除、评分达标的记录。
// recent=false 按评分倒序（同分再按时间、id），recent=true 按时间倒序。
func (r *GenerationRepository) ListFeedBatch(ctx context.Context, after *model.ListAnchor, minScore float64, recent bool, batch int) ([]model.Generation, error) {
	q := r.DB.WithContext(ctx).
		Where("is_deleted = 0 AND is_public = 1 AND score IS NOT NULL AND score >= ?", minScore)

	if recent {
		if after != nil {
			q = q.Where("(created_at < ? OR (created_at = ? AND id < ?))",
				after.CreatedAt, after.CreatedAt, after.ID)
		}
		q = q.Order("created_at DESC, id DESC")
	} else {
		if after != nil && after.Score != nil {
			q = q.Where("(score < ? OR (score = ? AND (created_at < ? OR (created_at = ? AND id < ?))))",
				*after.Score, *after.Score, after.CreatedAt, after.CreatedAt, after.ID)
		}
		q = q.Order("score DESC, created_at DESC, id DESC")
	}

	var list []model.Generation
	err := q.Limit(batch).Find(&list).Error
	return list, err
}

// UpdateScore score=nil 表示撤分，列置 NULL；文档列整体覆盖为调用方改好的字节
func (r *GenerationRepository) UpdateScore(ctx context.Context, id string, score *float64, doc []byte) error {
	res := r.DB.WithContext(ctx).Model(&model.Generation{}).
		Where("id = ?", id).
		Updates(map[string]any{"score": score, "doc": doc})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateShowcaseScore 同步作者维度的冗余副本；副本不存在视为无事可做
func (r *GenerationRepository) UpdateShowcaseScore(ctx context.Context, ownerID, generationID string, score *float64) error {
	return r.DB.WithContext(ctx).Model(&model.ShowcaseItem{}).
		Where("owner_id = ? AND generation_id = ?", ownerID, generationID).
		Update("score", score).Error
}
