package service

import (
	"encoding/json"
	"strings"

	"Aurora_Admin/internal/model"
)

// 文档列的宽松形态：媒体列表先留原始字节，形状不对时退化为空
type rawGenerationDoc struct {
	Owner     json.RawMessage `json:"owner"`
	Model     string          `json:"model"`
	Prompt    string          `json:"prompt"`
	Status    string          `json:"status"`
	Images    json.RawMessage `json:"images"`
	Videos    json.RawMessage `json:"videos"`
	CreatedAt model.FlexTime  `json:"createdAt"`
	UpdatedAt model.FlexTime  `json:"updatedAt"`
}

// NormalizeGeneration 把异构的存量文档整理成规范形态。
// 这里从不报错：旧记录缺字段、字段形状不对，都按缺省值处理。
// 行上的列（id/owner/kind/score/可见性）是权威值，文档负责补充细节。
func NormalizeGeneration(row *model.Generation) model.GenerationDoc {
	doc := model.GenerationDoc{
		ID:        row.ID,
		Owner:     model.OwnerRef{UID: row.OwnerID},
		Kind:      row.Kind,
		Score:     row.Score,
		IsPublic:  row.IsPublic,
		IsDeleted: row.IsDeleted,
		Images:    []model.ImageAsset{},
		Videos:    []model.VideoAsset{},
		CreatedAt: model.NewFlexTime(row.CreatedAt),
		UpdatedAt: model.NewFlexTime(row.UpdatedAt),
	}

	var raw rawGenerationDoc
	if len(row.Doc) > 0 {
		// 解析失败整体退化为列上的缺省值
		_ = json.Unmarshal(row.Doc, &raw)
	}

	doc.Model = raw.Model
	doc.Prompt = raw.Prompt
	// 状态标签统一小写，后续比较不再关心大小写
	doc.Status = strings.ToLower(strings.TrimSpace(raw.Status))

	if len(raw.Owner) > 0 {
		var owner model.OwnerRef
		if err := json.Unmarshal(raw.Owner, &owner); err == nil && owner.UID != "" {
			doc.Owner = owner
		}
	}
	// 行上的作者 id 永远兜底
	if doc.Owner.UID == "" {
		doc.Owner.UID = row.OwnerID
	}

	if len(raw.Images) > 0 {
		var images []model.ImageAsset
		if err := json.Unmarshal(raw.Images, &images); err == nil && images != nil {
			doc.Images = images
		}
	}
	if len(raw.Videos) > 0 {
		var videos []model.VideoAsset
		if err := json.Unmarshal(raw.Videos, &videos); err == nil && videos != nil {
			doc.Videos = videos
		}
	}

	// 文档里带了可解析的时间就用文档的（行列是迁移时补的近似值）
	if raw.CreatedAt.Valid {
		doc.CreatedAt = raw.CreatedAt
	}
	if raw.UpdatedAt.Valid {
		doc.UpdatedAt = raw.UpdatedAt
	}

	return doc
}
