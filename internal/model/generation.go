package model

import "time"

// Generation 生成记录行：可索引列 + 原始文档。
// 文档字段随管线版本演进过，旧记录缺新字段，读取侧统一走规范化。
type Generation struct {
	ID        string   `gorm:"primaryKey;size:36"`
	OwnerID   string   `gorm:"size:36;not null;index:idx_owner_time,priority:1"`
	Kind      string   `gorm:"size:32;not null;index"`
	Score     *float64 `gorm:"index:idx_score_time,priority:1,sort:desc"`
	IsPublic  bool     `gorm:"not null;default:0"`
	IsDeleted bool     `gorm:"not null;default:0;index"`
	Doc       []byte   `gorm:"type:json"`
	CreatedAt time.Time `gorm:"index:idx_owner_time,priority:2,sort:desc;index:idx_score_time,priority:2,sort:desc"`
	UpdatedAt time.Time
}

func (Generation) TableName() string { return "generations" }

// ShowcaseItem 按作者维度冗余的一份生成记录副本，供作品页读路径使用。
// 评分写入时尽力同步，主表才是权威数据。
type ShowcaseItem struct {
	ID           uint64   `gorm:"primaryKey"`
	OwnerID      string   `gorm:"size:36;not null;uniqueIndex:uk_owner_generation,priority:1"`
	GenerationID string   `gorm:"size:36;not null;uniqueIndex:uk_owner_generation,priority:2"`
	Score        *float64
	Doc          []byte `gorm:"type:json"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (ShowcaseItem) TableName() string { return "showcase_items" }

// ListAnchor 游标锚点：由游标 id 反查记录得到，批量拉取从它之后继续
type ListAnchor struct {
	ID        string
	CreatedAt time.Time
	Score     *float64
}

// OwnerRef 文档内嵌的作者信息，规范化后至少保证 UID 存在
type OwnerRef struct {
	UID       string `json:"uid"`
	Username  string `json:"username,omitempty"`
	Email     string `json:"email,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// ImageAsset 图片附件及其衍生资源
type ImageAsset struct {
	ID            string   `json:"id,omitempty"`
	URL           string   `json:"url,omitempty"`
	AvifURL       string   `json:"avifUrl,omitempty"`
	CompressedURL string   `json:"compressedUrl,omitempty"`
	ThumbnailURL  string   `json:"thumbnailUrl,omitempty"`
	BlurURL       string   `json:"blurUrl,omitempty"`
	Score         *float64 `json:"score,omitempty"`
}

type VideoAsset struct {
	ID           string   `json:"id,omitempty"`
	URL          string   `json:"url,omitempty"`
	ThumbnailURL string   `json:"thumbnailUrl,omitempty"`
	Score        *float64 `json:"score,omitempty"`
}

// GenerationDoc 规范化后的文档形态，接口层直接以此输出
type GenerationDoc struct {
	ID        string       `json:"id"`
	Owner     OwnerRef     `json:"owner"`
	Kind      string       `json:"kind"`
	Model     string       `json:"model,omitempty"`
	Prompt    string       `json:"prompt,omitempty"`
	Status    string       `json:"status,omitempty"`
	Score     *float64     `json:"score,omitempty"`
	Images    []ImageAsset `json:"images"`
	Videos    []VideoAsset `json:"videos"`
	IsPublic  bool         `json:"isPublic"`
	IsDeleted bool         `json:"isDeleted"`
	CreatedAt FlexTime     `json:"createdAt"`
	UpdatedAt FlexTime     `json:"updatedAt"`
}
