package model

import "time"

// FeatureFlag 功能开关，redis 有一份热缓存，库里的值为准
type FeatureFlag struct {
	Key         string `gorm:"primaryKey;size:64"`
	Enabled     bool   `gorm:"not null;default:0"`
	Description string `gorm:"size:255"`
	UpdatedBy   string `gorm:"size:64"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (FeatureFlag) TableName() string { return "feature_flags" }
