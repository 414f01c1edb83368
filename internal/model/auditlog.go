package model

import "time"

// AuditLog 审计日志，只追加不修改。
// Status/Retry 服务于 kafka 投递（0=pending,1=sent,2=failed），投递失败不影响记录本身。
type AuditLog struct {
	ID         uint64 `gorm:"primaryKey"`
	AdminEmail string `gorm:"size:64;not null;index"`
	Action     string `gorm:"size:64;not null;index"`
	TargetUID  string `gorm:"size:36;index"`
	Details    string `gorm:"type:json"`
	Status     int8   `gorm:"not null;default:0"`
	Retry      int    `gorm:"not null;default:0"`
	CreatedAt  time.Time `gorm:"index"`
}

func (AuditLog) TableName() string { return "audit_logs" }
