package model

import "time"

// Broadcast 群发邮件记录，逐个收件人顺序投递，失败计数不中断
type Broadcast struct {
	ID          uint64 `gorm:"primaryKey"`
	Subject     string `gorm:"size:200;not null"`
	Body        string `gorm:"type:text"`
	Audience    string `gorm:"size:16;not null;default:'all'"` // all / active
	SentCount   int    `gorm:"not null;default:0"`
	FailedCount int    `gorm:"not null;default:0"`
	CreatedBy   string `gorm:"size:64"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Broadcast) TableName() string { return "broadcasts" }
