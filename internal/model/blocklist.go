package model

import "time"

type BlockedIP struct {
	ID        uint64 `gorm:"primaryKey"`
	IP        string `gorm:"uniqueIndex;size:45;not null"` // IPv6 最长 45 字符
	Reason    string `gorm:"size:255"`
	CreatedBy string `gorm:"size:64"`
	CreatedAt time.Time
}

func (BlockedIP) TableName() string { return "blocked_ips" }

type BlockedDevice struct {
	ID        uint64 `gorm:"primaryKey"`
	DeviceID  string `gorm:"uniqueIndex;size:128;not null"`
	Reason    string `gorm:"size:255"`
	CreatedBy string `gorm:"size:64"`
	CreatedAt time.Time
}

func (BlockedDevice) TableName() string { return "blocked_devices" }
