package model

import "time"

// User 产品侧用户账号，后台只做状态与额度的变更，不做硬删除
type User struct {
	UID           string `gorm:"primaryKey;size:36"`
	Username      string `gorm:"uniqueIndex;size:32;not null"`
	Email         string `gorm:"uniqueIndex;size:64;not null"`
	AvatarURL     string `gorm:"size:255"`
	Role          string `gorm:"size:16;not null;default:'user'"`
	IsBanned      bool   `gorm:"not null;default:0"`
	IsSuspended   bool   `gorm:"not null;default:0"`
	WarningCount  int    `gorm:"not null;default:0"`
	CreditBalance int64  `gorm:"not null;default:0"`
	LastLoginAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (User) TableName() string { return "users" }

// Admin 后台操作员账号
type Admin struct {
	ID        uint64 `gorm:"primaryKey"`
	Email     string `gorm:"uniqueIndex;size:64;not null"`
	Password  string `gorm:"size:255;not null"`
	Role      int    `gorm:"not null;default:0"` // 0=operator, 1=superadmin
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Admin) TableName() string { return "admins" }
