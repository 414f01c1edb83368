package mysql

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// InitDB 建立 MySQL 连接，返回的 *gorm.DB 由入口处注入到各仓储
func InitDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(10)

	return db, nil
}
