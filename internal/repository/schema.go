package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/d60-Lab/shop-analytics/internal/model"
)

// InitSchema 初始化数据库表结构
func InitSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Order{},
		&model.OrderDetail{},
		&model.Activity{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Close 关闭底层数据库连接
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
