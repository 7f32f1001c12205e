package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/shop-analytics/internal/model"
)

// StatusCount 按状态的订单数（下推到存储侧的聚合结果行）
type StatusCount struct {
	Status string `gorm:"column:status"`
	Count  int64  `gorm:"column:count"`
}

// OrderRepository 订单仓储接口（分析侧只读）
type OrderRepository interface {
	// ListAll 查询全量订单
	ListAll(ctx context.Context) ([]*model.Order, error)

	// ListCreatedAfter 查询某时间点之后创建的订单
	ListCreatedAfter(ctx context.Context, after time.Time) ([]*model.Order, error)

	// ListCreatedBetween 查询 [start, end) 区间创建的订单
	ListCreatedBetween(ctx context.Context, start, end time.Time) ([]*model.Order, error)

	// ListRecent 按创建时间倒序取最近 limit 条（含明细）
	ListRecent(ctx context.Context, limit int) ([]*model.Order, error)

	// Count 统计订单总数
	Count(ctx context.Context) (int64, error)

	// CountByStatus 按状态统计订单数（存储侧 GROUP BY）
	CountByStatus(ctx context.Context) ([]StatusCount, error)
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) ListAll(ctx context.Context) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).Find(&orders).Error
	return orders, err
}

func (r *orderRepository) ListCreatedAfter(ctx context.Context, after time.Time) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Where("create_at >= ?", after).
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) ListCreatedBetween(ctx context.Context, start, end time.Time) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Where("create_at >= ? AND create_at < ?", start, end).
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) ListRecent(ctx context.Context, limit int) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Preload("OrderDetails").
		Preload("OrderDetails.Product").
		Order("create_at DESC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).Count(&count).Error
	return count, err
}

func (r *orderRepository) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(status, 'UNKNOWN') AS status, COUNT(*) AS count
		FROM orders
		GROUP BY COALESCE(status, 'UNKNOWN')
	`).Scan(&rows).Error
	return rows, err
}
