package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/shop-analytics/internal/model"
)

// DailySales 存储侧按天聚合的销量/营收行
type DailySales struct {
	Date     string `gorm:"column:sale_date"`
	Quantity int64  `gorm:"column:total_quantity"`
	Revenue  int64  `gorm:"column:total_revenue"`
}

// HourlySales 按一天内小时聚合的订单数/营收行
type HourlySales struct {
	Hour       int   `gorm:"column:hour_of_day"`
	OrderCount int64 `gorm:"column:order_count"`
	Revenue    int64 `gorm:"column:total_revenue"`
}

// PurchaseFrequency 客户购买频次与累计消费
type PurchaseFrequency struct {
	UserID     int64  `gorm:"column:user_id"`
	Username   string `gorm:"column:username"`
	OrderCount int64  `gorm:"column:order_count"`
	TotalSpent int64  `gorm:"column:total_spent"`
}

// CategoryRevenue 按商品分类聚合的营收行
type CategoryRevenue struct {
	Category   string `gorm:"column:category"`
	Revenue    int64  `gorm:"column:revenue"`
	OrderCount int64  `gorm:"column:order_count"`
}

// CrossSellPair 同单共现的商品对（product1_id < product2_id）
type CrossSellPair struct {
	Product1ID   int64  `gorm:"column:product1_id"`
	Product1Name string `gorm:"column:product1_name"`
	Product2ID   int64  `gorm:"column:product2_id"`
	Product2Name string `gorm:"column:product2_name"`
	Frequency    int64  `gorm:"column:frequency"`
}

// OrderDetailRepository 订单明细仓储接口。
// 除全量读取外，还承载可以下推到存储侧的聚合查询；约定：下推聚合与进程内
// 分组对同一数据集必须产出一致结果。
type OrderDetailRepository interface {
	// ListAll 查询全量明细（带商品与分类）
	ListAll(ctx context.Context) ([]*model.OrderDetail, error)

	// SalesByDateRange 按天聚合 [start, end) 区间的销量与营收
	SalesByDateRange(ctx context.Context, start, end time.Time) ([]DailySales, error)

	// SalesByHour 按一天内小时聚合订单数与营收
	SalesByHour(ctx context.Context) ([]HourlySales, error)

	// CustomerPurchaseFrequency 每个客户的订单数与累计消费，按消费降序
	CustomerPurchaseFrequency(ctx context.Context) ([]PurchaseFrequency, error)

	// RevenueByCategory 按分类聚合 [start, end) 区间营收
	RevenueByCategory(ctx context.Context, start, end time.Time) ([]CategoryRevenue, error)

	// CrossSellPairs 同单共现商品对 TOP N（无序对只计一次）
	CrossSellPairs(ctx context.Context, limit int) ([]CrossSellPair, error)
}

type orderDetailRepository struct {
	db *gorm.DB
}

// NewOrderDetailRepository 创建订单明细仓储
func NewOrderDetailRepository(db *gorm.DB) OrderDetailRepository {
	return &orderDetailRepository{db: db}
}

func (r *orderDetailRepository) ListAll(ctx context.Context) ([]*model.OrderDetail, error) {
	var details []*model.OrderDetail
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Product.Category").
		Find(&details).Error
	return details, err
}

// dayExpr / hourExpr 方言适配：sqlite 与 postgres 的日期函数不同
func (r *orderDetailRepository) dayExpr(col string) string {
	if r.db.Dialector.Name() == "postgres" {
		return fmt.Sprintf("to_char(%s, 'YYYY-MM-DD')", col)
	}
	return fmt.Sprintf("strftime('%%Y-%%m-%%d', %s)", col)
}

func (r *orderDetailRepository) hourExpr(col string) string {
	if r.db.Dialector.Name() == "postgres" {
		return fmt.Sprintf("CAST(EXTRACT(HOUR FROM %s) AS INTEGER)", col)
	}
	return fmt.Sprintf("CAST(strftime('%%H', %s) AS INTEGER)", col)
}

func (r *orderDetailRepository) SalesByDateRange(ctx context.Context, start, end time.Time) ([]DailySales, error) {
	var rows []DailySales
	q := fmt.Sprintf(`
		SELECT %s AS sale_date,
		       SUM(od.quantity) AS total_quantity,
		       SUM(od.price * od.quantity) AS total_revenue
		FROM order_details od
		JOIN orders o ON od.order_id = o.id
		WHERE o.create_at >= ? AND o.create_at < ?
		GROUP BY sale_date
		ORDER BY sale_date
	`, r.dayExpr("o.create_at"))
	err := r.db.WithContext(ctx).Raw(q, start, end).Scan(&rows).Error
	return rows, err
}

func (r *orderDetailRepository) SalesByHour(ctx context.Context) ([]HourlySales, error) {
	var rows []HourlySales
	q := fmt.Sprintf(`
		SELECT %s AS hour_of_day,
		       COUNT(DISTINCT o.id) AS order_count,
		       SUM(od.price * od.quantity) AS total_revenue
		FROM order_details od
		JOIN orders o ON od.order_id = o.id
		WHERE o.create_at IS NOT NULL
		GROUP BY hour_of_day
		ORDER BY hour_of_day
	`, r.hourExpr("o.create_at"))
	err := r.db.WithContext(ctx).Raw(q).Scan(&rows).Error
	return rows, err
}

func (r *orderDetailRepository) CustomerPurchaseFrequency(ctx context.Context) ([]PurchaseFrequency, error) {
	var rows []PurchaseFrequency
	err := r.db.WithContext(ctx).Raw(`
		SELECT u.id AS user_id, u.username AS username,
		       COUNT(DISTINCT o.id) AS order_count,
		       SUM(od.price * od.quantity) AS total_spent
		FROM order_details od
		JOIN orders o ON od.order_id = o.id
		JOIN users u ON o.user_id = u.id
		GROUP BY u.id, u.username
		ORDER BY total_spent DESC
	`).Scan(&rows).Error
	return rows, err
}

func (r *orderDetailRepository) RevenueByCategory(ctx context.Context, start, end time.Time) ([]CategoryRevenue, error) {
	var rows []CategoryRevenue
	err := r.db.WithContext(ctx).Raw(`
		SELECT c.name AS category,
		       SUM(od.price * od.quantity) AS revenue,
		       COUNT(DISTINCT o.id) AS order_count
		FROM order_details od
		JOIN product p ON od.product_id = p.id
		JOIN category c ON p.category_id = c.id
		JOIN orders o ON od.order_id = o.id
		WHERE o.create_at >= ? AND o.create_at < ?
		GROUP BY c.name
		ORDER BY revenue DESC
	`, start, end).Scan(&rows).Error
	return rows, err
}

func (r *orderDetailRepository) CrossSellPairs(ctx context.Context, limit int) ([]CrossSellPair, error) {
	// od1.product_id < od2.product_id 保证无序对只产生一个规范方向
	var rows []CrossSellPair
	err := r.db.WithContext(ctx).Raw(`
		SELECT p1.id AS product1_id, p1.name AS product1_name,
		       p2.id AS product2_id, p2.name AS product2_name,
		       COUNT(DISTINCT od1.order_id) AS frequency
		FROM order_details od1
		JOIN order_details od2
		  ON od1.order_id = od2.order_id AND od1.product_id < od2.product_id
		JOIN product p1 ON od1.product_id = p1.id
		JOIN product p2 ON od2.product_id = p2.id
		GROUP BY p1.id, p1.name, p2.id, p2.name
		ORDER BY frequency DESC, product1_id, product2_id
		LIMIT ?
	`, limit).Scan(&rows).Error
	return rows, err
}
