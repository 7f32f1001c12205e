package repository

import (
    "context"

    "gorm.io/gorm"

    "github.com/d60-Lab/shop-analytics/internal/model"
)

// ProductRepository 商品仓储接口
type ProductRepository interface {
    ListAll(ctx context.Context) ([]*model.Product, error)
    Count(ctx context.Context) (int64, error)
    // ListTopPriced 按价格倒序取前 limit 个
    ListTopPriced(ctx context.Context, limit int) ([]*model.Product, error)
    // CountLowStock 库存低于阈值的商品数
    CountLowStock(ctx context.Context, threshold int) (int64, error)
}

type productRepository struct {
    db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepository{db: db} }

func (r *productRepository) ListAll(ctx context.Context) ([]*model.Product, error) {
    var products []*model.Product
    err := r.db.WithContext(ctx).Preload("Category").Find(&products).Error
    return products, err
}

func (r *productRepository) Count(ctx context.Context) (int64, error) {
    var cnt int64
    err := r.db.WithContext(ctx).Model(&model.Product{}).Count(&cnt).Error
    return cnt, err
}

func (r *productRepository) ListTopPriced(ctx context.Context, limit int) ([]*model.Product, error) {
    var products []*model.Product
    err := r.db.WithContext(ctx).Preload("Category").Order("price DESC").Limit(limit).Find(&products).Error
    return products, err
}

func (r *productRepository) CountLowStock(ctx context.Context, threshold int) (int64, error) {
    var cnt int64
    err := r.db.WithContext(ctx).Model(&model.Product{}).Where("quantity < ?", threshold).Count(&cnt).Error
    return cnt, err
}
