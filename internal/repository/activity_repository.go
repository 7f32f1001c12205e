package repository

import (
    "context"

    "gorm.io/gorm"

    "github.com/d60-Lab/shop-analytics/internal/model"
)

// ActivityRepository 活动流水仓储接口
type ActivityRepository interface {
    Create(ctx context.Context, activity *model.Activity) error
    // ListRecent 按时间倒序取最近 limit 条（带用户）
    ListRecent(ctx context.Context, limit int) ([]*model.Activity, error)
}

type activityRepository struct {
    db *gorm.DB
}

// NewActivityRepository 创建活动仓储
func NewActivityRepository(db *gorm.DB) ActivityRepository { return &activityRepository{db: db} }

func (r *activityRepository) Create(ctx context.Context, activity *model.Activity) error {
    return r.db.WithContext(ctx).Create(activity).Error
}

func (r *activityRepository) ListRecent(ctx context.Context, limit int) ([]*model.Activity, error) {
    var items []*model.Activity
    err := r.db.WithContext(ctx).
        Preload("User").
        Order("created_at DESC").
        Limit(limit).
        Find(&items).Error
    return items, err
}
