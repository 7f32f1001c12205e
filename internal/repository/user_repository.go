package repository

import (
    "context"

    "gorm.io/gorm"

    "github.com/d60-Lab/shop-analytics/internal/model"
)

// UserRepository 用户仓储接口
type UserRepository interface {
    ListAll(ctx context.Context) ([]*model.User, error)
    Count(ctx context.Context) (int64, error)
    FindByUsername(ctx context.Context, username string) (*model.User, error)
}

type userRepository struct {
    db *gorm.DB
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

func (r *userRepository) ListAll(ctx context.Context) ([]*model.User, error) {
    var users []*model.User
    err := r.db.WithContext(ctx).Find(&users).Error
    return users, err
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
    var cnt int64
    err := r.db.WithContext(ctx).Model(&model.User{}).Count(&cnt).Error
    return cnt, err
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
    var user model.User
    if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
        return nil, err
    }
    return &user, nil
}
