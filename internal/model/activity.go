package model

import "time"

// Activity 系统活动流水，供 dashboard 活动流展示
type Activity struct {
    ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
    Type        string    `json:"activityType" gorm:"column:activity_type;type:varchar(32);index;not null"`
    Title       string    `json:"title" gorm:"not null"`
    Description string    `json:"description"`
    UserID      *int64    `json:"userId" gorm:"index"`
    EntityType  string    `json:"entityType" gorm:"type:varchar(32)"` // ORDER / PRODUCT / USER ...
    EntityID    *int64    `json:"entityId"`
    Metadata    string    `json:"metadata"` // JSON 字符串
    CreatedAt   time.Time `json:"createdAt" gorm:"index"`

    User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (Activity) TableName() string { return "activity" }

// ActivityType 常量
const (
    ActivityOrderCreated   = "ORDER_CREATED"
    ActivityOrderUpdated   = "ORDER_UPDATED"
    ActivityOrderCompleted = "ORDER_COMPLETED"
    ActivityProductCreated = "PRODUCT_CREATED"
    ActivityProductUpdated = "PRODUCT_UPDATED"
    ActivityUserRegistered = "USER_REGISTERED"
    ActivityUserLogin      = "USER_LOGIN"
)
