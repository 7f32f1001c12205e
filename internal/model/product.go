package model

import "time"

// Product 商品；Category 链接可空，报表侧统一回落到 "Uncategorized"
type Product struct {
    ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
    Name       string    `json:"name" gorm:"type:varchar(128);index;not null"`
    Price      int64     `json:"price" gorm:"not null;default:0"`
    Quantity   int       `json:"quantity" gorm:"not null;default:0"` // 库存
    CategoryID *int64    `json:"categoryId" gorm:"index"`
    CreateAt   time.Time `json:"createAt"`

    Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

func (Product) TableName() string { return "product" }

// Category 商品分类
type Category struct {
    ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
    Name string `json:"name" gorm:"type:varchar(64);not null"`
}

func (Category) TableName() string { return "category" }

// UncategorizedName 分类缺失时报表使用的名称
const UncategorizedName = "Uncategorized"
