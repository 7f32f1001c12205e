package model

import (
	"time"
)

// Order 订单模型（结算时的收件快照字段与订单主体同表存储）
type Order struct {
	ID         int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Firstname  string     `json:"firstname"`
	Lastname   string     `json:"lastname"`
	Country    string     `json:"country"`
	Address    string     `json:"address"`
	Town       string     `json:"town"`
	State      string     `json:"state"`
	Postcode   string     `json:"postcode"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	Note       string     `json:"note"`
	TotalPrice int64      `json:"totalPrice" gorm:"not null;default:0"` // 整数货币单位
	Status     string     `json:"status" gorm:"type:varchar(16);index;not null;default:PENDING"`
	UserID     *int64     `json:"userId" gorm:"index:idx_order_user_created"` // 可空：游客订单
	CreateAt   *time.Time `json:"createAt" gorm:"index:idx_order_user_created;index"`
	UpdateAt   *time.Time `json:"updateAt"`

	OrderDetails []OrderDetail `json:"orderDetails,omitempty" gorm:"foreignKey:OrderID"`
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// OrderStatus 订单状态常量
const (
	OrderStatusPending    = "PENDING"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusShipping   = "SHIPPING"
	OrderStatusCompleted  = "COMPLETED"
	OrderStatusCancelled  = "CANCELLED"
	OrderStatusUnknown    = "UNKNOWN"
)

// OrderDetail 订单明细行；Product 链接可空，此时仅保留冗余的商品名
type OrderDetail struct {
	ID        int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID   int64  `json:"orderId" gorm:"index;not null"`
	ProductID *int64 `json:"productId" gorm:"index"`
	Name      string `json:"name"`
	Price     int64  `json:"price" gorm:"not null;default:0"`
	Quantity  int    `json:"quantity" gorm:"not null;default:0"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// TableName 指定表名
func (OrderDetail) TableName() string {
	return "order_details"
}

// SubTotal 行小计 = 单价 × 数量（派生值，不落库）
func (d OrderDetail) SubTotal() int64 {
	return d.Price * int64(d.Quantity)
}
