package service

import (
    "github.com/d60-Lab/shop-analytics/internal/analytics"
    "github.com/d60-Lab/shop-analytics/internal/model"
)

// toOrderRecords 订单模型 → 引擎只读投影
func toOrderRecords(orders []*model.Order) []analytics.OrderRecord {
    records := make([]analytics.OrderRecord, 0, len(orders))
    for _, o := range orders {
        records = append(records, analytics.OrderRecord{
            ID:          o.ID,
            CustomerID:  o.UserID,
            TotalAmount: o.TotalPrice,
            Status:      o.Status,
            CreatedAt:   o.CreateAt,
        })
    }
    return records
}

// toLineRecords 订单明细 → 引擎只读投影；商品名优先取冗余列，分类缺失回落
func toLineRecords(details []*model.OrderDetail) []analytics.OrderLineRecord {
    records := make([]analytics.OrderLineRecord, 0, len(details))
    for _, d := range details {
        name := d.Name
        category := ""
        if d.Product != nil {
            if name == "" {
                name = d.Product.Name
            }
            if d.Product.Category != nil {
                category = d.Product.Category.Name
            }
        }
        records = append(records, analytics.OrderLineRecord{
            OrderID:      d.OrderID,
            ProductID:    d.ProductID,
            ProductName:  name,
            CategoryName: category,
            UnitPrice:    d.Price,
            Quantity:     d.Quantity,
        })
    }
    return records
}

// toCustomerRecords 用户模型 → 引擎只读投影
func toCustomerRecords(users []*model.User) []analytics.CustomerRecord {
    records := make([]analytics.CustomerRecord, 0, len(users))
    for _, u := range users {
        records = append(records, analytics.CustomerRecord{
            ID:           u.ID,
            Username:     u.Username,
            Email:        u.Email,
            RegisteredAt: u.CreateAt,
        })
    }
    return records
}
