package service

import (
    "context"
    "strings"
    "time"

    "github.com/d60-Lab/shop-analytics/internal/analytics"
    "github.com/d60-Lab/shop-analytics/internal/model"
    "github.com/d60-Lab/shop-analytics/internal/repository"
)

// DashboardService 仪表盘概览：总量卡片、最近订单、销量图、分类占比、商品榜
type DashboardService interface {
    Stats(ctx context.Context) Report
    RecentOrders(ctx context.Context, limit int) Report
    SalesChart(ctx context.Context, days int) Report
    CategoryBreakdown(ctx context.Context) Report
    TopProducts(ctx context.Context, limit int) Report
}

type dashboardService struct {
    orders   repository.OrderRepository
    details  repository.OrderDetailRepository
    users    repository.UserRepository
    products repository.ProductRepository
    now      func() time.Time
}

// 库存告警阈值
const lowStockThreshold = 10

// NewDashboardService 创建仪表盘服务
func NewDashboardService(
    orders repository.OrderRepository,
    details repository.OrderDetailRepository,
    users repository.UserRepository,
    products repository.ProductRepository,
) DashboardService {
    return &dashboardService{orders: orders, details: details, users: users, products: products, now: time.Now}
}

func (s *dashboardService) Stats(ctx context.Context) Report {
    orders, err := s.orders.ListAll(ctx)
    if err != nil {
        reportFailure("dashboard-stats", err)
        return syntheticReport(Report{})
    }
    totalUsers, err := s.users.Count(ctx)
    if err != nil {
        reportFailure("dashboard-stats", err)
        return syntheticReport(Report{})
    }
    totalProducts, err := s.products.Count(ctx)
    if err != nil {
        reportFailure("dashboard-stats", err)
        return syntheticReport(Report{})
    }
    lowStock, err := s.products.CountLowStock(ctx, lowStockThreshold)
    if err != nil {
        reportFailure("dashboard-stats", err)
        return syntheticReport(Report{})
    }

    n := s.now()
    monthStart := time.Date(n.Year(), n.Month(), 1, 0, 0, 0, 0, n.Location())
    prevStart := monthStart.AddDate(0, -1, 0)

    var totalRevenue, monthRevenue, prevRevenue, monthOrders, prevOrders int64
    for _, o := range orders {
        totalRevenue += o.TotalPrice
        if o.CreateAt == nil {
            continue
        }
        switch {
        case !o.CreateAt.Before(monthStart):
            monthRevenue += o.TotalPrice
            monthOrders++
        case !o.CreateAt.Before(prevStart):
            prevRevenue += o.TotalPrice
            prevOrders++
        }
    }

    return liveReport(Report{
        "totalOrders":    int64(len(orders)),
        "totalRevenue":   totalRevenue,
        "totalUsers":     totalUsers,
        "totalProducts":  totalProducts,
        "lowStockCount":  lowStock,
        "monthRevenue":   monthRevenue,
        "monthOrders":    monthOrders,
        "revenueChange":  changePct(monthRevenue, prevRevenue),
        "ordersChange":   changePct(monthOrders, prevOrders),
    })
}

// changePct 环比变化百分比；上月为零时不做除法，直接返回 0
func changePct(current, previous int64) float64 {
    if previous == 0 {
        return 0
    }
    return analytics.Round1(float64(current-previous) * 100 / float64(previous))
}

func (s *dashboardService) RecentOrders(ctx context.Context, limit int) Report {
    if limit <= 0 {
        limit = 10
    }
    orders, err := s.orders.ListRecent(ctx, limit)
    if err != nil {
        reportFailure("dashboard-recent-orders", err)
        return syntheticReport(Report{"data": []Report{}})
    }

    rows := make([]Report, 0, len(orders))
    for _, o := range orders {
        rows = append(rows, Report{
            "id":           o.ID,
            "customerName": strings.TrimSpace(o.Firstname + " " + o.Lastname),
            "totalPrice":   o.TotalPrice,
            "status":       o.Status,
            "createAt":     o.CreateAt,
            "itemCount":    len(o.OrderDetails),
        })
    }
    return liveReport(Report{"data": rows})
}

func (s *dashboardService) SalesChart(ctx context.Context, days int) Report {
    n := s.now()
    end := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, n.Location()).AddDate(0, 0, 1)
    start := end.AddDate(0, 0, -days)
    orders, err := s.orders.ListCreatedBetween(ctx, start, end)
    if err != nil {
        reportFailure("dashboard-sales-chart", err)
        return syntheticReport(Report{"data": syntheticTrendRows(days, n)})
    }

    grouper := analytics.NewGrouper[string]()
    grouper.Seed(analytics.SeriesSkeleton(start, end, analytics.GranularityDaily)...)
    for _, o := range orders {
        if o.CreateAt == nil {
            continue
        }
        grouper.Add(analytics.BucketKey(*o.CreateAt, analytics.GranularityDaily), o.TotalPrice)
    }

    rows := make([]Report, 0, len(grouper.Keys()))
    for _, day := range grouper.Keys() {
        rows = append(rows, Report{"date": day, "amount": grouper.Sum(day), "orders": grouper.Count(day)})
    }
    return liveReport(Report{"data": rows})
}

// TopProducts 按单价倒序的商品榜
func (s *dashboardService) TopProducts(ctx context.Context, limit int) Report {
    if limit <= 0 {
        limit = 5
    }
    products, err := s.products.ListTopPriced(ctx, limit)
    if err != nil {
        reportFailure("dashboard-top-products", err)
        return syntheticReport(Report{"data": []Report{}})
    }

    rows := make([]Report, 0, len(products))
    for _, p := range products {
        cat := model.UncategorizedName
        if p.Category != nil {
            cat = p.Category.Name
        }
        rows = append(rows, Report{
            "id":       p.ID,
            "name":     p.Name,
            "price":    p.Price,
            "quantity": p.Quantity,
            "category": cat,
        })
    }
    return liveReport(Report{"data": rows})
}

func (s *dashboardService) CategoryBreakdown(ctx context.Context) Report {
    // 全时段占比，区间下界取远早于任何业务数据的时间点
    start := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
    rows, err := s.details.RevenueByCategory(ctx, start, s.now())
    if err != nil {
        reportFailure("dashboard-category-breakdown", err)
        return syntheticReport(Report{"data": []Report{}})
    }

    var total int64
    for _, r := range rows {
        total += r.Revenue
    }
    data := make([]Report, 0, len(rows))
    for _, r := range rows {
        pct := 0.0
        if total > 0 {
            pct = analytics.Round1(float64(r.Revenue) * 100 / float64(total))
        }
        data = append(data, Report{"category": r.Category, "revenue": r.Revenue, "percentage": pct})
    }
    return liveReport(Report{"data": data, "totalRevenue": total})
}
