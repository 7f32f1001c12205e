package service

import (
    "context"
    "fmt"
    "sort"
    "time"

    "github.com/d60-Lab/shop-analytics/internal/analytics"
    "github.com/d60-Lab/shop-analytics/internal/model"
    "github.com/d60-Lab/shop-analytics/internal/repository"
)

// AdvancedReportService 进阶分析：RFM 分群、购物篮、漏斗、留存同期群等
type AdvancedReportService interface {
    RFMAnalysis(ctx context.Context) Report
    BasketAnalysis(ctx context.Context, limit int) Report
    FunnelAnalysis(ctx context.Context) Report
    UserCohortAnalysis(ctx context.Context) Report
    CustomerLifetimeValue(ctx context.Context) Report
    SeasonalTrends(ctx context.Context, years int) Report
    CategoryPerformance(ctx context.Context, days int) Report
    DayHourHeatmap(ctx context.Context, days int) Report
    OrderCompletionRate(ctx context.Context, days int) Report
}

type advancedService struct {
    orders  repository.OrderRepository
    details repository.OrderDetailRepository
    users   repository.UserRepository
    now     func() time.Time
}

// NewAdvancedReportService 创建进阶分析服务
func NewAdvancedReportService(
    orders repository.OrderRepository,
    details repository.OrderDetailRepository,
    users repository.UserRepository,
) AdvancedReportService {
    return &advancedService{orders: orders, details: details, users: users, now: time.Now}
}

func (s *advancedService) window(days int) (time.Time, time.Time) {
    n := s.now()
    end := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, n.Location()).AddDate(0, 0, 1)
    return end.AddDate(0, 0, -days), end
}

func (s *advancedService) RFMAnalysis(ctx context.Context) Report {
    orders, err := s.orders.ListAll(ctx)
    if err != nil {
        reportFailure("rfm", err)
        return syntheticReport(Report{"customers": []Report{}})
    }
    users, err := s.users.ListAll(ctx)
    if err != nil {
        reportFailure("rfm", err)
        return syntheticReport(Report{"customers": []Report{}})
    }

    result := analytics.SegmentCustomers(toOrderRecords(orders), toCustomerRecords(users), s.now())
    return liveReport(Report{"customers": result.Customers, "summary": result.Summary})
}

func (s *advancedService) BasketAnalysis(ctx context.Context, limit int) Report {
    if limit <= 0 {
        limit = 10
    }
    details, err := s.details.ListAll(ctx)
    if err != nil {
        reportFailure("basket", err)
        return syntheticReport(Report{"pairs": []Report{}})
    }
    pairs := analytics.TopCoPurchasedPairs(toLineRecords(details), limit)
    return liveReport(Report{"pairs": pairs})
}

func (s *advancedService) FunnelAnalysis(ctx context.Context) Report {
    totalUsers, err := s.users.Count(ctx)
    if err != nil {
        reportFailure("funnel", err)
        return syntheticReport(Report{"stages": []Report{}})
    }
    orders, err := s.orders.ListAll(ctx)
    if err != nil {
        reportFailure("funnel", err)
        return syntheticReport(Report{"stages": []Report{}})
    }

    anyOrder := make(map[int64]struct{})
    completed := make(map[int64]struct{})
    for _, o := range orders {
        if o.UserID == nil {
            continue
        }
        anyOrder[*o.UserID] = struct{}{}
        if o.Status == model.OrderStatusCompleted {
            completed[*o.UserID] = struct{}{}
        }
    }
    stages := analytics.ComputeFunnel(totalUsers, int64(len(anyOrder)), int64(len(completed)))
    return liveReport(Report{"stages": stages})
}

func (s *advancedService) UserCohortAnalysis(ctx context.Context) Report {
    users, err := s.users.ListAll(ctx)
    if err != nil {
        reportFailure("cohort", err)
        return syntheticReport(Report{"cohorts": []Report{}})
    }
    orders, err := s.orders.ListAll(ctx)
    if err != nil {
        reportFailure("cohort", err)
        return syntheticReport(Report{"cohorts": []Report{}})
    }
    cohorts := analytics.BuildCohorts(toCustomerRecords(users), toOrderRecords(orders))
    return liveReport(Report{"cohorts": cohorts})
}

func (s *advancedService) CustomerLifetimeValue(ctx context.Context) Report {
    rows, err := s.details.CustomerPurchaseFrequency(ctx)
    if err != nil {
        reportFailure("clv", err)
        return syntheticReport(Report{"topCustomers": syntheticInsightRows()})
    }

    var totalSpent, totalOrders int64
    top := make([]Report, 0, 10)
    for i, r := range rows {
        totalSpent += r.TotalSpent
        totalOrders += r.OrderCount
        if i < 10 {
            top = append(top, Report{
                "userId":     r.UserID,
                "username":   r.Username,
                "orderCount": r.OrderCount,
                "totalSpent": r.TotalSpent,
            })
        }
    }

    n := int64(len(rows))
    avgLifetime, avgOrderCount, avgOrderValue := int64(0), 0.0, int64(0)
    if n > 0 {
        avgLifetime = totalSpent / n
        avgOrderCount = analytics.Round2(float64(totalOrders) / float64(n))
    }
    if totalOrders > 0 {
        avgOrderValue = totalSpent / totalOrders
    }
    return liveReport(Report{
        "topCustomers":     top,
        "avgLifetimeValue": avgLifetime,
        "avgOrderCount":    avgOrderCount,
        "avgOrderValue":    avgOrderValue,
        "totalCustomers":   n,
    })
}

// quarterKey 季度分桶键，形如 2024-Q1
func quarterKey(t time.Time) string {
    return fmt.Sprintf("%04d-Q%d", t.Year(), (int(t.Month())-1)/3+1)
}

func (s *advancedService) SeasonalTrends(ctx context.Context, years int) Report {
    if years <= 0 {
        years = 1
    }
    start := s.now().AddDate(-years, 0, 0)
    orders, err := s.orders.ListCreatedAfter(ctx, start)
    if err != nil {
        reportFailure("seasonal-trends", err)
        return syntheticReport(Report{"data": []Report{}})
    }

    grouper := analytics.NewGrouper[string]()
    for _, o := range orders {
        if o.CreateAt == nil {
            continue
        }
        key := quarterKey(*o.CreateAt)
        grouper.Add(key, o.TotalPrice)
        if o.UserID != nil {
            grouper.AddDistinct(key, *o.UserID)
        }
    }

    quarters := append([]string(nil), grouper.Keys()...)
    sort.Strings(quarters)
    rows := make([]Report, 0, len(quarters))
    for _, q := range quarters {
        rows = append(rows, Report{
            "quarter":   q,
            "revenue":   grouper.Sum(q),
            "orders":    grouper.Count(q),
            "customers": grouper.Distinct(q),
        })
    }
    return liveReport(Report{"data": rows, "years": years})
}

func (s *advancedService) CategoryPerformance(ctx context.Context, days int) Report {
    start, end := s.window(days)
    rows, err := s.details.RevenueByCategory(ctx, start, end)
    if err != nil {
        reportFailure("category-performance", err)
        return syntheticReport(Report{"data": []Report{}})
    }

    var total int64
    for _, r := range rows {
        total += r.Revenue
    }
    data := make([]Report, 0, len(rows))
    for _, r := range rows {
        share := 0.0
        if total > 0 {
            share = analytics.Round1(float64(r.Revenue) * 100 / float64(total))
        }
        data = append(data, Report{
            "category":   r.Category,
            "revenue":    r.Revenue,
            "orderCount": r.OrderCount,
            "share":      share,
        })
    }
    return liveReport(Report{"data": data, "totalRevenue": total})
}

// 周一排首的星期标签，与 ISO 周分桶一致
var heatmapDays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func (s *advancedService) DayHourHeatmap(ctx context.Context, days int) Report {
    start, end := s.window(days)
    orders, err := s.orders.ListCreatedBetween(ctx, start, end)
    if err != nil {
        reportFailure("day-hour-heatmap", err)
        return syntheticReport(Report{"matrix": [][]int64{}})
    }

    matrix := make([][]int64, 7)
    for i := range matrix {
        matrix[i] = make([]int64, 24)
    }
    var max int64
    for _, o := range orders {
        if o.CreateAt == nil {
            continue
        }
        day := (int(o.CreateAt.Weekday()) + 6) % 7
        hour := o.CreateAt.Hour()
        matrix[day][hour]++
        if matrix[day][hour] > max {
            max = matrix[day][hour]
        }
    }
    return liveReport(Report{"days": heatmapDays, "matrix": matrix, "maxCount": max})
}

func (s *advancedService) OrderCompletionRate(ctx context.Context, days int) Report {
    start, end := s.window(days)
    orders, err := s.orders.ListCreatedBetween(ctx, start, end)
    if err != nil {
        reportFailure("order-completion", err)
        return syntheticReport(Report{"data": []Report{}})
    }

    total := analytics.NewGrouper[string]()
    completed := analytics.NewGrouper[string]()
    cancelled := analytics.NewGrouper[string]()
    total.Seed(analytics.SeriesSkeleton(start, end, analytics.GranularityDaily)...)
    for _, o := range orders {
        if o.CreateAt == nil {
            continue
        }
        day := analytics.BucketKey(*o.CreateAt, analytics.GranularityDaily)
        total.Add(day, 1)
        switch o.Status {
        case model.OrderStatusCompleted:
            completed.Add(day, 1)
        case model.OrderStatusCancelled:
            cancelled.Add(day, 1)
        }
    }

    rows := make([]Report, 0, len(total.Keys()))
    var sumTotal, sumCompleted, sumCancelled int64
    for _, day := range total.Keys() {
        t, c, x := total.Count(day), completed.Count(day), cancelled.Count(day)
        completionRate, cancellationRate := 0.0, 0.0
        if t > 0 {
            completionRate = analytics.Round1(float64(c) * 100 / float64(t))
            cancellationRate = analytics.Round1(float64(x) * 100 / float64(t))
        }
        rows = append(rows, Report{
            "date":             day,
            "total":            t,
            "completed":        c,
            "cancelled":        x,
            "completionRate":   completionRate,
            "cancellationRate": cancellationRate,
        })
        sumTotal += t
        sumCompleted += c
        sumCancelled += x
    }

    overallCompletion, overallCancellation := 0.0, 0.0
    if sumTotal > 0 {
        overallCompletion = analytics.Round1(float64(sumCompleted) * 100 / float64(sumTotal))
        overallCancellation = analytics.Round1(float64(sumCancelled) * 100 / float64(sumTotal))
    }
    return liveReport(Report{
        "data": rows,
        "summary": Report{
            "totalOrders":      sumTotal,
            "completedOrders":  sumCompleted,
            "cancelledOrders":  sumCancelled,
            "completionRate":   overallCompletion,
            "cancellationRate": overallCancellation,
        },
    })
}
