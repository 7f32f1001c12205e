package service

import (
    "bytes"
    "context"
    "encoding/csv"
    "encoding/json"
    "fmt"
    "sort"
    "strconv"
    "time"

    "github.com/d60-Lab/shop-analytics/internal/analytics"
    "github.com/d60-Lab/shop-analytics/internal/model"
    "github.com/d60-Lab/shop-analytics/internal/repository"
)

// ReportService 基础报表装配：取数、进程内聚合、组装带 source 标记的载荷。
// 参数校验（粒度、日期）在 handler 层完成，这里只接收已解析的值。
type ReportService interface {
    SalesTrends(ctx context.Context, g analytics.Granularity, days int) Report
    Revenue(ctx context.Context, g analytics.Granularity, days int) Report
    Orders(ctx context.Context, g analytics.Granularity, days int) Report
    SalesByDateRange(ctx context.Context, start, end time.Time) Report
    TopProducts(ctx context.Context, limit, days int) Report
    ProductPerformance(ctx context.Context) Report
    UserGrowth(ctx context.Context, days int) Report
    Customers(ctx context.Context, days int) Report
    CustomerRetention(ctx context.Context) Report
    CustomerInsights(ctx context.Context) Report
    OrderStatusDistribution(ctx context.Context) Report
    SalesByHour(ctx context.Context) Report
    ExportReport(ctx context.Context, days int, format string) (contentType, filename string, body []byte, err error)
}

type reportService struct {
    orders   repository.OrderRepository
    details  repository.OrderDetailRepository
    users    repository.UserRepository
    products repository.ProductRepository
    now      func() time.Time
}

// NewReportService 创建基础报表服务
func NewReportService(
    orders repository.OrderRepository,
    details repository.OrderDetailRepository,
    users repository.UserRepository,
    products repository.ProductRepository,
) ReportService {
    return &reportService{orders: orders, details: details, users: users, products: products, now: time.Now}
}

// window 最近 days 天的左闭右开区间，右端为明日零点
func (s *reportService) window(days int) (time.Time, time.Time) {
    n := s.now()
    end := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, n.Location()).AddDate(0, 0, 1)
    return end.AddDate(0, 0, -days), end
}

func (s *reportService) SalesTrends(ctx context.Context, g analytics.Granularity, days int) Report {
    start, end := s.window(days)
    orders, err := s.orders.ListCreatedBetween(ctx, start, end)
    if err != nil {
        reportFailure("sales-trends", err)
        return syntheticReport(Report{"data": syntheticTrendRows(days, s.now()), "granularity": string(g)})
    }

    grouper := analytics.NewGrouper[string]()
    grouper.Seed(analytics.SeriesSkeleton(start, end, g)...)
    for _, o := range orders {
        if o.CreateAt == nil {
            continue
        }
        grouper.Add(analytics.BucketKey(*o.CreateAt, g), o.TotalPrice)
    }

    rows := make([]Report, 0, len(grouper.Keys()))
    var totalSales, totalOrders int64
    for _, period := range grouper.Keys() {
        sales, count := grouper.Sum(period), grouper.Count(period)
        avg := 0.0
        if count > 0 {
            avg = analytics.Round2(float64(sales) / float64(count))
        }
        rows = append(rows, Report{"period": period, "sales": sales, "orders": count, "avgOrderValue": avg})
        totalSales += sales
        totalOrders += count
    }

    avgOrder := 0.0
    if totalOrders > 0 {
        avgOrder = analytics.Round2(float64(totalSales) / float64(totalOrders))
    }
    return liveReport(Report{
        "data":        rows,
        "granularity": string(g),
        "summary": Report{
            "totalSales":    totalSales,
            "totalOrders":   totalOrders,
            "avgOrderValue": avgOrder,
        },
    })
}

func (s *reportService) Revenue(ctx context.Context, g analytics.Granularity, days int) Report {
    start, end := s.window(days)
    orders, err := s.orders.ListCreatedBetween(ctx, start, end)
    if err != nil {
        reportFailure("revenue", err)
        return syntheticReport(Report{"data": syntheticTrendRows(days, s.now()), "granularity": string(g)})
    }

    grouper := analytics.NewGrouper[string]()
    grouper.Seed(analytics.SeriesSkeleton(start, end, g)...)
    for _, o := range orders {
        if o.CreateAt == nil {
            continue
        }
        grouper.Add(analytics.BucketKey(*o.CreateAt, g), o.TotalPrice)
    }

    rows := make([]Report, 0, len(grouper.Keys()))
    var total int64
    for _, period := range grouper.Keys() {
        rows = append(rows, Report{"period": period, "revenue": grouper.Sum(period)})
        total += grouper.Sum(period)
    }
    return liveReport(Report{"data": rows, "granularity": string(g), "totalRevenue": total})
}

func (s *reportService) Orders(ctx context.Context, g analytics.Granularity, days int) Report {
    start, end := s.window(days)
    orders, err := s.orders.ListCreatedBetween(ctx, start, end)
    if err != nil {
        reportFailure("orders", err)
        return syntheticReport(Report{"data": syntheticTrendRows(days, s.now()), "granularity": string(g)})
    }

    grouper := analytics.NewGrouper[string]()
    grouper.Seed(analytics.SeriesSkeleton(start, end, g)...)
    for _, o := range orders {
        if o.CreateAt == nil {
            continue
        }
        grouper.Add(analytics.BucketKey(*o.CreateAt, g), o.TotalPrice)
    }

    rows := make([]Report, 0, len(grouper.Keys()))
    var totalOrders, totalRevenue int64
    for _, period := range grouper.Keys() {
        rows = append(rows, Report{"period": period, "orders": grouper.Count(period), "revenue": grouper.Sum(period)})
        totalOrders += grouper.Count(period)
        totalRevenue += grouper.Sum(period)
    }
    return liveReport(Report{
        "data":         rows,
        "granularity":  string(g),
        "totalOrders":  totalOrders,
        "totalRevenue": totalRevenue,
    })
}

func (s *reportService) SalesByDateRange(ctx context.Context, start, end time.Time) Report {
    rows, err := s.details.SalesByDateRange(ctx, start, end)
    if err != nil {
        reportFailure("sales-by-date-range", err)
        days := int(end.Sub(start).Hours() / 24)
        return syntheticReport(Report{"data": syntheticTrendRows(days, s.now())})
    }

    data := make([]Report, 0, len(rows))
    var totalQuantity, totalRevenue int64
    for _, r := range rows {
        data = append(data, Report{"date": r.Date, "quantity": r.Quantity, "revenue": r.Revenue})
        totalQuantity += r.Quantity
        totalRevenue += r.Revenue
    }
    avgDaily := 0.0
    if len(rows) > 0 {
        avgDaily = analytics.Round2(float64(totalRevenue) / float64(len(rows)))
    }
    return liveReport(Report{
        "data": data,
        "summary": Report{
            "totalQuantity":   totalQuantity,
            "totalRevenue":    totalRevenue,
            "avgDailyRevenue": avgDaily,
        },
    })
}

func (s *reportService) TopProducts(ctx context.Context, limit, days int) Report {
    details, err := s.details.ListAll(ctx)
    if err != nil {
        reportFailure("top-products", err)
        return syntheticReport(Report{"data": []Report{}})
    }

    // days > 0 时仅统计窗口内订单的明细
    var allowed map[int64]struct{}
    if days > 0 {
        start, end := s.window(days)
        orders, err := s.orders.ListCreatedBetween(ctx, start, end)
        if err != nil {
            reportFailure("top-products", err)
            return syntheticReport(Report{"data": []Report{}})
        }
        allowed = make(map[int64]struct{}, len(orders))
        for _, o := range orders {
            allowed[o.ID] = struct{}{}
        }
    }

    qty := analytics.NewGrouper[string]()
    revenue := analytics.NewGrouper[string]()
    price := make(map[string]int64)
    category := make(map[string]string)
    for _, line := range toLineRecords(details) {
        if line.ProductName == "" {
            continue
        }
        if allowed != nil {
            if _, ok := allowed[line.OrderID]; !ok {
                continue
            }
        }
        qty.Add(line.ProductName, int64(line.Quantity))
        revenue.Add(line.ProductName, line.SubTotal())
        if _, ok := price[line.ProductName]; !ok {
            price[line.ProductName] = line.UnitPrice
        }
        if line.CategoryName != "" {
            category[line.ProductName] = line.CategoryName
        }
    }

    rows := make([]Report, 0, len(qty.Keys()))
    for _, name := range qty.Keys() {
        cat := category[name]
        if cat == "" {
            cat = model.UncategorizedName
        }
        rows = append(rows, Report{
            "name":         name,
            "totalSold":    qty.Sum(name),
            "totalRevenue": revenue.Sum(name),
            "price":        price[name],
            "category":     cat,
        })
    }
    sort.SliceStable(rows, func(i, j int) bool {
        return rows[i]["totalSold"].(int64) > rows[j]["totalSold"].(int64)
    })
    if limit > 0 && len(rows) > limit {
        rows = rows[:limit]
    }
    return liveReport(Report{"data": rows})
}

func (s *reportService) ProductPerformance(ctx context.Context) Report {
    details, err := s.details.ListAll(ctx)
    if err != nil {
        reportFailure("product-performance", err)
        return syntheticReport(Report{"data": []Report{}})
    }
    orders, err := s.orders.ListAll(ctx)
    if err != nil {
        reportFailure("product-performance", err)
        return syntheticReport(Report{"data": []Report{}})
    }
    catalog, err := s.products.ListAll(ctx)
    if err != nil {
        reportFailure("product-performance", err)
        return syntheticReport(Report{"data": []Report{}})
    }

    orderCustomer := make(map[int64]int64, len(orders))
    for _, o := range orders {
        if o.UserID != nil {
            orderCustomer[o.ID] = *o.UserID
        }
    }

    // 先按商品表铺底，让零销量商品也出现在报表里
    qty := analytics.NewGrouper[string]()
    revenue := analytics.NewGrouper[string]()
    buyers := analytics.NewGrouper[string]()
    productID := make(map[string]int64, len(catalog))
    category := make(map[string]string, len(catalog))
    for _, p := range catalog {
        qty.Seed(p.Name)
        revenue.Seed(p.Name)
        productID[p.Name] = p.ID
        if p.Category != nil {
            category[p.Name] = p.Category.Name
        }
    }
    for _, line := range toLineRecords(details) {
        if line.ProductName == "" {
            continue
        }
        qty.Add(line.ProductName, int64(line.Quantity))
        revenue.Add(line.ProductName, line.SubTotal())
        if uid, ok := orderCustomer[line.OrderID]; ok {
            buyers.AddDistinct(line.ProductName, uid)
        }
        if line.ProductID != nil {
            if _, ok := productID[line.ProductName]; !ok {
                productID[line.ProductName] = *line.ProductID
            }
        }
        if line.CategoryName != "" && category[line.ProductName] == "" {
            category[line.ProductName] = line.CategoryName
        }
    }

    rows := make([]Report, 0, len(qty.Keys()))
    for _, name := range qty.Keys() {
        cat := category[name]
        if cat == "" {
            cat = model.UncategorizedName
        }
        rows = append(rows, Report{
            "productId":     productID[name],
            "name":          name,
            "category":      cat,
            "quantitySold":  qty.Sum(name),
            "revenue":       revenue.Sum(name),
            "uniqueBuyers":  buyers.Distinct(name),
        })
    }
    sort.SliceStable(rows, func(i, j int) bool {
        return rows[i]["revenue"].(int64) > rows[j]["revenue"].(int64)
    })
    return liveReport(Report{"data": rows})
}

func (s *reportService) UserGrowth(ctx context.Context, days int) Report {
    users, err := s.users.ListAll(ctx)
    if err != nil {
        reportFailure("user-growth", err)
        return syntheticReport(Report{"data": []Report{}})
    }

    start, end := s.window(days)
    grouper := analytics.NewGrouper[string]()
    grouper.Seed(analytics.SeriesSkeleton(start, end, analytics.GranularityDaily)...)
    var before int64
    for _, u := range users {
        if u.CreateAt == nil {
            continue
        }
        if u.CreateAt.Before(start) {
            before++
            continue
        }
        if u.CreateAt.Before(end) {
            grouper.Add(analytics.BucketKey(*u.CreateAt, analytics.GranularityDaily), 1)
        }
    }

    rows := make([]Report, 0, len(grouper.Keys()))
    running := before
    for _, day := range grouper.Keys() {
        running += grouper.Count(day)
        rows = append(rows, Report{"date": day, "newUsers": grouper.Count(day), "totalUsers": running})
    }
    return liveReport(Report{"data": rows, "totalUsers": running})
}

func (s *reportService) Customers(ctx context.Context, days int) Report {
    users, err := s.users.ListAll(ctx)
    if err != nil {
        reportFailure("customers", err)
        return syntheticReport(Report{"data": []Report{}})
    }
    orders, err := s.orders.ListAll(ctx)
    if err != nil {
        reportFailure("customers", err)
        return syntheticReport(Report{"data": []Report{}})
    }

    start, end := s.window(days)
    grouper := analytics.NewGrouper[string]()
    grouper.Seed(analytics.SeriesSkeleton(start, end, analytics.GranularityDaily)...)
    for _, u := range users {
        if u.CreateAt == nil || u.CreateAt.Before(start) || !u.CreateAt.Before(end) {
            continue
        }
        grouper.Add(analytics.BucketKey(*u.CreateAt, analytics.GranularityDaily), 1)
    }
    rows := make([]Report, 0, len(grouper.Keys()))
    for _, day := range grouper.Keys() {
        rows = append(rows, Report{"date": day, "newCustomers": grouper.Count(day)})
    }

    ordersPer := make(map[int64]int)
    for _, o := range orders {
        if o.UserID != nil {
            ordersPer[*o.UserID]++
        }
    }
    var repeat int64
    for _, n := range ordersPer {
        if n >= 2 {
            repeat++
        }
    }
    withOrders := int64(len(ordersPer))
    retention := 0.0
    if withOrders > 0 {
        retention = analytics.Round2(float64(repeat) * 100 / float64(withOrders))
    }
    return liveReport(Report{
        "data": rows,
        "summary": Report{
            "totalCustomers":      int64(len(users)),
            "customersWithOrders": withOrders,
            "repeatCustomers":     repeat,
            "retentionRate":       retention,
        },
    })
}

func (s *reportService) CustomerRetention(ctx context.Context) Report {
    orders, err := s.orders.ListAll(ctx)
    if err != nil {
        reportFailure("customer-retention", err)
        return syntheticReport(Report{"data": []Report{}})
    }

    ordersPer := make(map[int64]int)
    for _, o := range orders {
        if o.UserID != nil {
            ordersPer[*o.UserID]++
        }
    }

    // 购买频次直方图：1..5 与 5+
    histogram := map[string]int64{"1": 0, "2": 0, "3": 0, "4": 0, "5": 0, "5+": 0}
    var oneTime, repeat, totalOrders int64
    for _, n := range ordersPer {
        totalOrders += int64(n)
        if n == 1 {
            oneTime++
        } else {
            repeat++
        }
        switch {
        case n <= 5:
            histogram[strconv.Itoa(n)]++
        default:
            histogram["5+"]++
        }
    }

    customers := int64(len(ordersPer))
    avgOrders, retention := 0.0, 0.0
    if customers > 0 {
        avgOrders = analytics.Round2(float64(totalOrders) / float64(customers))
        retention = analytics.Round2(float64(repeat) * 100 / float64(customers))
    }
    return liveReport(Report{
        "oneTimeCustomers":     oneTime,
        "repeatCustomers":      repeat,
        "purchaseFrequency":    histogram,
        "avgOrdersPerCustomer": avgOrders,
        "retentionRate":        retention,
    })
}

func (s *reportService) CustomerInsights(ctx context.Context) Report {
    rows, err := s.details.CustomerPurchaseFrequency(ctx)
    if err != nil {
        reportFailure("customer-insights", err)
        return syntheticReport(Report{"data": syntheticInsightRows()})
    }
    if len(rows) == 0 {
        return syntheticReport(Report{"data": syntheticInsightRows()})
    }

    data := make([]Report, 0, len(rows))
    var totalSpent, totalOrders int64
    for _, r := range rows {
        avg := int64(0)
        if r.OrderCount > 0 {
            avg = r.TotalSpent / r.OrderCount
        }
        data = append(data, Report{
            "userId":        r.UserID,
            "username":      r.Username,
            "orderCount":    r.OrderCount,
            "totalSpent":    r.TotalSpent,
            "avgOrderValue": avg,
        })
        totalSpent += r.TotalSpent
        totalOrders += r.OrderCount
    }
    n := int64(len(rows))
    return liveReport(Report{
        "data": data,
        "metrics": Report{
            "totalCustomers":       n,
            "avgOrdersPerCustomer": analytics.Round2(float64(totalOrders) / float64(n)),
            "avgCustomerValue":     totalSpent / n,
        },
    })
}

func (s *reportService) OrderStatusDistribution(ctx context.Context) Report {
    counts, err := s.orders.CountByStatus(ctx)
    if err != nil {
        reportFailure("order-status", err)
        return syntheticReport(Report{"data": []Report{}})
    }

    var total int64
    for _, c := range counts {
        total += c.Count
    }
    rows := make([]Report, 0, len(counts))
    for _, c := range counts {
        pct := 0.0
        if total > 0 {
            pct = analytics.Round1(float64(c.Count) * 100 / float64(total))
        }
        rows = append(rows, Report{"status": c.Status, "count": c.Count, "percentage": pct})
    }
    return liveReport(Report{"data": rows, "totalOrders": total})
}

func (s *reportService) SalesByHour(ctx context.Context) Report {
    rows, err := s.details.SalesByHour(ctx)
    if err != nil {
        reportFailure("sales-by-hour", err)
        return syntheticReport(Report{"data": []Report{}})
    }
    data := make([]Report, 0, len(rows))
    for _, r := range rows {
        data = append(data, Report{"hour": r.Hour, "orders": r.OrderCount, "revenue": r.Revenue})
    }
    return liveReport(Report{"data": data})
}

func (s *reportService) ExportReport(ctx context.Context, days int, format string) (string, string, []byte, error) {
    start, end := s.window(days)
    orders, err := s.orders.ListCreatedBetween(ctx, start, end)
    if err != nil {
        return "", "", nil, fmt.Errorf("export report: %w", err)
    }

    grouper := analytics.NewGrouper[string]()
    grouper.Seed(analytics.SeriesSkeleton(start, end, analytics.GranularityDaily)...)
    for _, o := range orders {
        if o.CreateAt == nil {
            continue
        }
        grouper.Add(analytics.BucketKey(*o.CreateAt, analytics.GranularityDaily), o.TotalPrice)
    }

    stamp := s.now().Format("2006-01-02")
    if format == "csv" {
        var buf bytes.Buffer
        w := csv.NewWriter(&buf)
        _ = w.Write([]string{"date", "orders", "revenue"})
        for _, day := range grouper.Keys() {
            _ = w.Write([]string{
                day,
                strconv.FormatInt(grouper.Count(day), 10),
                strconv.FormatInt(grouper.Sum(day), 10),
            })
        }
        w.Flush()
        if err := w.Error(); err != nil {
            return "", "", nil, fmt.Errorf("export report: %w", err)
        }
        return "text/csv", fmt.Sprintf("sales-report-%s.csv", stamp), buf.Bytes(), nil
    }

    rows := make([]Report, 0, len(grouper.Keys()))
    for _, day := range grouper.Keys() {
        rows = append(rows, Report{"date": day, "orders": grouper.Count(day), "revenue": grouper.Sum(day)})
    }
    body, err := json.Marshal(liveReport(Report{"data": rows}))
    if err != nil {
        return "", "", nil, fmt.Errorf("export report: %w", err)
    }
    return "application/json", fmt.Sprintf("sales-report-%s.json", stamp), body, nil
}
