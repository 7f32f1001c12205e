package main

import (
    "context"
    "fmt"
    "math"
    "math/rand"
    "os"
    "sort"
    "strconv"
    "time"

    "gorm.io/driver/sqlite"
    "gorm.io/gorm"
    gormlogger "gorm.io/gorm/logger"

    "github.com/d60-Lab/shop-analytics/internal/analytics"
    "github.com/d60-Lab/shop-analytics/internal/model"
    "github.com/d60-Lab/shop-analytics/internal/repository"
    "github.com/d60-Lab/shop-analytics/internal/service"
)

func must[T any](v T, err error) T { if err != nil { panic(err) }; return v }

func envInt(name string, def int) int {
    if s := os.Getenv(name); s != "" {
        if n, err := strconv.Atoi(s); err == nil && n > 0 { return n }
    }
    return def
}

func main() {
    USERS := envInt("USERS", 2000)
    ORDERS := envInt("ORDERS", 20000)
    PRODUCTS := envInt("PRODUCTS", 200)
    ITERS := envInt("ITERS", 20)

    db := must(gorm.Open(sqlite.Open("file:reportbench?mode=memory&cache=shared"), &gorm.Config{
        Logger: gormlogger.Default.LogMode(gormlogger.Silent),
    }))
    if err := repository.InitSchema(db); err != nil { panic(err) }

    rand.Seed(42)
    now := time.Now()

    // seed categories & products
    cats := []string{"Fruits", "Vegetables", "Dairy", "Bakery", "Beverages"}
    for i, name := range cats {
        _ = db.Create(&model.Category{ID: int64(i + 1), Name: name}).Error
    }
    for i := 1; i <= PRODUCTS; i++ {
        cid := int64(rand.Intn(len(cats)) + 1)
        _ = db.Create(&model.Product{
            ID: int64(i), Name: fmt.Sprintf("product-%04d", i),
            Price: int64(1_000 + rand.Intn(50_000)), Quantity: rand.Intn(200), CategoryID: &cid,
        }).Error
    }

    // seed users spread over the past year
    users := make([]model.User, USERS)
    for i := range users {
        at := now.AddDate(0, 0, -rand.Intn(365))
        users[i] = model.User{
            ID: int64(i + 1), Username: fmt.Sprintf("user-%05d", i+1),
            Email: fmt.Sprintf("user-%05d@example.com", i+1), CreateAt: &at,
        }
    }
    for i := 0; i < USERS; i += 500 {
        end := i + 500
        if end > USERS { end = USERS }
        sub := users[i:end]
        _ = db.Create(&sub).Error
    }

    // seed orders with 1..5 lines each
    statuses := []string{
        model.OrderStatusPending, model.OrderStatusProcessing,
        model.OrderStatusShipping, model.OrderStatusCompleted, model.OrderStatusCancelled,
    }
    orders := make([]model.Order, 0, 500)
    details := make([]model.OrderDetail, 0, 1500)
    var detailID int64
    for i := 1; i <= ORDERS; i++ {
        uid := int64(rand.Intn(USERS) + 1)
        at := now.AddDate(0, 0, -rand.Intn(365)).Add(time.Duration(rand.Intn(24)) * time.Hour)
        var total int64
        lines := rand.Intn(5) + 1
        for j := 0; j < lines; j++ {
            pid := int64(rand.Intn(PRODUCTS) + 1)
            price := int64(1_000 + rand.Intn(50_000))
            qty := rand.Intn(4) + 1
            detailID++
            details = append(details, model.OrderDetail{
                ID: detailID, OrderID: int64(i), ProductID: &pid,
                Name: fmt.Sprintf("product-%04d", pid), Price: price, Quantity: qty,
            })
            total += price * int64(qty)
        }
        orders = append(orders, model.Order{
            ID: int64(i), UserID: &uid, TotalPrice: total,
            Status: statuses[rand.Intn(len(statuses))], CreateAt: &at,
        })
        if len(orders) == 500 {
            _ = db.Create(&orders).Error
            _ = db.Create(&details).Error
            orders = orders[:0]
            details = details[:0]
        }
    }
    if len(orders) > 0 {
        _ = db.Create(&orders).Error
        _ = db.Create(&details).Error
    }

    orderRepo := repository.NewOrderRepository(db)
    detailRepo := repository.NewOrderDetailRepository(db)
    userRepo := repository.NewUserRepository(db)
    productRepo := repository.NewProductRepository(db)
    reports := service.NewReportService(orderRepo, detailRepo, userRepo, productRepo)
    advanced := service.NewAdvancedReportService(orderRepo, detailRepo, userRepo)

    ctx := context.Background()
    benches := []struct {
        name string
        run  func()
    }{
        {"sales-trends/daily-30d", func() { _ = reports.SalesTrends(ctx, analytics.GranularityDaily, 30) }},
        {"sales-trends/monthly-365d", func() { _ = reports.SalesTrends(ctx, analytics.GranularityMonthly, 365) }},
        {"top-products", func() { _ = reports.TopProducts(ctx, 10, 0) }},
        {"customer-retention", func() { _ = reports.CustomerRetention(ctx) }},
        {"rfm", func() { _ = advanced.RFMAnalysis(ctx) }},
        {"basket", func() { _ = advanced.BasketAnalysis(ctx, 10) }},
        {"cohort", func() { _ = advanced.UserCohortAnalysis(ctx) }},
        {"day-hour-heatmap", func() { _ = advanced.DayHourHeatmap(ctx, 30) }},
    }

    pct := func(vs []time.Duration, p float64) time.Duration {
        if len(vs) == 0 { return 0 }
        xs := append([]time.Duration(nil), vs...)
        sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
        k := int(math.Ceil(p*float64(len(xs)))) - 1
        if k < 0 { k = 0 }
        if k >= len(xs) { k = len(xs) - 1 }
        return xs[k]
    }

    fmt.Printf("USERS=%d, ORDERS=%d, PRODUCTS=%d, ITERS=%d\n", USERS, ORDERS, PRODUCTS, ITERS)
    for _, b := range benches {
        samples := make([]time.Duration, 0, ITERS)
        for i := 0; i < ITERS; i++ {
            st := time.Now()
            b.run()
            samples = append(samples, time.Since(st))
        }
        var total time.Duration
        for _, d := range samples { total += d }
        fmt.Printf("%-28s avg=%-12v p50=%-12v p95=%-12v p99=%v\n",
            b.name, total/time.Duration(len(samples)), pct(samples, 0.50), pct(samples, 0.95), pct(samples, 0.99))
    }
}
