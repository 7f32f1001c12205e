package service

import (
    "fmt"
    "math/rand"
    "time"

    "github.com/getsentry/sentry-go"
    "go.uber.org/zap"

    "github.com/d60-Lab/shop-analytics/pkg/logger"
)

// Report 报表载荷；每个载荷都带 source 标记（live 或 synthetic）
type Report map[string]any

// 数据来源标记
const (
    SourceLive      = "live"
    SourceSynthetic = "synthetic"
)

func liveReport(r Report) Report {
    r["source"] = SourceLive
    return r
}

func syntheticReport(r Report) Report {
    r["source"] = SourceSynthetic
    return r
}

// reportFailure 报表边界的数据源失败：记日志并上报 Sentry，调用方随后回落合成数据
func reportFailure(report string, err error) {
    logger.Error("report source failure", zap.String("report", report), zap.Error(err))
    sentry.CaptureException(fmt.Errorf("report %s: %w", report, err))
}

// ---- 合成数据生成（数据源不可用或为空时的回落展示数据） ----

func syntheticTrendRows(days int, now time.Time) []Report {
    rows := make([]Report, 0, days)
    for i := days - 1; i >= 0; i-- {
        day := now.AddDate(0, 0, -i)
        orders := int64(5 + rand.Intn(25))
        sales := orders * int64(20_000+rand.Intn(60_000))
        rows = append(rows, Report{
            "period": day.Format("2006-01-02"),
            "sales":  sales,
            "orders": orders,
        })
    }
    return rows
}

func syntheticTrafficRows(days int, now time.Time) []Report {
    rows := make([]Report, 0, days)
    for i := days - 1; i >= 0; i-- {
        day := now.AddDate(0, 0, -i)
        visits := int64(500 + rand.Intn(1000))
        rows = append(rows, Report{
            "date":      day.Format("2006-01-02"),
            "visits":    visits,
            "pageViews": visits * int64(3+rand.Intn(3)),
        })
    }
    return rows
}

func syntheticInsightRows() []Report {
    names := []string{"alice", "bob", "carol", "dave", "erin"}
    rows := make([]Report, 0, len(names))
    for i, name := range names {
        orderCount := int64(2 + rand.Intn(8))
        totalSpent := orderCount * int64(150_000+rand.Intn(350_000))
        rows = append(rows, Report{
            "userId":        int64(i + 1),
            "username":      name,
            "orderCount":    orderCount,
            "totalSpent":    totalSpent,
            "avgOrderValue": totalSpent / orderCount,
        })
    }
    return rows
}

func syntheticActivityRows(limit int, now time.Time) []Report {
    samples := []struct {
        typ, title string
    }{
        {"ORDER_CREATED", "New order placed"},
        {"USER_REGISTERED", "New customer registered"},
        {"ORDER_COMPLETED", "Order completed"},
        {"PRODUCT_UPDATED", "Product restocked"},
    }
    if limit <= 0 {
        limit = 10
    }
    rows := make([]Report, 0, limit)
    for i := 0; i < limit; i++ {
        s := samples[i%len(samples)]
        at := now.Add(-time.Duration(i*17+3) * time.Minute)
        rows = append(rows, Report{
            "activityType": s.typ,
            "title":        s.title,
            "description":  "",
            "createdAt":    at,
            "timeAgo":      timeAgo(at, now),
        })
    }
    return rows
}
