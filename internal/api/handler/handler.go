package handler

import (
    "strconv"
    "strings"

    "github.com/d60-Lab/shop-analytics/internal/service"
)

// Handler 聚合全部报表/认证端点
type Handler struct {
    reports   service.ReportService
    advanced  service.AdvancedReportService
    dashboard service.DashboardService
    activity  service.ActivityService
    traffic   service.TrafficService
    auth      service.AuthService
}

// New 创建 Handler
func New(
    reports service.ReportService,
    advanced service.AdvancedReportService,
    dashboard service.DashboardService,
    activity service.ActivityService,
    traffic service.TrafficService,
    auth service.AuthService,
) *Handler {
    return &Handler{
        reports:   reports,
        advanced:  advanced,
        dashboard: dashboard,
        activity:  activity,
        traffic:   traffic,
        auth:      auth,
    }
}

// parseTimespan 时间窗口参数：纯数字按天数，另接受 7d/30d 与 week/month/quarter/year 别名
func parseTimespan(v string, def int) int {
    if v == "" {
        return def
    }
    switch strings.ToLower(v) {
    case "week":
        return 7
    case "month":
        return 30
    case "quarter":
        return 90
    case "year":
        return 365
    }
    v = strings.TrimSuffix(strings.ToLower(v), "d")
    if n, err := strconv.Atoi(v); err == nil && n > 0 {
        return n
    }
    return def
}

func parseIntDefault(v string, def int) int {
    if n, err := strconv.Atoi(v); err == nil && n > 0 {
        return n
    }
    return def
}
