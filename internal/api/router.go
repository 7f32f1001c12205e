package api

import (
    "net/http"

    "github.com/gin-contrib/gzip"
    "github.com/gin-gonic/gin"
    "github.com/gin-gonic/gin/binding"
    "github.com/go-playground/validator/v10"
    swaggerFiles "github.com/swaggo/files"
    ginSwagger "github.com/swaggo/gin-swagger"
    "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

    "github.com/d60-Lab/shop-analytics/internal/analytics"
    "github.com/d60-Lab/shop-analytics/internal/api/handler"
    "github.com/d60-Lab/shop-analytics/internal/api/middleware"
)

// RouterConfig 路由层配置
type RouterConfig struct {
    JWTSecret     string
    RateRPS       float64
    RateBurst     int
    EnableTracing bool
}

// registerValidations 注册自定义 binding 校验器
func registerValidations() {
    v, ok := binding.Validator.Engine().(*validator.Validate)
    if !ok {
        return
    }
    _ = v.RegisterValidation("granularity", func(fl validator.FieldLevel) bool {
        _, err := analytics.ParseGranularity(fl.Field().String())
        return err == nil
    })
}

// NewRouter 组装全部路由与中间件
func NewRouter(h *handler.Handler, cfg RouterConfig) *gin.Engine {
    registerValidations()

    r := gin.New()
    r.Use(gin.Recovery())
    r.Use(middleware.RequestID())
    r.Use(gzip.Gzip(gzip.DefaultCompression))
    if cfg.EnableTracing {
        r.Use(otelgin.Middleware("shop-analytics"))
    }
    r.Use(middleware.RateLimit(cfg.RateRPS, cfg.RateBurst))

    r.GET("/healthz", func(c *gin.Context) {
        c.JSON(http.StatusOK, gin.H{"status": "ok"})
    })
    r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

    r.POST("/api/auth/login", h.Login)

    guard := middleware.AdminAuth(cfg.JWTSecret)

    reports := r.Group("/api/analytics", guard)
    {
        reports.GET("/sales-trends", h.SalesTrends)
        reports.GET("/revenue", h.Revenue)
        reports.GET("/orders", h.Orders)
        reports.GET("/sales-by-date", h.SalesByDateRange)
        reports.GET("/top-products", h.TopProducts)
        reports.GET("/product-performance", h.ProductPerformance)
        reports.GET("/user-growth", h.UserGrowth)
        reports.GET("/customers", h.Customers)
        reports.GET("/customer-retention", h.CustomerRetention)
        reports.GET("/customer-insights", h.CustomerInsights)
        reports.GET("/order-status", h.OrderStatusDistribution)
        reports.GET("/sales-by-hour", h.SalesByHour)
        reports.GET("/traffic", h.Traffic)
        reports.GET("/export", h.ExportReport)
    }

    advanced := r.Group("/api/advanced-analytics", guard)
    {
        advanced.GET("/rfm", h.RFMAnalysis)
        advanced.GET("/basket", h.BasketAnalysis)
        advanced.GET("/funnel", h.FunnelAnalysis)
        advanced.GET("/cohort", h.UserCohortAnalysis)
        advanced.GET("/clv", h.CustomerLifetimeValue)
        advanced.GET("/seasonal-trends", h.SeasonalTrends)
        advanced.GET("/category-performance", h.CategoryPerformance)
        advanced.GET("/day-hour-heatmap", h.DayHourHeatmap)
        advanced.GET("/order-completion", h.OrderCompletionRate)
    }

    dashboard := r.Group("/api/dashboard", guard)
    {
        dashboard.GET("/stats", h.DashboardStats)
        dashboard.GET("/recent-orders", h.RecentOrders)
        dashboard.GET("/sales-chart", h.SalesChart)
        dashboard.GET("/category-breakdown", h.CategoryBreakdown)
        dashboard.GET("/top-products", h.DashboardTopProducts)
        dashboard.GET("/activity", h.ActivityFeed)
    }

    return r
}
