package handler

import (
    "fmt"
    "time"

    "github.com/gin-gonic/gin"

    "github.com/d60-Lab/shop-analytics/internal/analytics"
    "github.com/d60-Lab/shop-analytics/pkg/response"
)

const dateLayout = "2006-01-02"

// seriesQuery 序列类报表的公共查询参数；granularity 由自定义校验器兜底
type seriesQuery struct {
    Granularity string `form:"granularity" binding:"omitempty,granularity"`
    Timeframe   string `form:"timeframe" binding:"omitempty,granularity"`
    Timespan    string `form:"timespan"`
}

// seriesParams 解析粒度与时间窗口，非法值报 400
func seriesParams(c *gin.Context, defDays int) (analytics.Granularity, int, bool) {
    var q seriesQuery
    if err := c.ShouldBindQuery(&q); err != nil {
        response.BadRequest(c, err.Error())
        return "", 0, false
    }
    raw := q.Granularity
    if raw == "" {
        raw = q.Timeframe
    }
    g, err := analytics.ParseGranularity(raw)
    if err != nil {
        response.BadRequest(c, err.Error())
        return "", 0, false
    }
    return g, parseTimespan(q.Timespan, defDays), true
}

// SalesTrends 销售趋势
// @Summary 销售趋势（按粒度分桶的销售额/订单数序列）
// @Tags 销售分析
// @Produce json
// @Param granularity query string false "daily/weekly/monthly" default(daily)
// @Param timespan query string false "时间窗口，如 30d/week/month" default(30d)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/analytics/sales-trends [get]
func (h *Handler) SalesTrends(c *gin.Context) {
    g, days, ok := seriesParams(c, 30)
    if !ok {
        return
    }
    response.Success(c, h.reports.SalesTrends(c.Request.Context(), g, days))
}

// Revenue 营收序列
// @Summary 营收序列
// @Tags 销售分析
// @Produce json
// @Param granularity query string false "daily/weekly/monthly" default(daily)
// @Param timespan query string false "时间窗口" default(30d)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/analytics/revenue [get]
func (h *Handler) Revenue(c *gin.Context) {
    g, days, ok := seriesParams(c, 30)
    if !ok {
        return
    }
    response.Success(c, h.reports.Revenue(c.Request.Context(), g, days))
}

// Orders 订单量序列
// @Summary 订单量与营收序列
// @Tags 销售分析
// @Produce json
// @Param granularity query string false "daily/weekly/monthly" default(daily)
// @Param timespan query string false "时间窗口" default(30d)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/analytics/orders [get]
func (h *Handler) Orders(c *gin.Context) {
    g, days, ok := seriesParams(c, 30)
    if !ok {
        return
    }
    response.Success(c, h.reports.Orders(c.Request.Context(), g, days))
}

// SalesByDateRange 区间内按天销量
// @Summary 指定日期区间的按天销量/营收
// @Tags 销售分析
// @Produce json
// @Param startDate query string true "起始日期 2006-01-02"
// @Param endDate query string true "结束日期 2006-01-02"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/analytics/sales-by-date [get]
func (h *Handler) SalesByDateRange(c *gin.Context) {
    start, err := time.Parse(dateLayout, c.Query("startDate"))
    if err != nil {
        response.BadRequest(c, fmt.Sprintf("invalid startDate: %v", err))
        return
    }
    end, err := time.Parse(dateLayout, c.Query("endDate"))
    if err != nil {
        response.BadRequest(c, fmt.Sprintf("invalid endDate: %v", err))
        return
    }
    // 右端按闭区间语义补一天
    response.Success(c, h.reports.SalesByDateRange(c.Request.Context(), start, end.AddDate(0, 0, 1)))
}

// TopProducts 热销商品
// @Summary 热销商品 TOP N
// @Tags 销售分析
// @Produce json
// @Param limit query int false "数量" default(10)
// @Param timespan query string false "时间窗口，缺省为全时段"
// @Success 200 {object} response.Response
// @Router /api/analytics/top-products [get]
func (h *Handler) TopProducts(c *gin.Context) {
    limit := parseIntDefault(c.Query("limit"), 10)
    days := parseTimespan(c.Query("timespan"), 0)
    response.Success(c, h.reports.TopProducts(c.Request.Context(), limit, days))
}

// ProductPerformance 商品表现
// @Summary 商品表现（销量/营收/独立买家）
// @Tags 销售分析
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/analytics/product-performance [get]
func (h *Handler) ProductPerformance(c *gin.Context) {
    response.Success(c, h.reports.ProductPerformance(c.Request.Context()))
}

// UserGrowth 用户增长
// @Summary 用户增长（按天新增与累计）
// @Tags 用户分析
// @Produce json
// @Param days query int false "时间窗口天数" default(30)
// @Success 200 {object} response.Response
// @Router /api/analytics/user-growth [get]
func (h *Handler) UserGrowth(c *gin.Context) {
    days := parseIntDefault(c.Query("days"), 30)
    response.Success(c, h.reports.UserGrowth(c.Request.Context(), days))
}

// Customers 客户概览
// @Summary 客户增长与复购概览
// @Tags 用户分析
// @Produce json
// @Param timespan query string false "时间窗口" default(30d)
// @Success 200 {object} response.Response
// @Router /api/analytics/customers [get]
func (h *Handler) Customers(c *gin.Context) {
    days := parseTimespan(c.Query("timespan"), 30)
    response.Success(c, h.reports.Customers(c.Request.Context(), days))
}

// CustomerRetention 客户留存
// @Summary 复购留存与购买频次直方图
// @Tags 用户分析
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/analytics/customer-retention [get]
func (h *Handler) CustomerRetention(c *gin.Context) {
    response.Success(c, h.reports.CustomerRetention(c.Request.Context()))
}

// CustomerInsights 客户画像
// @Summary 客户消费画像
// @Tags 用户分析
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/analytics/customer-insights [get]
func (h *Handler) CustomerInsights(c *gin.Context) {
    response.Success(c, h.reports.CustomerInsights(c.Request.Context()))
}

// OrderStatusDistribution 订单状态分布
// @Summary 订单状态分布
// @Tags 销售分析
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/analytics/order-status [get]
func (h *Handler) OrderStatusDistribution(c *gin.Context) {
    response.Success(c, h.reports.OrderStatusDistribution(c.Request.Context()))
}

// SalesByHour 分时销量
// @Summary 一天内按小时的订单/营收分布
// @Tags 销售分析
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/analytics/sales-by-hour [get]
func (h *Handler) SalesByHour(c *gin.Context) {
    response.Success(c, h.reports.SalesByHour(c.Request.Context()))
}

// Traffic 流量报表
// @Summary 站点流量（按天访问/浏览量）
// @Tags 流量分析
// @Produce json
// @Param days query int false "时间窗口天数" default(7)
// @Success 200 {object} response.Response
// @Router /api/analytics/traffic [get]
func (h *Handler) Traffic(c *gin.Context) {
    days := parseIntDefault(c.Query("days"), 7)
    response.Success(c, h.traffic.Report(c.Request.Context(), days))
}

// ExportReport 报表导出
// @Summary 导出销量报表（csv 或 json）
// @Tags 销售分析
// @Produce json
// @Param days query int false "时间窗口天数" default(30)
// @Param format query string false "csv/json" default(csv)
// @Success 200 {file} file
// @Failure 500 {object} response.Response
// @Router /api/analytics/export [get]
func (h *Handler) ExportReport(c *gin.Context) {
    days := parseIntDefault(c.Query("days"), 30)
    format := c.DefaultQuery("format", "csv")
    contentType, filename, body, err := h.reports.ExportReport(c.Request.Context(), days, format)
    if err != nil {
        response.InternalError(c, err)
        return
    }
    c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
    c.Data(200, contentType, body)
}
