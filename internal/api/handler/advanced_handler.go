package handler

import (
    "github.com/gin-gonic/gin"

    "github.com/d60-Lab/shop-analytics/pkg/response"
)

// RFMAnalysis RFM 分群
// @Summary RFM 客户分群（近度/频度/金额三维）
// @Tags 进阶分析
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/advanced-analytics/rfm [get]
func (h *Handler) RFMAnalysis(c *gin.Context) {
    response.Success(c, h.advanced.RFMAnalysis(c.Request.Context()))
}

// BasketAnalysis 购物篮分析
// @Summary 同单共现商品对 TOP N
// @Tags 进阶分析
// @Produce json
// @Param limit query int false "数量" default(10)
// @Success 200 {object} response.Response
// @Router /api/advanced-analytics/basket [get]
func (h *Handler) BasketAnalysis(c *gin.Context) {
    limit := parseIntDefault(c.Query("limit"), 10)
    response.Success(c, h.advanced.BasketAnalysis(c.Request.Context(), limit))
}

// FunnelAnalysis 转化漏斗
// @Summary 注册-下单-完成转化漏斗
// @Tags 进阶分析
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/advanced-analytics/funnel [get]
func (h *Handler) FunnelAnalysis(c *gin.Context) {
    response.Success(c, h.advanced.FunnelAnalysis(c.Request.Context()))
}

// UserCohortAnalysis 同期群留存
// @Summary 注册月同期群留存矩阵
// @Tags 进阶分析
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/advanced-analytics/cohort [get]
func (h *Handler) UserCohortAnalysis(c *gin.Context) {
    response.Success(c, h.advanced.UserCohortAnalysis(c.Request.Context()))
}

// CustomerLifetimeValue 客户生命周期价值
// @Summary 客户生命周期价值
// @Tags 进阶分析
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/advanced-analytics/clv [get]
func (h *Handler) CustomerLifetimeValue(c *gin.Context) {
    response.Success(c, h.advanced.CustomerLifetimeValue(c.Request.Context()))
}

// SeasonalTrends 季节趋势
// @Summary 按季度的营收/订单/客户数
// @Tags 进阶分析
// @Produce json
// @Param years query int false "回看年数" default(1)
// @Success 200 {object} response.Response
// @Router /api/advanced-analytics/seasonal-trends [get]
func (h *Handler) SeasonalTrends(c *gin.Context) {
    years := parseIntDefault(c.Query("years"), 1)
    response.Success(c, h.advanced.SeasonalTrends(c.Request.Context(), years))
}

// CategoryPerformance 分类表现
// @Summary 分类营收与占比
// @Tags 进阶分析
// @Produce json
// @Param timespan query string false "时间窗口" default(30d)
// @Success 200 {object} response.Response
// @Router /api/advanced-analytics/category-performance [get]
func (h *Handler) CategoryPerformance(c *gin.Context) {
    days := parseTimespan(c.Query("timespan"), 30)
    response.Success(c, h.advanced.CategoryPerformance(c.Request.Context(), days))
}

// DayHourHeatmap 下单热力图
// @Summary 星期 × 小时下单热力矩阵
// @Tags 进阶分析
// @Produce json
// @Param days query int false "时间窗口天数" default(30)
// @Success 200 {object} response.Response
// @Router /api/advanced-analytics/day-hour-heatmap [get]
func (h *Handler) DayHourHeatmap(c *gin.Context) {
    days := parseIntDefault(c.Query("days"), 30)
    response.Success(c, h.advanced.DayHourHeatmap(c.Request.Context(), days))
}

// OrderCompletionRate 订单完成率
// @Summary 按天订单完成/取消率
// @Tags 进阶分析
// @Produce json
// @Param days query int false "时间窗口天数" default(30)
// @Success 200 {object} response.Response
// @Router /api/advanced-analytics/order-completion [get]
func (h *Handler) OrderCompletionRate(c *gin.Context) {
    days := parseIntDefault(c.Query("days"), 30)
    response.Success(c, h.advanced.OrderCompletionRate(c.Request.Context(), days))
}
