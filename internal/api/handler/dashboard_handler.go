package handler

import (
    "github.com/gin-gonic/gin"

    "github.com/d60-Lab/shop-analytics/pkg/response"
)

// DashboardStats 概览卡片
// @Summary 仪表盘总量与环比
// @Tags 仪表盘
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/dashboard/stats [get]
func (h *Handler) DashboardStats(c *gin.Context) {
    response.Success(c, h.dashboard.Stats(c.Request.Context()))
}

// RecentOrders 最近订单
// @Summary 最近订单列表
// @Tags 仪表盘
// @Produce json
// @Param limit query int false "数量" default(10)
// @Success 200 {object} response.Response
// @Router /api/dashboard/recent-orders [get]
func (h *Handler) RecentOrders(c *gin.Context) {
    limit := parseIntDefault(c.Query("limit"), 10)
    response.Success(c, h.dashboard.RecentOrders(c.Request.Context(), limit))
}

// SalesChart 销量图
// @Summary 按天销售额序列（补零）
// @Tags 仪表盘
// @Produce json
// @Param days query int false "时间窗口天数" default(30)
// @Success 200 {object} response.Response
// @Router /api/dashboard/sales-chart [get]
func (h *Handler) SalesChart(c *gin.Context) {
    days := parseIntDefault(c.Query("days"), 30)
    response.Success(c, h.dashboard.SalesChart(c.Request.Context(), days))
}

// CategoryBreakdown 分类占比
// @Summary 分类营收占比
// @Tags 仪表盘
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/dashboard/category-breakdown [get]
func (h *Handler) CategoryBreakdown(c *gin.Context) {
    response.Success(c, h.dashboard.CategoryBreakdown(c.Request.Context()))
}

// DashboardTopProducts 商品榜
// @Summary 按单价倒序的商品榜
// @Tags 仪表盘
// @Produce json
// @Param limit query int false "数量" default(5)
// @Success 200 {object} response.Response
// @Router /api/dashboard/top-products [get]
func (h *Handler) DashboardTopProducts(c *gin.Context) {
    limit := parseIntDefault(c.Query("limit"), 5)
    response.Success(c, h.dashboard.TopProducts(c.Request.Context(), limit))
}

// ActivityFeed 活动流
// @Summary 最近系统活动
// @Tags 仪表盘
// @Produce json
// @Param limit query int false "数量" default(10)
// @Success 200 {object} response.Response
// @Router /api/dashboard/activity [get]
func (h *Handler) ActivityFeed(c *gin.Context) {
    limit := parseIntDefault(c.Query("limit"), 10)
    response.Success(c, h.activity.Recent(c.Request.Context(), limit))
}
