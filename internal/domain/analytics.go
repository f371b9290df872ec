package domain

import "time"

const PlatformOverall Platform = "overall"

// AnalyticsPoint is a per-day rollup of sales and engagement for one
// platform (or the "overall" aggregate).
type AnalyticsPoint struct {
	ID              int64
	UserID          int64
	Date            time.Time
	Platform        Platform
	OrdersCount     int
	Revenue         string
	PostsCount      int
	TotalEngagement int
	CreatedAt       time.Time
}

// PlatformStats summarizes order volume and revenue for one platform,
// computed on demand from the orders table.
type PlatformStats struct {
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// DashboardStats backs the landing page summary cards.
type DashboardStats struct {
	TotalProducts int     `json:"totalProducts"`
	LowStockCount int     `json:"lowStockCount"`
	TodayOrders   int     `json:"todayOrders"`
	TodayRevenue  float64 `json:"todayRevenue"`
}
