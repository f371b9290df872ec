package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sellerdesk/internal/domain"
)

type AnalyticsPointResponse struct {
	Date            string          `json:"date"`
	Platform        domain.Platform `json:"platform"`
	OrdersCount     int             `json:"ordersCount"`
	Revenue         string          `json:"revenue"`
	PostsCount      int             `json:"postsCount"`
	TotalEngagement int             `json:"totalEngagement"`
}

func (h *Handler) salesData(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	points, err := h.analytics.SalesData(c.Request.Context(), userFrom(c).ID, days)
	if err != nil {
		abortWithError(c, err)
		return
	}

	resp := make([]AnalyticsPointResponse, len(points))
	for i, p := range points {
		resp[i] = AnalyticsPointResponse{
			Date:            formatTime(p.Date),
			Platform:        p.Platform,
			OrdersCount:     p.OrdersCount,
			Revenue:         p.Revenue,
			PostsCount:      p.PostsCount,
			TotalEngagement: p.TotalEngagement,
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) platformStats(c *gin.Context) {
	stats, err := h.analytics.PlatformStats(c.Request.Context(), userFrom(c).ID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) dashboardStats(c *gin.Context) {
	stats, err := h.analytics.DashboardStats(c.Request.Context(), userFrom(c).ID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

type ActivityEntryResponse struct {
	ID          int64  `json:"id"`
	Action      string `json:"action"`
	EntityType  string `json:"entityType"`
	EntityID    int64  `json:"entityId"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
}

func (h *Handler) activityFeed(c *gin.Context) {
	entries, err := h.analytics.ActivityFeed(c.Request.Context(), userFrom(c).ID, 20)
	if err != nil {
		abortWithError(c, err)
		return
	}

	resp := make([]ActivityEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = ActivityEntryResponse{
			ID:          e.ID,
			Action:      e.Action,
			EntityType:  e.EntityType,
			EntityID:    e.EntityID,
			Description: e.Description,
			CreatedAt:   formatTime(e.CreatedAt),
		}
	}
	c.JSON(http.StatusOK, resp)
}
