package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Handler) health(c *gin.Context) {
	dbStatus := "not_configured"
	if h.db != nil {
		if err := h.db.PingContext(c.Request.Context()); err != nil {
			dbStatus = "error"
		} else {
			dbStatus = "connected"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"db":     dbStatus,
		"uptime": time.Since(h.startedAt).Seconds(),
	})
}

type notifyOwnerRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

func (h *Handler) notifyOwner(c *gin.Context) {
	var req notifyOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, badRequest(err))
		return
	}

	delivered, err := h.notifier.NotifyOwner(c.Request.Context(), req.Title, req.Content)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": delivered})
}
