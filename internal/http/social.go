package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sellerdesk/internal/apperr"
	"sellerdesk/internal/domain"
	"sellerdesk/internal/service"
)

// SocialConnectionResponse omits the stored tokens: the dashboard only
// needs to know which accounts are linked.
type SocialConnectionResponse struct {
	ID             int64           `json:"id"`
	Platform       domain.Platform `json:"platform"`
	AccountID      string          `json:"accountId"`
	AccountName    string          `json:"accountName"`
	TokenExpiresAt *string         `json:"tokenExpiresAt,omitempty"`
	IsConnected    bool            `json:"isConnected"`
	CreatedAt      string          `json:"createdAt"`
	UpdatedAt      string          `json:"updatedAt"`
}

func connectionToResponse(conn domain.SocialConnection) SocialConnectionResponse {
	return SocialConnectionResponse{
		ID:             conn.ID,
		Platform:       conn.Platform,
		AccountID:      conn.AccountID,
		AccountName:    conn.AccountName,
		TokenExpiresAt: formatTimePtr(conn.TokenExpiresAt),
		IsConnected:    conn.IsConnected,
		CreatedAt:      formatTime(conn.CreatedAt),
		UpdatedAt:      formatTime(conn.UpdatedAt),
	}
}

func (h *Handler) listConnections(c *gin.Context) {
	connections, err := h.social.List(c.Request.Context(), userFrom(c).ID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	resp := make([]SocialConnectionResponse, len(connections))
	for i := range connections {
		resp[i] = connectionToResponse(connections[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getConnection(c *gin.Context) {
	platform := domain.Platform(c.Param("platform"))

	conn, err := h.social.Get(c.Request.Context(), userFrom(c).ID, platform)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, connectionToResponse(*conn))
}

type connectAccountRequest struct {
	Platform       domain.Platform `json:"platform" binding:"required"`
	AccountID      string          `json:"accountId" binding:"required"`
	AccountName    string          `json:"accountName"`
	AccessToken    string          `json:"accessToken" binding:"required"`
	RefreshToken   string          `json:"refreshToken"`
	TokenExpiresAt *string         `json:"tokenExpiresAt"`
}

func (h *Handler) connectAccount(c *gin.Context) {
	var req connectAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, badRequest(err))
		return
	}

	var expiresAt *time.Time
	if req.TokenExpiresAt != nil {
		t, err := time.Parse(time.RFC3339, *req.TokenExpiresAt)
		if err != nil {
			abortWithError(c, apperr.New(apperr.KindBadRequest, "tokenExpiresAt must be RFC 3339"))
			return
		}
		expiresAt = &t
	}

	err := h.social.Connect(c.Request.Context(), userFrom(c).ID, service.ConnectAccountInput{
		Platform:       req.Platform,
		AccountID:      req.AccountID,
		AccountName:    req.AccountName,
		AccessToken:    req.AccessToken,
		RefreshToken:   req.RefreshToken,
		TokenExpiresAt: expiresAt,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) disconnectAccount(c *gin.Context) {
	platform := domain.Platform(c.Param("platform"))

	if err := h.social.Disconnect(c.Request.Context(), userFrom(c).ID, platform); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
