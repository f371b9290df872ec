package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sellerdesk/internal/domain"
)

type UserResponse struct {
	ID              int64       `json:"id"`
	OpenID          string      `json:"openId"`
	Name            string      `json:"name"`
	Email           string      `json:"email"`
	LoginMethod     string      `json:"loginMethod"`
	Role            domain.Role `json:"role"`
	BusinessName    string      `json:"businessName"`
	BusinessPhone   string      `json:"businessPhone"`
	BusinessAddress string      `json:"businessAddress"`
	CreatedAt       string      `json:"createdAt"`
	LastSignedIn    string      `json:"lastSignedIn"`
}

func userToResponse(user *domain.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:              user.ID,
		OpenID:          user.OpenID,
		Name:            user.Name,
		Email:           user.Email,
		LoginMethod:     user.LoginMethod,
		Role:            user.Role,
		BusinessName:    user.BusinessName,
		BusinessPhone:   user.BusinessPhone,
		BusinessAddress: user.BusinessAddress,
		CreatedAt:       formatTime(user.CreatedAt),
		LastSignedIn:    formatTime(user.LastSignedIn),
	}
}

// me returns the resolved user, or null for anonymous callers. Public so
// the dashboard can probe sign-in state without triggering a 401.
func (h *Handler) me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": userToResponse(userFrom(c))})
}

func (h *Handler) logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.sessionCookie, "", -1, "/", "", h.secureCookies, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
