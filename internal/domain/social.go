package domain

import "time"

type Platform string

const (
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
)

func ValidPlatform(p Platform) bool {
	switch p {
	case PlatformFacebook, PlatformInstagram, PlatformTikTok:
		return true
	}
	return false
}

// SocialConnection links a seller to an account on an external platform.
// At most one connection exists per (user, platform); reconnecting
// replaces the stored tokens.
type SocialConnection struct {
	ID             int64
	UserID         int64
	Platform       Platform
	AccountID      string
	AccountName    string
	AccessToken    string
	RefreshToken   string
	TokenExpiresAt *time.Time
	IsConnected    bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
