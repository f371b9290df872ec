package domain

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is a local seller account, keyed by the openId issued by the
// external identity provider. Rows are created lazily on first sign-in.
type User struct {
	ID              int64
	OpenID          string
	Name            string
	Email           string
	LoginMethod     string
	Role            Role
	BusinessName    string
	BusinessPhone   string
	BusinessAddress string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	LastSignedIn    time.Time
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
