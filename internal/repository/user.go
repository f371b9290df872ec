package repository

import (
	"context"
	"time"

	"sellerdesk/internal/domain"
)

// UserUpsert carries the fields touched when a verified session is seen.
// Role is only written when non-empty; OpenID is the conflict key and is
// never changed for an existing row.
type UserUpsert struct {
	OpenID       string
	Name         string
	Email        string
	LoginMethod  string
	Role         domain.Role
	LastSignedIn time.Time
}

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	Upsert(ctx context.Context, u UserUpsert) error
	GetByOpenID(ctx context.Context, openID string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
