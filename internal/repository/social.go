package repository

import (
	"context"

	"sellerdesk/internal/domain"
)

// SocialRepository manages platform account connections. Upsert keys on
// (user, platform): reconnecting replaces tokens instead of adding rows.
type SocialRepository interface {
	Init(ctx context.Context) error
	Upsert(ctx context.Context, c *domain.SocialConnection) error
	Disconnect(ctx context.Context, userID int64, platform domain.Platform) error
	Get(ctx context.Context, userID int64, platform domain.Platform) (*domain.SocialConnection, error)
	List(ctx context.Context, userID int64) ([]domain.SocialConnection, error)
}
