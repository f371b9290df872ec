package repository

import (
	"context"
	"time"

	"sellerdesk/internal/domain"
)

// OrderRepository manages orders and their line items. Create persists the
// order, its items and the supplied activity entry in a single transaction;
// a failure at any step leaves nothing behind.
type OrderRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, o *domain.Order, activity *domain.ActivityEntry) (int64, error)
	UpdateStatus(ctx context.Context, userID, id int64, status domain.OrderStatus, activity *domain.ActivityEntry) error
	Get(ctx context.Context, userID, id int64) (*domain.Order, error)
	List(ctx context.Context, userID int64, status *domain.OrderStatus, page Page) ([]domain.Order, error)
	CountAndRevenueSince(ctx context.Context, userID int64, since time.Time) (count int, revenue float64, err error)
	PlatformTotals(ctx context.Context, userID int64) (map[domain.Platform]domain.PlatformStats, error)
}
