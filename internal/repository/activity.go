package repository

import (
	"context"
	"time"

	"sellerdesk/internal/domain"
)

// ActivityRepository records and serves the audit trail shown on the
// dashboard activity feed.
type ActivityRepository interface {
	Init(ctx context.Context) error
	Insert(ctx context.Context, e *domain.ActivityEntry) error
	ListRecent(ctx context.Context, userID int64, limit int) ([]domain.ActivityEntry, error)
}

// AnalyticsRepository serves per-day sales rollups.
type AnalyticsRepository interface {
	Init(ctx context.Context) error
	Insert(ctx context.Context, p *domain.AnalyticsPoint) error
	ListSince(ctx context.Context, userID int64, since time.Time) ([]domain.AnalyticsPoint, error)
}
