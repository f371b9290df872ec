package service

import (
	"context"
	"time"

	"sellerdesk/internal/domain"
	"sellerdesk/internal/repository"
)

// AnalyticsService serves the dashboard summary, the activity feed and the
// sales/platform analytics queries.
type AnalyticsService interface {
	DashboardStats(ctx context.Context, userID int64) (*domain.DashboardStats, error)
	ActivityFeed(ctx context.Context, userID int64, limit int) ([]domain.ActivityEntry, error)
	SalesData(ctx context.Context, userID int64, days int) ([]domain.AnalyticsPoint, error)
	PlatformStats(ctx context.Context, userID int64) (map[domain.Platform]domain.PlatformStats, error)
}

type analyticsService struct {
	products  repository.ProductRepository
	orders    repository.OrderRepository
	activity  repository.ActivityRepository
	analytics repository.AnalyticsRepository
}

func NewAnalyticsService(
	products repository.ProductRepository,
	orders repository.OrderRepository,
	activity repository.ActivityRepository,
	analytics repository.AnalyticsRepository,
) AnalyticsService {
	return &analyticsService{
		products:  products,
		orders:    orders,
		activity:  activity,
		analytics: analytics,
	}
}

func (s *analyticsService) DashboardStats(ctx context.Context, userID int64) (*domain.DashboardStats, error) {
	total, lowStock, err := s.products.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	midnight := time.Now().UTC().Truncate(24 * time.Hour)
	orders, revenue, err := s.orders.CountAndRevenueSince(ctx, userID, midnight)
	if err != nil {
		return nil, err
	}

	return &domain.DashboardStats{
		TotalProducts: total,
		LowStockCount: lowStock,
		TodayOrders:   orders,
		TodayRevenue:  revenue,
	}, nil
}

func (s *analyticsService) ActivityFeed(ctx context.Context, userID int64, limit int) ([]domain.ActivityEntry, error) {
	return s.activity.ListRecent(ctx, userID, limit)
}

func (s *analyticsService) SalesData(ctx context.Context, userID int64, days int) ([]domain.AnalyticsPoint, error) {
	if days <= 0 {
		days = 30
	}
	since := time.Now().UTC().AddDate(0, 0, -days)
	return s.analytics.ListSince(ctx, userID, since)
}

// PlatformStats aggregates orders on demand; every known platform appears
// in the result even with zero orders.
func (s *analyticsService) PlatformStats(ctx context.Context, userID int64) (map[domain.Platform]domain.PlatformStats, error) {
	totals, err := s.orders.PlatformTotals(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := map[domain.Platform]domain.PlatformStats{
		domain.PlatformFacebook:  {},
		domain.PlatformInstagram: {},
		domain.PlatformTikTok:    {},
	}
	for platform, t := range totals {
		stats[platform] = t
	}
	return stats, nil
}
