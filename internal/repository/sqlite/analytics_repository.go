package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"sellerdesk/internal/domain"
	"sellerdesk/internal/repository"
)

const createAnalyticsTable = `
CREATE TABLE IF NOT EXISTS analytics (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	date DATETIME NOT NULL,
	platform TEXT NOT NULL DEFAULT 'overall',
	orders_count INTEGER NOT NULL DEFAULT 0,
	revenue TEXT NOT NULL DEFAULT '0',
	posts_count INTEGER NOT NULL DEFAULT 0,
	total_engagement INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	FOREIGN KEY(user_id) REFERENCES users(id)
);
CREATE INDEX IF NOT EXISTS idx_analytics_user_date ON analytics(user_id, date);
`

type AnalyticsRepository struct {
	db *sql.DB
}

func NewAnalyticsRepository(db *sql.DB) repository.AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

func (r *AnalyticsRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createAnalyticsTable); err != nil {
		return fmt.Errorf("create analytics table: %w", err)
	}
	return nil
}

func (r *AnalyticsRepository) Insert(ctx context.Context, p *domain.AnalyticsPoint) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, `
INSERT INTO analytics (user_id, date, platform, orders_count, revenue, posts_count, total_engagement, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.UserID, p.Date, p.Platform, p.OrdersCount, p.Revenue, p.PostsCount, p.TotalEngagement, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert analytics point: %w", err)
	}
	p.ID, _ = res.LastInsertId()
	return nil
}

func (r *AnalyticsRepository) ListSince(ctx context.Context, userID int64, since time.Time) ([]domain.AnalyticsPoint, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, date, platform, orders_count, revenue, posts_count, total_engagement, created_at
FROM analytics
WHERE user_id=? AND date >= ?
ORDER BY date`,
		userID, since,
	)
	if err != nil {
		return nil, fmt.Errorf("list analytics: %w", err)
	}
	defer rows.Close()

	var points []domain.AnalyticsPoint
	for rows.Next() {
		var p domain.AnalyticsPoint
		if err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.Date,
			&p.Platform,
			&p.OrdersCount,
			&p.Revenue,
			&p.PostsCount,
			&p.TotalEngagement,
			&p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan analytics point: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}
