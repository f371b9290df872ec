package repository

import (
	"context"
	"time"

	"sellerdesk/internal/domain"
)

// PostRepository exposes persistence operations for Post rows.
type PostRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, p *domain.Post) (int64, error)
	MarkPublished(ctx context.Context, userID, id int64, publishedAt time.Time) error
	Delete(ctx context.Context, userID, id int64) error
	Get(ctx context.Context, userID, id int64) (*domain.Post, error)
	List(ctx context.Context, userID int64, page Page) ([]domain.Post, error)
}
