package repository

import (
	"context"

	"sellerdesk/internal/domain"
)

// ProductRepository exposes persistence operations for Product rows. All
// reads and writes are scoped to the owning user.
type ProductRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, p *domain.Product) (int64, error)
	Update(ctx context.Context, p *domain.Product) error
	SetStock(ctx context.Context, userID, id int64, quantity int) error
	Delete(ctx context.Context, userID, id int64) error
	Get(ctx context.Context, userID, id int64) (*domain.Product, error)
	List(ctx context.Context, userID int64, page Page) ([]domain.Product, error)
	CountByUser(ctx context.Context, userID int64) (total, lowStock int, err error)
}
