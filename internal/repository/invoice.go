package repository

import (
	"context"

	"sellerdesk/internal/domain"
)

// InvoiceRepository exposes persistence operations for Invoice rows.
type InvoiceRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, inv *domain.Invoice) (int64, error)
	UpdateStatus(ctx context.Context, userID, id int64, status domain.InvoiceStatus) error
	Get(ctx context.Context, userID, id int64) (*domain.Invoice, error)
	List(ctx context.Context, userID int64, page Page) ([]domain.Invoice, error)
}
