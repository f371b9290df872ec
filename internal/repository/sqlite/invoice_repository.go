package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"sellerdesk/internal/domain"
	"sellerdesk/internal/repository"
)

const createInvoicesTable = `
CREATE TABLE IF NOT EXISTS invoices (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	order_id INTEGER NOT NULL,
	invoice_number TEXT NOT NULL UNIQUE,
	invoice_date DATETIME NOT NULL,
	due_date DATETIME,
	subtotal TEXT NOT NULL,
	tax TEXT NOT NULL DEFAULT '0',
	discount TEXT NOT NULL DEFAULT '0',
	total TEXT NOT NULL,
	notes TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'draft',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY(user_id) REFERENCES users(id),
	FOREIGN KEY(order_id) REFERENCES orders(id)
);
CREATE INDEX IF NOT EXISTS idx_invoices_user_id ON invoices(user_id);
`

type InvoiceRepository struct {
	db *sql.DB
}

func NewInvoiceRepository(db *sql.DB) repository.InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createInvoicesTable); err != nil {
		return fmt.Errorf("create invoices table: %w", err)
	}
	return nil
}

func (r *InvoiceRepository) Create(ctx context.Context, inv *domain.Invoice) (int64, error) {
	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	if inv.InvoiceDate.IsZero() {
		inv.InvoiceDate = now
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO invoices (user_id, order_id, invoice_number, invoice_date, due_date, subtotal, tax,
	discount, total, notes, status, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.UserID,
		inv.OrderID,
		inv.InvoiceNumber,
		inv.InvoiceDate,
		inv.DueDate,
		inv.Subtotal,
		inv.Tax,
		inv.Discount,
		inv.Total,
		inv.Notes,
		inv.Status,
		inv.CreatedAt,
		inv.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return 0, fmt.Errorf("invoice number already exists: %w", err)
		}
		return 0, fmt.Errorf("insert invoice: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("invoice last insert id: %w", err)
	}
	inv.ID = id
	return id, nil
}

func (r *InvoiceRepository) UpdateStatus(ctx context.Context, userID, id int64, status domain.InvoiceStatus) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE invoices SET status=?, updated_at=? WHERE id=? AND user_id=?`,
		status, time.Now().UTC(), id, userID,
	)
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	return requireRow(res, "invoice")
}

func (r *InvoiceRepository) Get(ctx context.Context, userID, id int64) (*domain.Invoice, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, user_id, order_id, invoice_number, invoice_date, due_date, subtotal, tax,
	discount, total, notes, status, created_at, updated_at
FROM invoices
WHERE id=? AND user_id=?`,
		id, userID,
	)
	return scanInvoice(row)
}

func (r *InvoiceRepository) List(ctx context.Context, userID int64, page repository.Page) ([]domain.Invoice, error) {
	page = page.Normalize()
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, order_id, invoice_number, invoice_date, due_date, subtotal, tax,
	discount, total, notes, status, created_at, updated_at
FROM invoices
WHERE user_id=?
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?`,
		userID, page.Limit, page.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, *inv)
	}
	return invoices, rows.Err()
}

func scanInvoice(row interface {
	Scan(dest ...any) error
}) (*domain.Invoice, error) {
	var inv domain.Invoice
	if err := row.Scan(
		&inv.ID,
		&inv.UserID,
		&inv.OrderID,
		&inv.InvoiceNumber,
		&inv.InvoiceDate,
		&inv.DueDate,
		&inv.Subtotal,
		&inv.Tax,
		&inv.Discount,
		&inv.Total,
		&inv.Notes,
		&inv.Status,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("invoice: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan invoice: %w", err)
	}
	return &inv, nil
}
