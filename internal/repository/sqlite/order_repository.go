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

const createOrdersTable = `
CREATE TABLE IF NOT EXISTS orders (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	order_number TEXT NOT NULL UNIQUE,
	platform TEXT NOT NULL,
	platform_order_id TEXT NOT NULL DEFAULT '',
	customer_name TEXT NOT NULL,
	customer_phone TEXT NOT NULL DEFAULT '',
	customer_email TEXT NOT NULL DEFAULT '',
	shipping_address TEXT NOT NULL DEFAULT '',
	total_amount TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending',
	payment_method TEXT NOT NULL DEFAULT '',
	notes TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY(user_id) REFERENCES users(id)
);
CREATE INDEX IF NOT EXISTS idx_orders_user_id ON orders(user_id);

CREATE TABLE IF NOT EXISTS order_items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	order_id INTEGER NOT NULL,
	product_id INTEGER NOT NULL,
	quantity INTEGER NOT NULL,
	price_at_purchase TEXT NOT NULL,
	FOREIGN KEY(order_id) REFERENCES orders(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);
`

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) repository.OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createOrdersTable); err != nil {
		return fmt.Errorf("create orders tables: %w", err)
	}
	return nil
}

// Create inserts the order, its line items and the audit entry in one
// transaction; any failure rolls the whole write back.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order, activity *domain.ActivityEntry) (int64, error) {
	now := time.Now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() // safe no-op on commit

	res, err := tx.ExecContext(ctx, `
INSERT INTO orders (user_id, order_number, platform, platform_order_id, customer_name, customer_phone,
	customer_email, shipping_address, total_amount, status, payment_method, notes, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.UserID,
		o.OrderNumber,
		o.Platform,
		o.PlatformOrderID,
		o.CustomerName,
		o.CustomerPhone,
		o.CustomerEmail,
		o.ShippingAddress,
		o.TotalAmount,
		o.Status,
		o.PaymentMethod,
		o.Notes,
		o.CreatedAt,
		o.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return 0, fmt.Errorf("order number already exists: %w", err)
		}
		return 0, fmt.Errorf("insert order: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("order last insert id: %w", err)
	}

	for i := range o.Items {
		item := &o.Items[i]
		item.OrderID = id
		itemRes, err := tx.ExecContext(ctx, `
INSERT INTO order_items (order_id, product_id, quantity, price_at_purchase)
VALUES (?, ?, ?, ?)`,
			id, item.ProductID, item.Quantity, item.PriceAtPurchase,
		)
		if err != nil {
			return 0, fmt.Errorf("insert order item: %w", err)
		}
		item.ID, _ = itemRes.LastInsertId()
	}

	if activity != nil {
		activity.EntityID = id
		if err := insertActivityTx(ctx, tx, activity); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit order: %w", err)
	}
	o.ID = id
	return id, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, userID, id int64, status domain.OrderStatus, activity *domain.ActivityEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
UPDATE orders SET status=?, updated_at=? WHERE id=? AND user_id=?`,
		status, time.Now().UTC(), id, userID,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if err := requireRow(res, "order"); err != nil {
		return err
	}

	if activity != nil {
		if err := insertActivityTx(ctx, tx, activity); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit order status: %w", err)
	}
	return nil
}

func (r *OrderRepository) Get(ctx context.Context, userID, id int64) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, user_id, order_number, platform, platform_order_id, customer_name, customer_phone,
	customer_email, shipping_address, total_amount, status, payment_method, notes, created_at, updated_at
FROM orders
WHERE id=? AND user_id=?`,
		id, userID,
	)
	order, err := scanOrder(row)
	if err != nil {
		return nil, err
	}

	items, err := r.listItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func (r *OrderRepository) List(ctx context.Context, userID int64, status *domain.OrderStatus, page repository.Page) ([]domain.Order, error) {
	page = page.Normalize()

	query := `
SELECT id, user_id, order_number, platform, platform_order_id, customer_name, customer_phone,
	customer_email, shipping_address, total_amount, status, payment_method, notes, created_at, updated_at
FROM orders
WHERE user_id=?`
	args := []any{userID}
	if status != nil {
		query += ` AND status=?`
		args = append(args, *status)
	}
	query += `
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?`
	args = append(args, page.Limit, page.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func (r *OrderRepository) CountAndRevenueSince(ctx context.Context, userID int64, since time.Time) (int, float64, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT COUNT(*), COALESCE(SUM(CAST(total_amount AS REAL)), 0)
FROM orders
WHERE user_id=? AND created_at >= ?`,
		userID, since,
	)
	var (
		count   int
		revenue float64
	)
	if err := row.Scan(&count, &revenue); err != nil {
		return 0, 0, fmt.Errorf("count orders: %w", err)
	}
	return count, revenue, nil
}

func (r *OrderRepository) PlatformTotals(ctx context.Context, userID int64) (map[domain.Platform]domain.PlatformStats, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT platform, COUNT(*), COALESCE(SUM(CAST(total_amount AS REAL)), 0)
FROM orders
WHERE user_id=?
GROUP BY platform`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("platform totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[domain.Platform]domain.PlatformStats)
	for rows.Next() {
		var (
			platform domain.Platform
			stats    domain.PlatformStats
		)
		if err := rows.Scan(&platform, &stats.Orders, &stats.Revenue); err != nil {
			return nil, fmt.Errorf("scan platform totals: %w", err)
		}
		totals[platform] = stats
	}
	return totals, rows.Err()
}

func (r *OrderRepository) listItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, order_id, product_id, quantity, price_at_purchase
FROM order_items
WHERE order_id=?
ORDER BY id`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.PriceAtPurchase); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanOrder(row interface {
	Scan(dest ...any) error
}) (*domain.Order, error) {
	var o domain.Order
	if err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.OrderNumber,
		&o.Platform,
		&o.PlatformOrderID,
		&o.CustomerName,
		&o.CustomerPhone,
		&o.CustomerEmail,
		&o.ShippingAddress,
		&o.TotalAmount,
		&o.Status,
		&o.PaymentMethod,
		&o.Notes,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("order: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}
	return &o, nil
}
