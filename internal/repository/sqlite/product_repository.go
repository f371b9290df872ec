package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sellerdesk/internal/domain"
	"sellerdesk/internal/repository"
)

const createProductsTable = `
CREATE TABLE IF NOT EXISTS products (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	price TEXT NOT NULL,
	cost_price TEXT NOT NULL DEFAULT '',
	stock_quantity INTEGER NOT NULL DEFAULT 0,
	low_stock_threshold INTEGER NOT NULL DEFAULT 5,
	sku TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT '',
	images TEXT NOT NULL DEFAULT '[]',
	is_active INTEGER NOT NULL DEFAULT 1,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY(user_id) REFERENCES users(id)
);
CREATE INDEX IF NOT EXISTS idx_products_user_id ON products(user_id);
`

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) repository.ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createProductsTable); err != nil {
		return fmt.Errorf("create products table: %w", err)
	}
	return nil
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) (int64, error) {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	images, err := marshalStrings(p.Images)
	if err != nil {
		return 0, fmt.Errorf("encode images: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO products (user_id, name, description, price, cost_price, stock_quantity, low_stock_threshold,
	sku, category, images, is_active, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.UserID,
		p.Name,
		p.Description,
		p.Price,
		p.CostPrice,
		p.StockQuantity,
		p.LowStockThreshold,
		p.SKU,
		p.Category,
		images,
		p.IsActive,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("product last insert id: %w", err)
	}
	p.ID = id
	return id, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	p.UpdatedAt = time.Now().UTC()

	images, err := marshalStrings(p.Images)
	if err != nil {
		return fmt.Errorf("encode images: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
UPDATE products
SET name=?, description=?, price=?, cost_price=?, stock_quantity=?, low_stock_threshold=?,
	sku=?, category=?, images=?, is_active=?, updated_at=?
WHERE id=? AND user_id=?`,
		p.Name,
		p.Description,
		p.Price,
		p.CostPrice,
		p.StockQuantity,
		p.LowStockThreshold,
		p.SKU,
		p.Category,
		images,
		p.IsActive,
		p.UpdatedAt,
		p.ID,
		p.UserID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return requireRow(res, "product")
}

func (r *ProductRepository) SetStock(ctx context.Context, userID, id int64, quantity int) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE products SET stock_quantity=?, updated_at=? WHERE id=? AND user_id=?`,
		quantity, time.Now().UTC(), id, userID,
	)
	if err != nil {
		return fmt.Errorf("set product stock: %w", err)
	}
	return requireRow(res, "product")
}

func (r *ProductRepository) Delete(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id=? AND user_id=?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return requireRow(res, "product")
}

func (r *ProductRepository) Get(ctx context.Context, userID, id int64) (*domain.Product, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, user_id, name, description, price, cost_price, stock_quantity, low_stock_threshold,
	sku, category, images, is_active, created_at, updated_at
FROM products
WHERE id=? AND user_id=?`,
		id, userID,
	)
	return scanProduct(row)
}

func (r *ProductRepository) List(ctx context.Context, userID int64, page repository.Page) ([]domain.Product, error) {
	page = page.Normalize()
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, name, description, price, cost_price, stock_quantity, low_stock_threshold,
	sku, category, images, is_active, created_at, updated_at
FROM products
WHERE user_id=?
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?`,
		userID, page.Limit, page.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) CountByUser(ctx context.Context, userID int64) (int, int, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT COUNT(*), COALESCE(SUM(CASE WHEN stock_quantity <= low_stock_threshold THEN 1 ELSE 0 END), 0)
FROM products
WHERE user_id=?`,
		userID,
	)
	var total, lowStock int
	if err := row.Scan(&total, &lowStock); err != nil {
		return 0, 0, fmt.Errorf("count products: %w", err)
	}
	return total, lowStock, nil
}

func scanProduct(row interface {
	Scan(dest ...any) error
}) (*domain.Product, error) {
	var (
		p      domain.Product
		images string
	)
	if err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.CostPrice,
		&p.StockQuantity,
		&p.LowStockThreshold,
		&p.SKU,
		&p.Category,
		&images,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	if err := json.Unmarshal([]byte(images), &p.Images); err != nil {
		return nil, fmt.Errorf("decode images: %w", err)
	}
	return &p, nil
}

func marshalStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// requireRow maps a zero-row write to ErrNotFound so handlers can report
// missing or foreign rows uniformly.
func requireRow(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", entity, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", entity, repository.ErrNotFound)
	}
	return nil
}
