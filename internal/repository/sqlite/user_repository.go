package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"sellerdesk/internal/domain"
	"sellerdesk/internal/repository"
)

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	open_id TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT '',
	login_method TEXT NOT NULL DEFAULT '',
	role TEXT NOT NULL DEFAULT 'user',
	business_name TEXT NOT NULL DEFAULT '',
	business_phone TEXT NOT NULL DEFAULT '',
	business_address TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	last_signed_in DATETIME NOT NULL
);
`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createUsersTable); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

// Upsert inserts a user on first sight of an open id, otherwise refreshes
// profile fields and last_signed_in. Empty fields never clobber stored
// values, and role is only written when explicitly set.
func (r *UserRepository) Upsert(ctx context.Context, u repository.UserUpsert) error {
	if u.OpenID == "" {
		return errors.New("open id is required")
	}

	now := time.Now().UTC()
	signedIn := u.LastSignedIn
	if signedIn.IsZero() {
		signedIn = now
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO users (open_id, name, email, login_method, role, created_at, updated_at, last_signed_in)
VALUES (?, ?, ?, ?, CASE WHEN ? = '' THEN 'user' ELSE ? END, ?, ?, ?)
ON CONFLICT(open_id) DO UPDATE SET
	name = CASE WHEN excluded.name <> '' THEN excluded.name ELSE users.name END,
	email = CASE WHEN excluded.email <> '' THEN excluded.email ELSE users.email END,
	login_method = CASE WHEN excluded.login_method <> '' THEN excluded.login_method ELSE users.login_method END,
	role = CASE WHEN ? <> '' THEN ? ELSE users.role END,
	last_signed_in = excluded.last_signed_in,
	updated_at = excluded.updated_at`,
		u.OpenID,
		u.Name,
		u.Email,
		u.LoginMethod,
		string(u.Role), string(u.Role),
		now,
		now,
		signedIn,
		string(u.Role), string(u.Role),
	)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByOpenID(ctx context.Context, openID string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, open_id, name, email, login_method, role, business_name, business_phone, business_address,
	created_at, updated_at, last_signed_in
FROM users
WHERE open_id = ?`,
		openID,
	)
	return scanUser(row)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, open_id, name, email, login_method, role, business_name, business_phone, business_address,
	created_at, updated_at, last_signed_in
FROM users
WHERE id = ?`,
		id,
	)
	return scanUser(row)
}

func scanUser(row interface {
	Scan(dest ...any) error
}) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.OpenID,
		&user.Name,
		&user.Email,
		&user.LoginMethod,
		&user.Role,
		&user.BusinessName,
		&user.BusinessPhone,
		&user.BusinessAddress,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.LastSignedIn,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &user, nil
}
