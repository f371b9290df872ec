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

const createSocialTable = `
CREATE TABLE IF NOT EXISTS social_connections (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	platform TEXT NOT NULL,
	account_id TEXT NOT NULL,
	account_name TEXT NOT NULL DEFAULT '',
	access_token TEXT NOT NULL,
	refresh_token TEXT NOT NULL DEFAULT '',
	token_expires_at DATETIME,
	is_connected INTEGER NOT NULL DEFAULT 1,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	UNIQUE(user_id, platform),
	FOREIGN KEY(user_id) REFERENCES users(id)
);
`

type SocialRepository struct {
	db *sql.DB
}

func NewSocialRepository(db *sql.DB) repository.SocialRepository {
	return &SocialRepository{db: db}
}

func (r *SocialRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createSocialTable); err != nil {
		return fmt.Errorf("create social_connections table: %w", err)
	}
	return nil
}

// Upsert keeps at most one connection per (user, platform); reconnecting
// overwrites the stored account and tokens with the latest values.
func (r *SocialRepository) Upsert(ctx context.Context, c *domain.SocialConnection) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
INSERT INTO social_connections (user_id, platform, account_id, account_name, access_token,
	refresh_token, token_expires_at, is_connected, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, 1, ?, ?)
ON CONFLICT(user_id, platform) DO UPDATE SET
	account_id = excluded.account_id,
	account_name = excluded.account_name,
	access_token = excluded.access_token,
	refresh_token = excluded.refresh_token,
	token_expires_at = excluded.token_expires_at,
	is_connected = 1,
	updated_at = excluded.updated_at`,
		c.UserID,
		c.Platform,
		c.AccountID,
		c.AccountName,
		c.AccessToken,
		c.RefreshToken,
		c.TokenExpiresAt,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("upsert social connection: %w", err)
	}
	return nil
}

func (r *SocialRepository) Disconnect(ctx context.Context, userID int64, platform domain.Platform) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE social_connections SET is_connected=0, updated_at=? WHERE user_id=? AND platform=?`,
		time.Now().UTC(), userID, platform,
	)
	if err != nil {
		return fmt.Errorf("disconnect social connection: %w", err)
	}
	return requireRow(res, "social connection")
}

func (r *SocialRepository) Get(ctx context.Context, userID int64, platform domain.Platform) (*domain.SocialConnection, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, user_id, platform, account_id, account_name, access_token, refresh_token,
	token_expires_at, is_connected, created_at, updated_at
FROM social_connections
WHERE user_id=? AND platform=?`,
		userID, platform,
	)
	return scanSocialConnection(row)
}

func (r *SocialRepository) List(ctx context.Context, userID int64) ([]domain.SocialConnection, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, platform, account_id, account_name, access_token, refresh_token,
	token_expires_at, is_connected, created_at, updated_at
FROM social_connections
WHERE user_id=?
ORDER BY platform`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list social connections: %w", err)
	}
	defer rows.Close()

	var connections []domain.SocialConnection
	for rows.Next() {
		c, err := scanSocialConnection(rows)
		if err != nil {
			return nil, err
		}
		connections = append(connections, *c)
	}
	return connections, rows.Err()
}

func scanSocialConnection(row interface {
	Scan(dest ...any) error
}) (*domain.SocialConnection, error) {
	var c domain.SocialConnection
	if err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.Platform,
		&c.AccountID,
		&c.AccountName,
		&c.AccessToken,
		&c.RefreshToken,
		&c.TokenExpiresAt,
		&c.IsConnected,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("social connection: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan social connection: %w", err)
	}
	return &c, nil
}
