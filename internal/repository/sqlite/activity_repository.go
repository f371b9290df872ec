package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"sellerdesk/internal/domain"
	"sellerdesk/internal/repository"
)

const createActivityTable = `
CREATE TABLE IF NOT EXISTS activity_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	action TEXT NOT NULL,
	entity_type TEXT NOT NULL,
	entity_id INTEGER NOT NULL DEFAULT 0,
	description TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	FOREIGN KEY(user_id) REFERENCES users(id)
);
CREATE INDEX IF NOT EXISTS idx_activity_log_user_id ON activity_log(user_id, created_at);
`

type ActivityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) repository.ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createActivityTable); err != nil {
		return fmt.Errorf("create activity_log table: %w", err)
	}
	return nil
}

func (r *ActivityRepository) Insert(ctx context.Context, e *domain.ActivityEntry) error {
	return insertActivityTx(ctx, r.db, e)
}

func (r *ActivityRepository) ListRecent(ctx context.Context, userID int64, limit int) ([]domain.ActivityEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, action, entity_type, entity_id, description, created_at
FROM activity_log
WHERE user_id=?
ORDER BY created_at DESC, id DESC
LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()

	var entries []domain.ActivityEntry
	for rows.Next() {
		var e domain.ActivityEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.EntityType, &e.EntityID, &e.Description, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// insertActivityTx writes an audit row on either the shared handle or an
// open transaction, so order writes can include their entry atomically.
func insertActivityTx(ctx context.Context, ex execer, e *domain.ActivityEntry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	res, err := ex.ExecContext(ctx, `
INSERT INTO activity_log (user_id, action, entity_type, entity_id, description, created_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		e.UserID, e.Action, e.EntityType, e.EntityID, e.Description, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert activity entry: %w", err)
	}
	e.ID, _ = res.LastInsertId()
	return nil
}
