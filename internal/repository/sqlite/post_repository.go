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

const createPostsTable = `
CREATE TABLE IF NOT EXISTS posts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	caption TEXT NOT NULL DEFAULT '',
	hashtags TEXT NOT NULL DEFAULT '',
	media_urls TEXT NOT NULL DEFAULT '[]',
	media_type TEXT NOT NULL,
	platforms TEXT NOT NULL DEFAULT '[]',
	status TEXT NOT NULL DEFAULT 'draft',
	scheduled_at DATETIME,
	published_at DATETIME,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY(user_id) REFERENCES users(id)
);
CREATE INDEX IF NOT EXISTS idx_posts_user_id ON posts(user_id);
`

type PostRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) repository.PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createPostsTable); err != nil {
		return fmt.Errorf("create posts table: %w", err)
	}
	return nil
}

func (r *PostRepository) Create(ctx context.Context, p *domain.Post) (int64, error) {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	mediaURLs, err := marshalStrings(p.MediaURLs)
	if err != nil {
		return 0, fmt.Errorf("encode media urls: %w", err)
	}
	platforms, err := marshalPlatforms(p.Platforms)
	if err != nil {
		return 0, fmt.Errorf("encode platforms: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO posts (user_id, caption, hashtags, media_urls, media_type, platforms, status,
	scheduled_at, published_at, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.UserID,
		p.Caption,
		p.Hashtags,
		mediaURLs,
		p.MediaType,
		platforms,
		p.Status,
		p.ScheduledAt,
		p.PublishedAt,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert post: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("post last insert id: %w", err)
	}
	p.ID = id
	return id, nil
}

func (r *PostRepository) MarkPublished(ctx context.Context, userID, id int64, publishedAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE posts SET status=?, published_at=?, updated_at=? WHERE id=? AND user_id=?`,
		domain.PostStatusPublished, publishedAt, time.Now().UTC(), id, userID,
	)
	if err != nil {
		return fmt.Errorf("mark post published: %w", err)
	}
	return requireRow(res, "post")
}

func (r *PostRepository) Delete(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id=? AND user_id=?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return requireRow(res, "post")
}

func (r *PostRepository) Get(ctx context.Context, userID, id int64) (*domain.Post, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, user_id, caption, hashtags, media_urls, media_type, platforms, status,
	scheduled_at, published_at, created_at, updated_at
FROM posts
WHERE id=? AND user_id=?`,
		id, userID,
	)
	return scanPost(row)
}

func (r *PostRepository) List(ctx context.Context, userID int64, page repository.Page) ([]domain.Post, error) {
	page = page.Normalize()
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, caption, hashtags, media_urls, media_type, platforms, status,
	scheduled_at, published_at, created_at, updated_at
FROM posts
WHERE user_id=?
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?`,
		userID, page.Limit, page.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

func scanPost(row interface {
	Scan(dest ...any) error
}) (*domain.Post, error) {
	var (
		p         domain.Post
		mediaURLs string
		platforms string
	)
	if err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Caption,
		&p.Hashtags,
		&mediaURLs,
		&p.MediaType,
		&platforms,
		&p.Status,
		&p.ScheduledAt,
		&p.PublishedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan post: %w", err)
	}
	if err := json.Unmarshal([]byte(mediaURLs), &p.MediaURLs); err != nil {
		return nil, fmt.Errorf("decode media urls: %w", err)
	}
	if err := json.Unmarshal([]byte(platforms), &p.Platforms); err != nil {
		return nil, fmt.Errorf("decode platforms: %w", err)
	}
	return &p, nil
}

func marshalPlatforms(platforms []domain.Platform) (string, error) {
	if platforms == nil {
		platforms = []domain.Platform{}
	}
	data, err := json.Marshal(platforms)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
