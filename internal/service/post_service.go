package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sellerdesk/internal/apperr"
	"sellerdesk/internal/domain"
	"sellerdesk/internal/repository"
)

type CreatePostInput struct {
	Caption     string
	Hashtags    string
	MediaURLs   []string
	MediaType   domain.MediaType
	Platforms   []domain.Platform
	ScheduledAt *time.Time
}

// PostService manages dashboard-composed social content. Publishing only
// flips local state; delivery to the platforms happens elsewhere.
type PostService interface {
	Create(ctx context.Context, userID int64, input CreatePostInput) (*domain.Post, error)
	Publish(ctx context.Context, userID, id int64) error
	Delete(ctx context.Context, userID, id int64) error
	Get(ctx context.Context, userID, id int64) (*domain.Post, error)
	List(ctx context.Context, userID int64, page repository.Page) ([]domain.Post, error)
}

type postService struct {
	posts    repository.PostRepository
	activity repository.ActivityRepository
}

func NewPostService(posts repository.PostRepository, activity repository.ActivityRepository) PostService {
	return &postService{posts: posts, activity: activity}
}

func (s *postService) Create(ctx context.Context, userID int64, input CreatePostInput) (*domain.Post, error) {
	if len(input.MediaURLs) == 0 {
		return nil, apperr.New(apperr.KindBadRequest, "a post needs at least one media url")
	}
	if !domain.ValidMediaType(input.MediaType) {
		return nil, apperr.New(apperr.KindBadRequest, "unknown media type")
	}
	if len(input.Platforms) == 0 {
		return nil, apperr.New(apperr.KindBadRequest, "a post needs at least one platform")
	}
	for _, p := range input.Platforms {
		if !domain.ValidPlatform(p) {
			return nil, apperr.New(apperr.KindBadRequest, "unknown platform")
		}
	}

	status := domain.PostStatusDraft
	if input.ScheduledAt != nil {
		status = domain.PostStatusScheduled
	}

	post := &domain.Post{
		UserID:      userID,
		Caption:     input.Caption,
		Hashtags:    input.Hashtags,
		MediaURLs:   input.MediaURLs,
		MediaType:   input.MediaType,
		Platforms:   input.Platforms,
		Status:      status,
		ScheduledAt: input.ScheduledAt,
	}

	id, err := s.posts.Create(ctx, post)
	if err != nil {
		return nil, err
	}

	if err := s.activity.Insert(ctx, &domain.ActivityEntry{
		UserID:      userID,
		Action:      "post_created",
		EntityType:  "post",
		EntityID:    id,
		Description: fmt.Sprintf("Created %s post", status),
	}); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) Publish(ctx context.Context, userID, id int64) error {
	post, err := s.posts.Get(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.posts.MarkPublished(ctx, userID, id, time.Now().UTC()); err != nil {
		return err
	}

	platforms := make([]string, len(post.Platforms))
	for i, p := range post.Platforms {
		platforms[i] = string(p)
	}
	return s.activity.Insert(ctx, &domain.ActivityEntry{
		UserID:      userID,
		Action:      "post_published",
		EntityType:  "post",
		EntityID:    id,
		Description: fmt.Sprintf("Published post to %s", strings.Join(platforms, ", ")),
	})
}

func (s *postService) Delete(ctx context.Context, userID, id int64) error {
	return s.posts.Delete(ctx, userID, id)
}

func (s *postService) Get(ctx context.Context, userID, id int64) (*domain.Post, error) {
	return s.posts.Get(ctx, userID, id)
}

func (s *postService) List(ctx context.Context, userID int64, page repository.Page) ([]domain.Post, error) {
	return s.posts.List(ctx, userID, page)
}
