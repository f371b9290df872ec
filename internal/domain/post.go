package domain

import "time"

type MediaType string

const (
	MediaTypeImage    MediaType = "image"
	MediaTypeVideo    MediaType = "video"
	MediaTypeCarousel MediaType = "carousel"
)

func ValidMediaType(m MediaType) bool {
	switch m {
	case MediaTypeImage, MediaTypeVideo, MediaTypeCarousel:
		return true
	}
	return false
}

type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusScheduled PostStatus = "scheduled"
	PostStatusPublished PostStatus = "published"
	PostStatusFailed    PostStatus = "failed"
)

// Post is a piece of content composed in the dashboard for one or more
// social platforms.
type Post struct {
	ID          int64
	UserID      int64
	Caption     string
	Hashtags    string
	MediaURLs   []string
	MediaType   MediaType
	Platforms   []Platform
	Status      PostStatus
	ScheduledAt *time.Time
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
