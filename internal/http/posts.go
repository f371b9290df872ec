package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sellerdesk/internal/apperr"
	"sellerdesk/internal/domain"
	"sellerdesk/internal/service"
)

type PostResponse struct {
	ID          int64             `json:"id"`
	Caption     string            `json:"caption"`
	Hashtags    string            `json:"hashtags"`
	MediaURLs   []string          `json:"mediaUrls"`
	MediaType   domain.MediaType  `json:"mediaType"`
	Platforms   []domain.Platform `json:"platforms"`
	Status      domain.PostStatus `json:"status"`
	ScheduledAt *string           `json:"scheduledAt,omitempty"`
	PublishedAt *string           `json:"publishedAt,omitempty"`
	CreatedAt   string            `json:"createdAt"`
	UpdatedAt   string            `json:"updatedAt"`
}

func postToResponse(p domain.Post) PostResponse {
	mediaURLs := p.MediaURLs
	if mediaURLs == nil {
		mediaURLs = []string{}
	}
	platforms := p.Platforms
	if platforms == nil {
		platforms = []domain.Platform{}
	}
	return PostResponse{
		ID:          p.ID,
		Caption:     p.Caption,
		Hashtags:    p.Hashtags,
		MediaURLs:   mediaURLs,
		MediaType:   p.MediaType,
		Platforms:   platforms,
		Status:      p.Status,
		ScheduledAt: formatTimePtr(p.ScheduledAt),
		PublishedAt: formatTimePtr(p.PublishedAt),
		CreatedAt:   formatTime(p.CreatedAt),
		UpdatedAt:   formatTime(p.UpdatedAt),
	}
}

func (h *Handler) listPosts(c *gin.Context) {
	posts, err := h.posts.List(c.Request.Context(), userFrom(c).ID, pageFrom(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	resp := make([]PostResponse, len(posts))
	for i := range posts {
		resp[i] = postToResponse(posts[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getPost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	post, err := h.posts.Get(c.Request.Context(), userFrom(c).ID, id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, postToResponse(*post))
}

type createPostRequest struct {
	Caption     string            `json:"caption"`
	Hashtags    string            `json:"hashtags"`
	MediaURLs   []string          `json:"mediaUrls" binding:"required,min=1"`
	MediaType   domain.MediaType  `json:"mediaType" binding:"required"`
	Platforms   []domain.Platform `json:"platforms" binding:"required,min=1"`
	ScheduledAt *string           `json:"scheduledAt"`
}

func (h *Handler) createPost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, badRequest(err))
		return
	}

	var scheduledAt *time.Time
	if req.ScheduledAt != nil {
		t, err := time.Parse(time.RFC3339, *req.ScheduledAt)
		if err != nil {
			abortWithError(c, apperr.New(apperr.KindBadRequest, "scheduledAt must be RFC 3339"))
			return
		}
		scheduledAt = &t
	}

	post, err := h.posts.Create(c.Request.Context(), userFrom(c).ID, service.CreatePostInput{
		Caption:     req.Caption,
		Hashtags:    req.Hashtags,
		MediaURLs:   req.MediaURLs,
		MediaType:   req.MediaType,
		Platforms:   req.Platforms,
		ScheduledAt: scheduledAt,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, postToResponse(*post))
}

func (h *Handler) publishPost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.posts.Publish(c.Request.Context(), userFrom(c).ID, id); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) deletePost(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.posts.Delete(c.Request.Context(), userFrom(c).ID, id); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
