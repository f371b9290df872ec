package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sellerdesk/internal/domain"
	"sellerdesk/internal/ratelimit"
)

type stubUserService struct {
	users map[string]*domain.User
}

func (s *stubUserService) ResolveSession(_ context.Context, token string) (*domain.User, error) {
	return s.users[token], nil
}

func (s *stubUserService) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestRouter(t *testing.T, limit int) (*gin.Engine, *stubUserService) {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	limiter := ratelimit.New(limit, time.Minute)
	t.Cleanup(limiter.Stop)

	users := &stubUserService{users: map[string]*domain.User{
		"user-token":  {ID: 1, OpenID: "open-1", Role: domain.RoleUser},
		"admin-token": {ID: 2, OpenID: "open-2", Role: domain.RoleAdmin},
	}}

	pipeline := NewPipeline(limiter, users, "session", false, logger)

	router := gin.New()
	api := router.Group("/api", pipeline.RateLimit(), pipeline.CSRF(), pipeline.Session())
	api.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	protected := api.Group("", pipeline.RequireUser())
	protected.GET("/items", func(c *gin.Context) { c.Status(http.StatusOK) })
	protected.POST("/items", func(c *gin.Context) { c.Status(http.StatusCreated) })

	admin := protected.Group("", pipeline.RequireAdmin())
	admin.POST("/system", func(c *gin.Context) { c.Status(http.StatusOK) })

	return router, users
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	return payload.Error.Code
}

func withSession(r *http.Request, token string) {
	r.AddCookie(&http.Cookie{Name: "session", Value: token})
}

func withCSRF(r *http.Request) {
	token := generateCSRFToken()
	r.Header.Set(csrfHeaderName, token)
	r.AddCookie(&http.Cookie{Name: csrfCookiePlainName, Value: token})
}

func TestPipeline_AnonymousRejected(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, 100)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/items", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, w.Body.Bytes()))
}

func TestPipeline_PublicReadPasses(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, 100)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPipeline_CSRFBeforeSession(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, 100)

	// a valid session does not rescue a mutation without the CSRF pair
	r := httptest.NewRequest(http.MethodPost, "/api/items", nil)
	withSession(r, "user-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", errorCode(t, w.Body.Bytes()))
}

func TestPipeline_MutationWithCSRFAndSession(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, 100)

	r := httptest.NewRequest(http.MethodPost, "/api/items", nil)
	withSession(r, "user-token")
	withCSRF(r)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestPipeline_AdminTier(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, 100)

	r := httptest.NewRequest(http.MethodPost, "/api/system", nil)
	withSession(r, "user-token")
	withCSRF(r)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", errorCode(t, w.Body.Bytes()))

	r = httptest.NewRequest(http.MethodPost, "/api/system", nil)
	withSession(r, "admin-token")
	withCSRF(r)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPipeline_RateLimitFirst(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, 1)

	r := httptest.NewRequest(http.MethodGet, "/api/items", nil)
	withSession(r, "user-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	// over the ceiling the limiter answers before CSRF or session run:
	// this mutation carries neither and still reports 429, not 403
	r = httptest.NewRequest(http.MethodPost, "/api/items", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "TOO_MANY_REQUESTS", errorCode(t, w.Body.Bytes()))
}
