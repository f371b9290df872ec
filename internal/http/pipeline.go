package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"sellerdesk/internal/apperr"
	"sellerdesk/internal/domain"
	"sellerdesk/internal/ratelimit"
	"sellerdesk/internal/service"
)

const ctxUserKey = "sellerdesk_user"

// Pipeline composes the checks that run in front of every operation, in a
// fixed order: rate limit, CSRF, session, role. A request failing several
// checks always reports the earliest one.
type Pipeline struct {
	limiter       *ratelimit.Limiter
	users         service.UserService
	csrf          csrfGuard
	sessionCookie string
	logger        *logrus.Logger
}

func NewPipeline(limiter *ratelimit.Limiter, users service.UserService, sessionCookie string, secureCookies bool, logger *logrus.Logger) *Pipeline {
	return &Pipeline{
		limiter:       limiter,
		users:         users,
		csrf:          csrfGuard{secure: secureCookies},
		sessionCookie: sessionCookie,
		logger:        logger,
	}
}

// RateLimit throttles by (client address, route). Counters are per process.
func (p *Pipeline) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		operation := c.FullPath()
		if operation == "" {
			operation = c.Request.URL.Path
		}
		if !p.limiter.Allow(c.ClientIP(), operation) {
			abortWithError(c, apperr.New(apperr.KindTooManyRequests, "rate limit exceeded, try again later"))
			return
		}
		c.Next()
	}
}

// CSRF issues the token pair when absent and verifies it on mutations.
// Read-only methods pass through unchecked.
func (p *Pipeline) CSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		p.csrf.issue(c)

		if isMutating(c.Request.Method) && !p.csrf.verify(c.Request) {
			abortWithError(c, apperr.New(apperr.KindForbidden, "CSRF token mismatch or missing"))
			return
		}
		c.Next()
	}
}

// Session resolves the session cookie to a local user and attaches it to
// the request context. Verification failures degrade to anonymous;
// enforcement happens in RequireUser.
func (p *Pipeline) Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(p.sessionCookie)
		if token != "" {
			user, err := p.users.ResolveSession(c.Request.Context(), token)
			if err != nil {
				p.logger.Warnf("resolve session: %v", err)
			} else if user != nil {
				c.Set(ctxUserKey, user)
			}
		}
		c.Next()
	}
}

func (p *Pipeline) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userFrom(c) == nil {
			abortWithError(c, apperr.New(apperr.KindUnauthorized, "authentication required"))
			return
		}
		c.Next()
	}
}

func (p *Pipeline) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !userFrom(c).IsAdmin() {
			abortWithError(c, apperr.New(apperr.KindForbidden, "admin role required"))
			return
		}
		c.Next()
	}
}

func userFrom(c *gin.Context) *domain.User {
	if v, ok := c.Get(ctxUserKey); ok {
		if user, ok := v.(*domain.User); ok {
			return user
		}
	}
	return nil
}

func isMutating(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	return true
}
