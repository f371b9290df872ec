package http

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Double-submit cookie CSRF protection. The token lives in two cookies
// with the same value: an HttpOnly one the server trusts, and a
// script-readable one the dashboard echoes back in a header on every
// mutation. A cross-origin form post can produce neither.
const (
	csrfHeaderName = "X-CSRF-Token"
	// The __Host- prefix pins the cookie to a secure origin; plain name
	// is used where TLS is not confirmed (local development).
	csrfCookieSecureName = "__Host-csrf"
	csrfCookiePlainName  = "csrf"
	csrfClientCookieName = "XSRF-TOKEN"

	csrfTokenBytes = 32
	// Token lifetime matches the session lifetime: the pair is issued
	// once and never rotated per-request.
	csrfCookieMaxAge = 365 * 24 * 60 * 60
)

type csrfGuard struct {
	secure bool
}

func (g csrfGuard) cookieName() string {
	if g.secure {
		return csrfCookieSecureName
	}
	return csrfCookiePlainName
}

// issue sets the cookie pair and mirrors the token into a response header
// when the inbound request carries no authoritative cookie yet.
func (g csrfGuard) issue(c *gin.Context) {
	if _, err := c.Cookie(g.cookieName()); err == nil {
		return
	}

	token := generateCSRFToken()
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(g.cookieName(), token, csrfCookieMaxAge, "/", "", g.secure, true)
	c.SetCookie(csrfClientCookieName, token, csrfCookieMaxAge, "/", "", g.secure, false)
	c.Header(csrfHeaderName, token)
}

// verify checks the double-submit pair: both the header token and the
// authoritative cookie must be present and byte-equal. Verification does
// not consume the token; checking twice gives the same answer.
func (g csrfGuard) verify(r *http.Request) bool {
	headerToken := r.Header.Get(csrfHeaderName)
	if headerToken == "" {
		return false
	}

	cookieToken := ""
	if cookie, err := r.Cookie(g.cookieName()); err == nil {
		cookieToken = cookie.Value
	} else {
		cookieToken = parseCookieHeader(r.Header.Get("Cookie"))[g.cookieName()]
	}
	if cookieToken == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(headerToken), []byte(cookieToken)) == 1
}

func generateCSRFToken() string {
	buf := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return hex.EncodeToString(buf)
}

// parseCookieHeader maps a raw Cookie header to its key/value pairs. Kept
// transport-independent so it also serves as a fallback when no cookie
// middleware ran.
func parseCookieHeader(raw string) map[string]string {
	cookies := make(map[string]string)
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		idx := strings.Index(part, "=")
		if idx <= 0 {
			continue
		}
		name := strings.TrimSpace(part[:idx])
		value := strings.Trim(strings.TrimSpace(part[idx+1:]), `"`)
		if name == "" {
			continue
		}
		cookies[name] = value
	}
	return cookies
}
