package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSRFVerify(t *testing.T) {
	t.Parallel()

	g := csrfGuard{secure: false}
	token := generateCSRFToken()

	newRequest := func() *http.Request {
		return httptest.NewRequest(http.MethodPost, "/api/products", nil)
	}

	t.Run("matching pair passes", func(t *testing.T) {
		r := newRequest()
		r.Header.Set(csrfHeaderName, token)
		r.AddCookie(&http.Cookie{Name: csrfCookiePlainName, Value: token})
		assert.True(t, g.verify(r))
	})

	t.Run("missing header rejected", func(t *testing.T) {
		r := newRequest()
		r.AddCookie(&http.Cookie{Name: csrfCookiePlainName, Value: token})
		assert.False(t, g.verify(r))
	})

	t.Run("missing cookie rejected", func(t *testing.T) {
		r := newRequest()
		r.Header.Set(csrfHeaderName, token)
		assert.False(t, g.verify(r))
	})

	t.Run("mismatched values rejected", func(t *testing.T) {
		r := newRequest()
		r.Header.Set(csrfHeaderName, token)
		r.AddCookie(&http.Cookie{Name: csrfCookiePlainName, Value: generateCSRFToken()})
		assert.False(t, g.verify(r))
	})

	t.Run("verification is repeatable", func(t *testing.T) {
		r := newRequest()
		r.Header.Set(csrfHeaderName, token)
		r.AddCookie(&http.Cookie{Name: csrfCookiePlainName, Value: token})
		assert.True(t, g.verify(r))
		assert.True(t, g.verify(r))
	})
}

func TestCSRFVerify_SecureCookieName(t *testing.T) {
	t.Parallel()

	g := csrfGuard{secure: true}
	token := generateCSRFToken()

	r := httptest.NewRequest(http.MethodPost, "/api/products", nil)
	r.Header.Set(csrfHeaderName, token)
	r.Header.Set("Cookie", csrfCookieSecureName+"="+token)
	assert.True(t, g.verify(r))

	// plain cookie name is not trusted on a secure deployment
	r = httptest.NewRequest(http.MethodPost, "/api/products", nil)
	r.Header.Set(csrfHeaderName, token)
	r.AddCookie(&http.Cookie{Name: csrfCookiePlainName, Value: token})
	assert.False(t, g.verify(r))
}

func TestCSRFIssue(t *testing.T) {
	t.Parallel()

	g := csrfGuard{secure: false}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/products", nil)

	g.issue(c)

	cookies := w.Result().Cookies()
	var authoritative, client *http.Cookie
	for _, ck := range cookies {
		switch ck.Name {
		case csrfCookiePlainName:
			authoritative = ck
		case csrfClientCookieName:
			client = ck
		}
	}
	require.NotNil(t, authoritative)
	require.NotNil(t, client)
	assert.Equal(t, authoritative.Value, client.Value)
	assert.True(t, authoritative.HttpOnly)
	assert.False(t, client.HttpOnly)
	assert.Equal(t, authoritative.Value, w.Header().Get(csrfHeaderName))
}

func TestCSRFIssue_SkipsWhenCookiePresent(t *testing.T) {
	t.Parallel()

	g := csrfGuard{secure: false}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/products", nil)
	c.Request.AddCookie(&http.Cookie{Name: csrfCookiePlainName, Value: "existing"})

	g.issue(c)

	assert.Empty(t, w.Result().Cookies())
}

func TestParseCookieHeader(t *testing.T) {
	t.Parallel()

	got := parseCookieHeader(`csrf=abc; session="tok en"; =bad; novalue`)
	assert.Equal(t, "abc", got["csrf"])
	assert.Equal(t, "tok en", got["session"])
	assert.Len(t, got, 2)

	assert.Empty(t, parseCookieHeader(""))
}
