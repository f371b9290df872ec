// Package auth verifies the signed session cookie issued by the external
// identity provider. Verification is stateless: signature and expiry only,
// no server-side session store.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the identity carried by a verified token.
type Session struct {
	OpenID string
	AppID  string
	Name   string
}

type sessionClaims struct {
	OpenID string `json:"openId"`
	AppID  string `json:"appId"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// SessionVerifier checks session tokens against the shared cookie secret
// and an expected issuing application id.
type SessionVerifier struct {
	secret []byte
	appID  string
}

func NewSessionVerifier(secret, appID string) (*SessionVerifier, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("session secret is required")
	}
	return &SessionVerifier{secret: []byte(secret), appID: appID}, nil
}

// IssueToken mints a session token for the given identity. Used by the
// sign-in callback and by tests.
func (v *SessionVerifier) IssueToken(openID, name string, ttl time.Duration) (string, error) {
	claims := sessionClaims{
		OpenID: openID,
		AppID:  v.appID,
		Name:   name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// Verify returns the session carried by the token, or ok=false for any
// failure: absent, malformed, bad signature, expired, or issued for a
// different application. Callers treat a failed verification as an
// anonymous request, never as an error.
func (v *SessionVerifier) Verify(token string) (Session, bool) {
	if token == "" {
		return Session{}, false
	}

	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return Session{}, false
	}
	if claims.OpenID == "" || claims.AppID == "" {
		return Session{}, false
	}
	if v.appID != "" && claims.AppID != v.appID {
		return Session{}, false
	}

	return Session{OpenID: claims.OpenID, AppID: claims.AppID, Name: claims.Name}, true
}
