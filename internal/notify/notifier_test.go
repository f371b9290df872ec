package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sellerdesk/internal/apperr"
)

func silentLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestNotifyOwner_Delivered(t *testing.T) {
	t.Parallel()

	var gotAuth string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/notifications", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := New(srv.URL, "key-123", silentLogger())
	delivered, err := n.NotifyOwner(context.Background(), "Low stock", "Mug is down to 2 units")
	require.NoError(t, err)
	assert.True(t, delivered)
	assert.Equal(t, "Bearer key-123", gotAuth)
	assert.Equal(t, "Low stock", gotBody["title"])
}

func TestNotifyOwner_RemoteFailureIsNotAnError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	n := New(srv.URL, "key-123", silentLogger())
	delivered, err := n.NotifyOwner(context.Background(), "Low stock", "content")
	require.NoError(t, err)
	assert.False(t, delivered)
}

func TestNotifyOwner_UnreachableEndpoint(t *testing.T) {
	t.Parallel()

	n := New("http://127.0.0.1:1", "key-123", silentLogger())
	delivered, err := n.NotifyOwner(context.Background(), "Low stock", "content")
	require.NoError(t, err)
	assert.False(t, delivered)
}

func TestNotifyOwner_Unconfigured(t *testing.T) {
	t.Parallel()

	n := New("", "", silentLogger())
	_, err := n.NotifyOwner(context.Background(), "Low stock", "content")
	require.Error(t, err)
	assert.Equal(t, apperr.KindInternal, apperr.From(err).Kind)
}

func TestNotifyOwner_RequiresTitleAndContent(t *testing.T) {
	t.Parallel()

	n := New("http://example.com", "key", silentLogger())
	_, err := n.NotifyOwner(context.Background(), "  ", "content")
	require.Error(t, err)
	assert.Equal(t, apperr.KindBadRequest, apperr.From(err).Kind)
}

func TestNotifyOwner_TruncatesLongFields(t *testing.T) {
	t.Parallel()

	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := New(srv.URL, "key-123", silentLogger())
	delivered, err := n.NotifyOwner(context.Background(), strings.Repeat("t", 2000), strings.Repeat("c", 30000))
	require.NoError(t, err)
	assert.True(t, delivered)
	assert.Len(t, gotBody["title"], 1200)
	assert.Len(t, gotBody["content"], 20000)
}
