package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sellerdesk/internal/domain"
	"sellerdesk/internal/repository"
)

func TestSocialRepository_UpsertIsIdempotent(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	ctx := context.Background()
	userID := seedUser(t, db, "open-1")
	social := NewSocialRepository(db)
	require.NoError(t, social.Init(ctx))

	first := &domain.SocialConnection{
		UserID:      userID,
		Platform:    domain.PlatformInstagram,
		AccountID:   "acct-1",
		AccountName: "shop.one",
		AccessToken: "token-1",
	}
	require.NoError(t, social.Upsert(ctx, first))

	// reconnecting replaces tokens instead of adding a second row
	second := &domain.SocialConnection{
		UserID:      userID,
		Platform:    domain.PlatformInstagram,
		AccountID:   "acct-2",
		AccountName: "shop.two",
		AccessToken: "token-2",
	}
	require.NoError(t, social.Upsert(ctx, second))

	list, err := social.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "acct-2", list[0].AccountID)
	assert.Equal(t, "token-2", list[0].AccessToken)
	assert.True(t, list[0].IsConnected)
}

func TestSocialRepository_DisconnectAndReconnect(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	ctx := context.Background()
	userID := seedUser(t, db, "open-1")
	social := NewSocialRepository(db)
	require.NoError(t, social.Init(ctx))

	conn := &domain.SocialConnection{
		UserID:      userID,
		Platform:    domain.PlatformTikTok,
		AccountID:   "acct-1",
		AccessToken: "token-1",
	}
	require.NoError(t, social.Upsert(ctx, conn))
	require.NoError(t, social.Disconnect(ctx, userID, domain.PlatformTikTok))

	got, err := social.Get(ctx, userID, domain.PlatformTikTok)
	require.NoError(t, err)
	assert.False(t, got.IsConnected)

	// upsert flips the connection back on
	require.NoError(t, social.Upsert(ctx, conn))
	got, err = social.Get(ctx, userID, domain.PlatformTikTok)
	require.NoError(t, err)
	assert.True(t, got.IsConnected)
}

func TestSocialRepository_DisconnectMissing(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	ctx := context.Background()
	userID := seedUser(t, db, "open-1")
	social := NewSocialRepository(db)
	require.NoError(t, social.Init(ctx))

	err := social.Disconnect(ctx, userID, domain.PlatformFacebook)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestSocialRepository_GetMissing(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	ctx := context.Background()
	userID := seedUser(t, db, "open-1")
	social := NewSocialRepository(db)
	require.NoError(t, social.Init(ctx))

	_, err := social.Get(ctx, userID, domain.PlatformFacebook)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}
