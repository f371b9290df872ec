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

func TestUserRepository_UpsertAndGet(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	ctx := context.Background()
	users := NewUserRepository(db)
	require.NoError(t, users.Init(ctx))

	require.NoError(t, users.Upsert(ctx, repository.UserUpsert{
		OpenID:      "open-1",
		Name:        "Alice",
		Email:       "alice@example.com",
		LoginMethod: "oauth",
	}))

	got, err := users.GetByOpenID(ctx, "open-1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.Equal(t, domain.RoleUser, got.Role)

	byID, err := users.GetByID(ctx, got.ID)
	require.NoError(t, err)
	assert.Equal(t, got.OpenID, byID.OpenID)
}

func TestUserRepository_UpsertDoesNotClobber(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	ctx := context.Background()
	users := NewUserRepository(db)
	require.NoError(t, users.Init(ctx))

	require.NoError(t, users.Upsert(ctx, repository.UserUpsert{
		OpenID: "open-1",
		Name:   "Alice",
		Email:  "alice@example.com",
	}))

	// a later sign-in with sparse claims keeps what is already stored
	require.NoError(t, users.Upsert(ctx, repository.UserUpsert{OpenID: "open-1"}))

	got, err := users.GetByOpenID(ctx, "open-1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.Equal(t, domain.RoleUser, got.Role)
}

func TestUserRepository_RoleWrittenOnlyWhenSet(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	ctx := context.Background()
	users := NewUserRepository(db)
	require.NoError(t, users.Init(ctx))

	require.NoError(t, users.Upsert(ctx, repository.UserUpsert{OpenID: "open-1"}))
	require.NoError(t, users.Upsert(ctx, repository.UserUpsert{OpenID: "open-1", Role: domain.RoleAdmin}))

	got, err := users.GetByOpenID(ctx, "open-1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, got.Role)

	// an empty role on the next sign-in keeps the promotion
	require.NoError(t, users.Upsert(ctx, repository.UserUpsert{OpenID: "open-1"}))
	got, err = users.GetByOpenID(ctx, "open-1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, got.Role)
}

func TestUserRepository_GetMissing(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	ctx := context.Background()
	users := NewUserRepository(db)
	require.NoError(t, users.Init(ctx))

	_, err := users.GetByOpenID(ctx, "missing")
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestUserRepository_UpsertRequiresOpenID(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	ctx := context.Background()
	users := NewUserRepository(db)
	require.NoError(t, users.Init(ctx))

	assert.Error(t, users.Upsert(ctx, repository.UserUpsert{}))
}
