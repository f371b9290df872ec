package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"sellerdesk/internal/repository"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// seedUser creates the users table and one seller row, returning its id.
// Product, order and social rows all carry a foreign key to users.
func seedUser(t *testing.T, db *sql.DB, openID string) int64 {
	t.Helper()

	ctx := context.Background()
	users := NewUserRepository(db)
	require.NoError(t, users.Init(ctx))
	require.NoError(t, users.Upsert(ctx, repository.UserUpsert{OpenID: openID, Name: "Seller"}))

	u, err := users.GetByOpenID(ctx, openID)
	require.NoError(t, err)
	return u.ID
}
