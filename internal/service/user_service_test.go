package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sellerdesk/internal/auth"
	"sellerdesk/internal/domain"
	"sellerdesk/internal/repository"
)

type fakeUserRepo struct {
	byOpenID map[string]*domain.User
	nextID   int64
	upserts  []repository.UserUpsert
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byOpenID: make(map[string]*domain.User), nextID: 1}
}

func (r *fakeUserRepo) Init(context.Context) error { return nil }

func (r *fakeUserRepo) Upsert(_ context.Context, u repository.UserUpsert) error {
	r.upserts = append(r.upserts, u)
	existing, ok := r.byOpenID[u.OpenID]
	if !ok {
		role := u.Role
		if role == "" {
			role = domain.RoleUser
		}
		r.byOpenID[u.OpenID] = &domain.User{ID: r.nextID, OpenID: u.OpenID, Name: u.Name, Role: role}
		r.nextID++
		return nil
	}
	if u.Name != "" {
		existing.Name = u.Name
	}
	if u.Role != "" {
		existing.Role = u.Role
	}
	return nil
}

func (r *fakeUserRepo) GetByOpenID(_ context.Context, openID string) (*domain.User, error) {
	u, ok := r.byOpenID[openID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range r.byOpenID {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func newVerifier(t *testing.T) *auth.SessionVerifier {
	t.Helper()
	v, err := auth.NewSessionVerifier("test-secret", "app-1")
	require.NoError(t, err)
	return v
}

func TestUserService_ResolveSessionCreatesUser(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	verifier := newVerifier(t)
	svc := NewUserService(repo, verifier, "owner-open-id")

	token, err := verifier.IssueToken("open-1", "Alice", time.Hour)
	require.NoError(t, err)

	user, err := svc.ResolveSession(context.Background(), token)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "open-1", user.OpenID)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, domain.RoleUser, user.Role)
}

func TestUserService_ResolveSessionPromotesOwner(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	verifier := newVerifier(t)
	svc := NewUserService(repo, verifier, "owner-open-id")

	token, err := verifier.IssueToken("owner-open-id", "Owner", time.Hour)
	require.NoError(t, err)

	user, err := svc.ResolveSession(context.Background(), token)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, domain.RoleAdmin, user.Role)
	assert.True(t, user.IsAdmin())
}

func TestUserService_ResolveSessionInvalidTokenIsAnonymous(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := NewUserService(repo, newVerifier(t), "")

	user, err := svc.ResolveSession(context.Background(), "garbage")
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.Empty(t, repo.upserts)
}
