package service

import (
	"context"
	"time"

	"sellerdesk/internal/auth"
	"sellerdesk/internal/domain"
	"sellerdesk/internal/repository"
)

// UserService resolves session tokens to local user records.
type UserService interface {
	// ResolveSession verifies the token and returns the local user,
	// creating the row on first sight. A token that fails verification
	// resolves to (nil, nil): the caller is anonymous, not in error.
	ResolveSession(ctx context.Context, token string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type userService struct {
	users       repository.UserRepository
	verifier    *auth.SessionVerifier
	ownerOpenID string
}

func NewUserService(users repository.UserRepository, verifier *auth.SessionVerifier, ownerOpenID string) UserService {
	return &userService{
		users:       users,
		verifier:    verifier,
		ownerOpenID: ownerOpenID,
	}
}

func (s *userService) ResolveSession(ctx context.Context, token string) (*domain.User, error) {
	session, ok := s.verifier.Verify(token)
	if !ok {
		return nil, nil
	}

	// The owner identity is promoted to admin; everyone else keeps
	// whatever role is already stored (defaulting to user on insert).
	var role domain.Role
	if s.ownerOpenID != "" && session.OpenID == s.ownerOpenID {
		role = domain.RoleAdmin
	}

	if err := s.users.Upsert(ctx, repository.UserUpsert{
		OpenID:       session.OpenID,
		Name:         session.Name,
		Role:         role,
		LastSignedIn: time.Now().UTC(),
	}); err != nil {
		return nil, err
	}

	return s.users.GetByOpenID(ctx, session.OpenID)
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}
