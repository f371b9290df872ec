package service

import (
	"context"
	"strings"
	"time"

	"sellerdesk/internal/apperr"
	"sellerdesk/internal/domain"
	"sellerdesk/internal/repository"
)

type ConnectAccountInput struct {
	Platform       domain.Platform
	AccountID      string
	AccountName    string
	AccessToken    string
	RefreshToken   string
	TokenExpiresAt *time.Time
}

// SocialService manages platform account connections. Tokens are entered
// manually; no OAuth dance against the platforms happens here.
type SocialService interface {
	Connect(ctx context.Context, userID int64, input ConnectAccountInput) error
	Disconnect(ctx context.Context, userID int64, platform domain.Platform) error
	Get(ctx context.Context, userID int64, platform domain.Platform) (*domain.SocialConnection, error)
	List(ctx context.Context, userID int64) ([]domain.SocialConnection, error)
}

type socialService struct {
	connections repository.SocialRepository
}

func NewSocialService(connections repository.SocialRepository) SocialService {
	return &socialService{connections: connections}
}

func (s *socialService) Connect(ctx context.Context, userID int64, input ConnectAccountInput) error {
	if !domain.ValidPlatform(input.Platform) {
		return apperr.New(apperr.KindBadRequest, "unknown platform")
	}
	if strings.TrimSpace(input.AccountID) == "" {
		return apperr.New(apperr.KindBadRequest, "account id is required")
	}
	if strings.TrimSpace(input.AccessToken) == "" {
		return apperr.New(apperr.KindBadRequest, "access token is required")
	}

	return s.connections.Upsert(ctx, &domain.SocialConnection{
		UserID:         userID,
		Platform:       input.Platform,
		AccountID:      input.AccountID,
		AccountName:    input.AccountName,
		AccessToken:    input.AccessToken,
		RefreshToken:   input.RefreshToken,
		TokenExpiresAt: input.TokenExpiresAt,
		IsConnected:    true,
	})
}

func (s *socialService) Disconnect(ctx context.Context, userID int64, platform domain.Platform) error {
	if !domain.ValidPlatform(platform) {
		return apperr.New(apperr.KindBadRequest, "unknown platform")
	}
	return s.connections.Disconnect(ctx, userID, platform)
}

func (s *socialService) Get(ctx context.Context, userID int64, platform domain.Platform) (*domain.SocialConnection, error) {
	if !domain.ValidPlatform(platform) {
		return nil, apperr.New(apperr.KindBadRequest, "unknown platform")
	}
	return s.connections.Get(ctx, userID, platform)
}

func (s *socialService) List(ctx context.Context, userID int64) ([]domain.SocialConnection, error) {
	return s.connections.List(ctx, userID)
}
