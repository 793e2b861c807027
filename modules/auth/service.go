package auth

import (
	"context"
	"strings"

	domain "github.com/example/marketplace-services/domain/user"
)

// AuthService handles credential verification. It keeps no session state.
type AuthService struct {
	jwt *JWTManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(jwt *JWTManager) *AuthService {
	return &AuthService{
		jwt: jwt,
	}
}

// ValidateToken verifies an access token and returns the caller it identifies.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*domain.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidToken
	}

	claims, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		return nil, err
	}

	return &domain.Claims{
		UserID: string(claims.UserID),
		Email:  claims.Email,
	}, nil
}
