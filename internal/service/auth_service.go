package service

import (
	"context"
	"fmt"

	"todo_service/internal/models"
)

// AuthService handles signup and login on top of the user directory and token service.
type AuthService struct {
	users  *UserDirectory
	tokens *TokenService
}

func NewAuthService(users *UserDirectory, tokens *TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// SignUp creates a new user account.
func (s *AuthService) SignUp(ctx context.Context, name, email, password string) (models.User, error) {
	return s.users.Create(ctx, name, email, password)
}

// Login validates credentials and returns a signed access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (AccessToken, error) {
	u, err := s.users.Authenticate(ctx, email, password)
	if err != nil {
		return AccessToken{}, err
	}
	tok, err := s.tokens.Issue(u.Email)
	if err != nil {
		return AccessToken{}, fmt.Errorf("login %d: %w", u.ID, err)
	}
	return tok, nil
}
