package service

import (
	"context"
	"strings"

	"todo_service/internal/models"
)

type tokenVerifier interface {
	Verify(raw string) (Claims, error)
}

type userFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthGuard resolves a bearer token into the user it was issued for.
type AuthGuard struct {
	tokens tokenVerifier
	users  userFinder
}

func NewAuthGuard(tokens tokenVerifier, users userFinder) *AuthGuard {
	return &AuthGuard{tokens: tokens, users: users}
}

// Resolve verifies rawToken and loads its subject.
func (g *AuthGuard) Resolve(ctx context.Context, rawToken string) (models.User, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return models.User{}, ErrMissingCredential
	}

	claims, err := g.tokens.Verify(rawToken)
	if err != nil {
		return models.User{}, err
	}

	u, err := g.users.FindByEmail(ctx, claims.Subject)
	if err != nil {
		return models.User{}, err
	}
	if u == nil {
		return models.User{}, ErrUnknownSubject
	}
	return *u, nil
}
