package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"todo_service/internal/models"
	"todo_service/internal/repository"
)

// UserDirectory owns user records: creation with unique emails and credential checks.
type UserDirectory struct {
	repo   repository.Users
	hasher PasswordHasher
}

func NewUserDirectory(repo repository.Users, hasher PasswordHasher) *UserDirectory {
	return &UserDirectory{repo: repo, hasher: hasher}
}

// normalizeEmail makes email comparison case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create registers a user. The password is hashed before it reaches storage.
func (d *UserDirectory) Create(ctx context.Context, name, email, password string) (models.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" {
		return models.User{}, invalid("name", "must not be empty")
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return models.User{}, invalid("email", "must be a valid address")
	}

	existing, err := d.repo.GetByEmail(ctx, email)
	if err != nil {
		return models.User{}, err
	}
	if existing != nil {
		return models.User{}, ErrEmailTaken
	}

	hash, err := d.hasher.Hash(password)
	if err != nil {
		return models.User{}, err
	}

	u := models.User{Name: name, Email: email, PasswordHash: hash}
	id, err := d.repo.Create(ctx, u)
	if err != nil {
		// lost a race with a concurrent signup for the same email
		if errors.Is(err, repository.ErrDuplicate) {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, err
	}
	u.ID = id
	return u, nil
}

// FindByEmail returns nil when no user has that email.
func (d *UserDirectory) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := d.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

// Authenticate returns the user owning email if password matches.
// Unknown email and wrong password produce the same ErrInvalidCredentials.
func (d *UserDirectory) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	u, err := d.FindByEmail(ctx, email)
	if err != nil {
		return models.User{}, err
	}
	if u == nil || !d.hasher.Verify(u.PasswordHash, password) {
		return models.User{}, ErrInvalidCredentials
	}
	return *u, nil
}
