package service

import (
	"context"
	"time"

	"todo_service/internal/models"
	"todo_service/internal/repository"
)

// Authorization covers the unauthenticated account endpoints.
type Authorization interface {
	SignUp(ctx context.Context, name, email, password string) (models.User, error)
	Login(ctx context.Context, email, password string) (AccessToken, error)
}

// Guard turns a raw bearer token into the calling user.
type Guard interface {
	Resolve(ctx context.Context, rawToken string) (models.User, error)
}

// Todos is the owner-scoped to-do store. Every method takes the caller's user id.
type Todos interface {
	Create(ctx context.Context, ownerID int64, in NewTodo) (models.Todo, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]models.Todo, error)
	Get(ctx context.Context, ownerID, id int64) (models.Todo, error)
	Update(ctx context.Context, ownerID, id int64, patch TodoPatch) (models.Todo, error)
	Delete(ctx context.Context, ownerID, id int64) error
}

// Service aggregates all sub-services used by the HTTP layer.
type Service struct {
	Authorization
	Guard
	Todos
}

// Config holds the process-wide auth settings, loaded once at startup.
type Config struct {
	SigningKey string
	TokenTTL   time.Duration
	BcryptCost int
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, cfg Config) *Service {
	users := NewUserDirectory(repos.Users, NewBcryptHasher(cfg.BcryptCost))
	tokens := NewTokenService(cfg.SigningKey, cfg.TokenTTL)

	return &Service{
		Authorization: NewAuthService(users, tokens),
		Guard:         NewAuthGuard(tokens, users),
		Todos:         NewTodoService(repos.Todos),
	}
}
