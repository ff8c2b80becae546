package repository

import (
	"context"

	"todo_service/internal/models"

	"github.com/jmoiron/sqlx"
)

// Users persists user accounts. Lookups return (nil, nil) when nothing matches.
type Users interface {
	Create(ctx context.Context, u models.User) (int64, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// Todos persists to-do items. Every read and write is scoped by owner.
type Todos interface {
	Create(ctx context.Context, t models.Todo) (int64, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]models.Todo, error)
	GetByID(ctx context.Context, ownerID, id int64) (*models.Todo, error)
	Update(ctx context.Context, t models.Todo) (bool, error)
	Delete(ctx context.Context, ownerID, id int64) (bool, error)
}

type Repository struct {
	Users Users
	Todos Todos
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Users: NewUserRepository(db),
		Todos: NewTodoRepository(db),
	}
}
